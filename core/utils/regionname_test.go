package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRegionName(t *testing.T) {
	tests := []struct {
		name  string
		x, z  int
		valid bool
	}{
		{"r.0.0.mca", 0, 0, true},
		{"r.-1.12.mca", -1, 12, true},
		{"/worlds/a/region/r.3.-7.mca", 3, -7, true},
		{"r.1.mca", 0, 0, false},
		{"r.a.b.mca", 0, 0, false},
		{"level.dat", 0, 0, false},
		{"c.1.2.mca", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, z, ok := ParseRegionName(tt.name)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.z, z)
		})
	}
}

func TestIsPlainName(t *testing.T) {
	assert.True(t, IsPlainName("r.0.0.mca"))
	assert.False(t, IsPlainName(""))
	assert.False(t, IsPlainName(".."))
	assert.False(t, IsPlainName("../r.0.0.mca"))
	assert.False(t, IsPlainName(`region\r.0.0.mca`))
}
