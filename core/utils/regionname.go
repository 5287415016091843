package utils

import (
	"path/filepath"
	"strconv"
	"strings"
)

// ParseRegionName extracts the region coordinates from a file name of the
// form "r.<x>.<z>.<ext>". ok is false for any other shape.
func ParseRegionName(name string) (x, z int, ok bool) {
	parts := strings.Split(filepath.Base(name), ".")
	if len(parts) != 4 || parts[0] != "r" || parts[3] == "" {
		return 0, 0, false
	}
	x, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	z, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, false
	}
	return x, z, true
}

// IsPlainName reports whether name is a bare file name that cannot escape
// the directory it is joined to.
func IsPlainName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
