package regions

import (
	"fmt"

	"world-merger/core/region"
	"world-merger/core/utils"
)

// SlotInfo describes one occupied slot of a region file.
type SlotInfo struct {
	Slot      int    `json:"slot"`
	Timestamp uint32 `json:"timestamp"`
	Offset    uint32 `json:"offset"`
	Sectors   int    `json:"sectors"`
	Digest    string `json:"digest"`
}

// Report is the decoded view of a region file.
type Report struct {
	Name string `json:"name"`
	// X and Z are the region coordinates when the name has the r.X.Z form.
	X       *int           `json:"x,omitempty"`
	Z       *int           `json:"z,omitempty"`
	Size    int            `json:"size"`
	Summary region.Summary `json:"summary"`
	Slots   []SlotInfo     `json:"slots"`
}

// BuildReport decodes data and describes every occupied slot in slot order.
func BuildReport(name string, data []byte) (*Report, error) {
	c, err := region.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	report := &Report{
		Name:    name,
		Size:    len(data),
		Summary: region.Summarize(c),
		Slots:   make([]SlotInfo, 0, len(c)),
	}
	if x, z, ok := utils.ParseRegionName(name); ok {
		report.X, report.Z = &x, &z
	}
	for _, slot := range c.Slots() {
		rec := c[slot]
		report.Slots = append(report.Slots, SlotInfo{
			Slot:      int(slot),
			Timestamp: rec.Timestamp,
			Offset:    rec.Offset,
			Sectors:   rec.Sectors,
			Digest:    fmt.Sprintf("%016x", rec.Digest()),
		})
	}
	return report, nil
}
