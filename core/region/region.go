package region

import (
	"bytes"
	"sort"

	"github.com/cespare/xxhash/v2"
)

const (
	// SectorSize is the size in bytes of one sector.
	SectorSize = 4096
	// SlotCount is the number of entries in each header table.
	SlotCount = 1024
	// HeaderSectors is the number of sectors taken by the header tables.
	HeaderSectors = 2
	// HeaderSize is the size in bytes of both header tables.
	HeaderSize = HeaderSectors * SectorSize
	// MaxSectors is the largest sector count the 8-bit size field can hold.
	MaxSectors = 255
	// MaxOffset is the largest sector offset the 24-bit offset field can hold.
	MaxOffset = 1<<24 - 1

	entrySize = 4
)

// Slot identifies one of the SlotCount header positions.
type Slot int

// Valid reports whether s addresses an existing header entry.
func (s Slot) Valid() bool {
	return s >= 0 && s < SlotCount
}

// Record is one occupied slot of a region file.
type Record struct {
	// Timestamp is the last-modified marker from the timestamp table.
	Timestamp uint32 `json:"timestamp"`
	// Offset is the first sector of the payload. Encode rewrites it.
	Offset uint32 `json:"offset"`
	// Sectors is the number of contiguous sectors the payload occupies.
	Sectors int `json:"sectors"`
	// Payload holds the raw sector bytes.
	Payload []byte `json:"-"`
}

// Clone returns a copy of r that shares no memory with it.
func (r Record) Clone() Record {
	r.Payload = bytes.Clone(r.Payload)
	return r
}

// Digest returns a 64-bit hash of the payload.
func (r Record) Digest() uint64 {
	return xxhash.Sum64(r.Payload)
}

// Equal reports whether r and o carry the same timestamp and payload.
// Offsets are ignored because Encode reassigns them.
func (r Record) Equal(o Record) bool {
	return r.Timestamp == o.Timestamp && r.Sectors == o.Sectors && bytes.Equal(r.Payload, o.Payload)
}

// Collection maps occupied slots to their records.
type Collection map[Slot]Record

// Slots returns the occupied slots in ascending order.
func (c Collection) Slots() []Slot {
	slots := make([]Slot, 0, len(c))
	for slot := range c {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i] < slots[j]
	})
	return slots
}

// Clone returns a deep copy of c.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for slot, rec := range c {
		out[slot] = rec.Clone()
	}
	return out
}
