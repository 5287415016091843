package region

import "encoding/binary"

// HeaderEntry is the raw content of one slot in both header tables.
type HeaderEntry struct {
	Slot      Slot   `json:"slot"`
	Offset    uint32 `json:"offset"`
	Sectors   int    `json:"sectors"`
	Timestamp uint32 `json:"timestamp"`
}

// Empty reports whether the entry marks an unused slot.
func (e HeaderEntry) Empty() bool {
	return e.Sectors == 0
}

// ReadHeader returns all SlotCount header entries of data, including empty
// ones. Payload bounds are not checked.
func ReadHeader(data []byte) ([]HeaderEntry, error) {
	if len(data) < HeaderSize {
		return nil, &FormatError{Size: len(data)}
	}

	entries := make([]HeaderEntry, SlotCount)
	for i := range entries {
		pos := i * entrySize
		offset, sectors := readLocation(data[pos:])
		entries[i] = HeaderEntry{
			Slot:      Slot(i),
			Offset:    offset,
			Sectors:   sectors,
			Timestamp: binary.BigEndian.Uint32(data[SectorSize+pos:]),
		}
	}
	return entries, nil
}
