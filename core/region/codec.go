package region

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Decode parses a complete region file buffer into its occupied records.
// The returned records own their payload bytes.
func Decode(data []byte) (Collection, error) {
	if len(data) < HeaderSize {
		return nil, &FormatError{Size: len(data)}
	}

	locations := data[:SectorSize]
	timestamps := data[SectorSize:HeaderSize]
	payload := data[HeaderSize:]

	records := make(Collection)
	for pos := 0; pos < SectorSize; pos += entrySize {
		offset, sectors := readLocation(locations[pos:])
		if sectors == 0 {
			continue
		}

		slot := Slot(pos / entrySize)
		if offset < HeaderSectors {
			return nil, &TruncatedPayloadError{Slot: slot, Offset: offset, Sectors: sectors, Size: len(data)}
		}

		// Offsets count the two header sectors, the payload slice does not.
		start := (int(offset) - HeaderSectors) * SectorSize
		end := start + sectors*SectorSize
		if end > len(payload) {
			return nil, &TruncatedPayloadError{Slot: slot, Offset: offset, Sectors: sectors, Size: len(data)}
		}

		records[slot] = Record{
			Timestamp: binary.BigEndian.Uint32(timestamps[pos:]),
			Offset:    offset,
			Sectors:   sectors,
			Payload:   bytes.Clone(payload[start:end]),
		}
	}

	return records, nil
}

// Encode serializes c into a region file buffer. Records are laid out
// back to back from sector 2 in ascending slot order and each record's
// Offset in c is updated to its new position.
//
// Nothing in c is modified when Encode returns an error.
func Encode(c Collection) ([]byte, error) {
	slots := c.Slots()

	for _, slot := range slots {
		if err := validate(slot, c[slot]); err != nil {
			return nil, err
		}
	}

	offsets := make([]uint32, len(slots))
	cursor := uint32(HeaderSectors)
	for i, slot := range slots {
		if cursor > MaxOffset {
			return nil, &SectorCountError{Slot: slot, Sectors: c[slot].Sectors, Msg: "offset exceeds 24-bit field"}
		}
		offsets[i] = cursor
		cursor += uint32(c[slot].Sectors)
	}

	out := make([]byte, int(cursor)*SectorSize)
	locations := out[:SectorSize]
	timestamps := out[SectorSize:HeaderSize]

	for i, slot := range slots {
		rec := c[slot]
		rec.Offset = offsets[i]
		c[slot] = rec

		pos := int(slot) * entrySize
		writeLocation(locations[pos:], rec.Offset, rec.Sectors)
		binary.BigEndian.PutUint32(timestamps[pos:], rec.Timestamp)
		copy(out[int(rec.Offset)*SectorSize:], rec.Payload)
	}

	return out, nil
}

func validate(slot Slot, rec Record) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: slot %d out of range", ErrFormat, slot)
	}
	if rec.Sectors < 1 {
		return &SectorCountError{Slot: slot, Sectors: rec.Sectors, Msg: "record has no sectors"}
	}
	if rec.Sectors > MaxSectors {
		return &SectorCountError{Slot: slot, Sectors: rec.Sectors, Msg: "sector count exceeds 8-bit field"}
	}
	if len(rec.Payload) > rec.Sectors*SectorSize {
		return &SectorCountError{Slot: slot, Sectors: rec.Sectors, Msg: fmt.Sprintf("payload of %d bytes does not fit", len(rec.Payload))}
	}
	return nil
}

func readLocation(b []byte) (offset uint32, sectors int) {
	entry := binary.BigEndian.Uint32(b)
	return entry >> 8, int(entry & 0xFF)
}

func writeLocation(b []byte, offset uint32, sectors int) {
	binary.BigEndian.PutUint32(b, offset<<8|uint32(sectors))
}
