// Package region implements the sector-indexed region file container.
//
// A region file starts with two 4096-byte header sectors followed by data
// sectors. The first header sector is the location table: 1024 big-endian
// entries of a 24-bit sector offset and an 8-bit sector count. The second is
// the timestamp table: 1024 big-endian uint32 values, slot-aligned with the
// location table. A record's payload occupies Sectors contiguous sectors
// starting at sector Offset (counted from the start of the file, so the
// first usable offset is 2).
//
// # Slots
//
// A Slot is the index of an entry in the header tables (byte offset / 4).
// It is the only identity a record has; the package never derives chunk
// coordinates from it.
//
// # Decoding and encoding
//
// Decode turns a whole file buffer into a Collection keyed by Slot. Empty
// slots (sector count 0) are absent from the collection. Encode lays the
// records out again in ascending slot order starting at sector 2 and
// rewrites every record's Offset to the freshly assigned value.
//
//	records, err := region.Decode(data)
//	if err != nil {
//	    return err
//	}
//	out, err := region.Encode(records)
//
// Payload bytes are opaque. Trailing bytes inside the last sector are kept
// exactly as read.
package region
