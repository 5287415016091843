package region

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is matched by errors for buffers too short to hold both header tables.
	ErrFormat = errors.New("region: invalid format")
	// ErrTruncatedPayload is matched by errors for records whose sector range lies outside the buffer.
	ErrTruncatedPayload = errors.New("region: truncated payload")
	// ErrSectorOverflow is matched by errors for records that do not fit the header fields.
	ErrSectorOverflow = errors.New("region: sector overflow")
)

// FormatError reports a buffer shorter than HeaderSize.
type FormatError struct {
	Size int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("region: buffer of %d bytes is shorter than the %d byte header", e.Size, HeaderSize)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// TruncatedPayloadError reports a record whose declared sectors are not
// inside the payload region of the buffer.
type TruncatedPayloadError struct {
	Slot    Slot
	Offset  uint32
	Sectors int
	Size    int
}

func (e *TruncatedPayloadError) Error() string {
	return fmt.Sprintf("region: slot %d: sectors [%d, %d) outside buffer of %d bytes",
		e.Slot, e.Offset, int(e.Offset)+e.Sectors, e.Size)
}

func (e *TruncatedPayloadError) Unwrap() error {
	return ErrTruncatedPayload
}

// SectorCountError reports a record that cannot be encoded into the 24-bit
// offset and 8-bit count fields.
type SectorCountError struct {
	Slot    Slot
	Sectors int
	Msg     string
}

func (e *SectorCountError) Error() string {
	return fmt.Sprintf("region: slot %d: %s (sectors=%d)", e.Slot, e.Msg, e.Sectors)
}

func (e *SectorCountError) Unwrap() error {
	return ErrSectorOverflow
}
