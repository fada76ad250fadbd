package linecount

import "fmt"

// NonASCIIError reports the first byte >= 0x80 found in a line.
type NonASCIIError struct {
	Byte     byte
	Position int
}

func (e *NonASCIIError) Error() string {
	return fmt.Sprintf("non-ASCII byte 0x%02X at position %d", e.Byte, e.Position)
}
