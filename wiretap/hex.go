package wiretap

import "strings"

const hexDigits = "0123456789ABCDEF"

// Hex renders b as space-separated uppercase hex byte pairs, e.g.
// "08 01 12 06". An empty slice renders as "".
func Hex(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(b)*3 - 1)
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(hexDigits[c>>4])
		sb.WriteByte(hexDigits[c&0x0F])
	}
	return sb.String()
}
