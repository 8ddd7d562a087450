package utils

import "fmt"

const (
	kb = 1 << 10
	mb = 1 << 20
	gb = 1 << 30
	tb = 1 << 40
	pb = 1 << 50
)

// FormatByteSize renders a byte count for user-facing messages, e.g.
// 104857600 -> "100.0 MB".
func FormatByteSize(size int64) string {
	switch {
	case size < kb:
		if size == 1 {
			return "1 byte"
		}
		return fmt.Sprintf("%d bytes", size)
	case size < mb:
		return fmt.Sprintf("%.1f KB", float64(size)/kb)
	case size < gb:
		return fmt.Sprintf("%.1f MB", float64(size)/mb)
	case size < tb:
		return fmt.Sprintf("%.1f GB", float64(size)/gb)
	case size < pb:
		return fmt.Sprintf("%.1f TB", float64(size)/tb)
	default:
		return fmt.Sprintf("%.1f PB", float64(size)/pb)
	}
}
