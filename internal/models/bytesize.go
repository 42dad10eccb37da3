package models

import "fmt"

const (
	kibi = 1024
	mebi = 1024 * 1024
)

// FormatByteSize renders a byte count for the info labels: plain bytes below
// 1024, KB to one decimal below 1 MiB, MB to one decimal above.
func FormatByteSize(n int64) string {
	switch {
	case n < kibi:
		return fmt.Sprintf("%d B", n)
	case n < mebi:
		return fmt.Sprintf("%.1f KB", float64(n)/kibi)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/mebi)
	}
}
