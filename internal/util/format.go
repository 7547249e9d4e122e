package util

import (
	"github.com/dustin/go-humanize"
)

// FormatBytes renders a byte count for humans (e.g. "1.2 MB")
func FormatBytes(n int64) string {
	if n < 0 {
		return "0 B"
	}
	return humanize.Bytes(uint64(n))
}

// FormatCount renders an integer with thousands separators
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatFloat renders a real with thousands separators and at most two decimals
func FormatFloat(f float64) string {
	return humanize.CommafWithDigits(f, 2)
}
