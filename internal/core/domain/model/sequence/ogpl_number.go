package sequence

import (
	"fmt"
	"strings"
	"time"
)

const (
	ogplTag        = "OGPL"
	ogplDateLayout = "20060102"
)

// OGPLDateKey returns the YYYYMMDD key for t.
func OGPLDateKey(t time.Time) string {
	return t.Format(ogplDateLayout)
}

// FormatOGPLNumber builds "OGPL-{dateKey}-{seq}".
func FormatOGPLNumber(dateKey string, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", ogplTag, dateKey, seq)
}

// ParseOGPLNumber splits raw into its date key and sequence.
func ParseOGPLNumber(raw string) (string, int, bool) {
	parts := strings.Split(raw, "-")
	if len(parts) != 3 || parts[0] != ogplTag {
		return "", 0, false
	}
	if len(parts[1]) != len(ogplDateLayout) || !allDigits(parts[1]) {
		return "", 0, false
	}
	seq, ok := parseSequence(parts[2])
	if !ok {
		return "", 0, false
	}
	return parts[1], seq, true
}

// NextOGPL returns the sheet number following last on the day of now.
// A last number from another day, or one that cannot be parsed, starts the
// sequence at 1.
func NextOGPL(now time.Time, last *string) string {
	dateKey := OGPLDateKey(now)
	seq := 1
	if last != nil {
		if key, n, ok := ParseOGPLNumber(*last); ok && key == dateKey {
			seq = n + 1
		}
	}
	return FormatOGPLNumber(dateKey, seq)
}
