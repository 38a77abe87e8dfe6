package sequence

import (
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
)

const lrPeriodLayout = "0601"

// LRPrefix returns "{code}{YYMM}-" for the month containing t.
func LRPrefix(code kernel.BranchCode, t time.Time) string {
	return code.String() + t.Format(lrPeriodLayout) + "-"
}

// FormatLRNumber appends a zero-padded sequence to prefix.
func FormatLRNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s%04d", prefix, seq)
}

// ParseLRSequence extracts the numeric suffix of raw. It reports false when
// raw does not start with prefix or the suffix is not a positive decimal.
func ParseLRSequence(raw, prefix string) (int, bool) {
	suffix, found := strings.CutPrefix(raw, prefix)
	if !found {
		return 0, false
	}
	return parseSequence(suffix)
}

// NextLR returns the LR number following last within the month of now.
// A nil, foreign or malformed last number starts the sequence at 1.
func NextLR(code kernel.BranchCode, now time.Time, last *string) string {
	prefix := LRPrefix(code, now)
	seq := 1
	if last != nil {
		if n, ok := ParseLRSequence(*last, prefix); ok {
			seq = n + 1
		}
	}
	return FormatLRNumber(prefix, seq)
}
