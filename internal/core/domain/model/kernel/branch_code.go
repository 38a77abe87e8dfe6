package kernel

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// DefaultBranchCode prefixes LR numbers when the booking branch is absent
// or unknown.
const DefaultBranchCode BranchCode = "DC"

// BranchCode is the two-letter prefix of an LR number.
type BranchCode string

// NewBranchCode accepts exactly two upper-case ASCII letters.
func NewBranchCode(s string) (BranchCode, error) {
	code := BranchCode(s)
	if err := code.Validate(); err != nil {
		return "", err
	}
	return code, nil
}

// BranchCodeFrom derives a code from a branch's free-form code field: the
// first two characters, upper-cased. Fields that do not start with two
// letters yield DefaultBranchCode.
func BranchCodeFrom(field string) BranchCode {
	field = strings.TrimSpace(field)
	if len(field) < 2 {
		return DefaultBranchCode
	}
	code := BranchCode(strings.ToUpper(field[:2]))
	if code.Validate() != nil {
		return DefaultBranchCode
	}
	return code
}

func (c BranchCode) String() string {
	return string(c)
}

func (c BranchCode) Validate() error {
	if len(c) != 2 || !isUpperLetter(c[0]) || !isUpperLetter(c[1]) {
		return errs.NewValueIsInvalidErrorWithCause(
			"branch code is invalid",
			fmt.Errorf("%q is not two upper-case letters", string(c)),
		)
	}
	return nil
}

func isUpperLetter(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
