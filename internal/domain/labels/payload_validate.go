package labels

import (
	"fmt"
	"regexp"
	"strings"
)

// PayloadMinLen is the shortest well-formed payload: a one-character
// prefix, a one-character name and a price like "$0.00" still need five
// characters before separators.
const PayloadMinLen = 5

var (
	// The price segment must close the payload: a dollar sign, at least
	// one integer digit and exactly two decimal digits.
	pricePattern = regexp.MustCompile(`-\$[0-9]+\.[0-9]{2}$`)

	// CODE128 covers full ASCII, but payloads are restricted to the
	// characters the catalog allows in product names plus the format's
	// own punctuation.
	charsetPattern = regexp.MustCompile(`^[A-Za-z0-9.$\- ]*$`)
)

// PayloadValidation is the outcome of checking a payload against the
// scan format invariants.
type PayloadValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidatePayload checks a scan payload against the format invariants:
// length bounds, segment structure, price suffix and character set.
// All checks run independently so every violation is reported at once.
// It is a pure function, usable both as a pre-flight gate and as a test
// oracle for EncodePayload.
func ValidatePayload(payload string) PayloadValidation {
	var errs []string

	if len(payload) < PayloadMinLen {
		errs = append(errs, fmt.Sprintf("payload is %d characters, minimum is %d", len(payload), PayloadMinLen))
	}
	if len(payload) > PayloadMaxLen {
		errs = append(errs, fmt.Sprintf("payload is %d characters, maximum is %d", len(payload), PayloadMaxLen))
	}
	if strings.Count(payload, separator) < 2 {
		errs = append(errs, "payload must contain at least three hyphen-separated segments")
	}
	if !pricePattern.MatchString(payload) {
		errs = append(errs, "payload must end with a price segment like -$9.99")
	}
	if !charsetPattern.MatchString(payload) {
		errs = append(errs, "payload contains characters outside the allowed set [A-Za-z0-9.$- ]")
	}

	return PayloadValidation{Valid: len(errs) == 0, Errors: errs}
}
