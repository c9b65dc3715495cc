package text

import (
	"strings"

	"github.com/etchlab/etchmark/pkg/errors"
)

// LEDCodeLength is the exact length of every LED code.
const LEDCodeLength = 3

// restrictedLEDCharset contains the 17 characters readable on the standard
// segment display. Matching is case-insensitive.
const restrictedLEDCharset = "0123456789EFHJKLP"

// legacyLEDCharset is the full alphanumeric set accepted by legacy modules.
const legacyLEDCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ValidateLEDCode checks an LED code against the charset rules: exactly
// three characters, each (case-insensitively) a member of the restricted
// set, or of the full alphanumeric set when the legacy flag is set.
func ValidateLEDCode(code string, legacy bool) error {
	if len(code) != LEDCodeLength {
		return errors.New(errors.ErrCodeInvalidCode,
			"LED code %q has %d characters, want %d", code, len(code), LEDCodeLength)
	}

	charset := restrictedLEDCharset
	if legacy {
		charset = legacyLEDCharset
	}

	for _, c := range strings.ToUpper(code) {
		if !strings.ContainsRune(charset, c) {
			return errors.New(errors.ErrCodeInvalidCode,
				"LED code %q contains %q, not in the %s charset",
				code, c, charsetName(legacy))
		}
	}
	return nil
}

func charsetName(legacy bool) string {
	if legacy {
		return "legacy"
	}
	return "restricted"
}
