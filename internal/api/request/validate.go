package request

import (
	"fmt"
	"strings"

	"github.com/veldt-labs/quartermaster/internal/legacyhash"
)

// maxID is the top of the legacy 32-bit range for hashes and SIDs.
const maxID = int64(1<<32) - 1

// usernameBlockedChars would break the XML documents the protocol trades in.
const usernameBlockedChars = `<>&"'`

// ValidationError reports a request parameter that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func validateIDRange(field string, v int64) error {
	if v < 1 || v > maxID {
		return invalid(field, "out of range")
	}
	return nil
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func validateHex64(field, s string) error {
	if len(s) != 64 {
		return invalid(field, "must be 64 characters")
	}
	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) {
			return invalid(field, "not hexadecimal")
		}
	}
	return nil
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}

// validateUsername applies the legacy client's username rules: 1-32
// characters drawn from uppercase letters, digits and ASCII punctuation,
// minus the characters that would break XML. The space checks come first to
// give clients a specific message for the most common mistake.
func validateUsername(username string) error {
	if len(username) < 1 || len(username) > 32 {
		return invalid("username", "must be 1-32 characters")
	}
	if strings.Contains(username, "  ") {
		return invalid("username", "contains multiple consecutive spaces")
	}
	if strings.HasPrefix(username, " ") {
		return invalid("username", "starts with a space")
	}
	if strings.HasSuffix(username, " ") {
		return invalid("username", "ends with a space")
	}
	for i := 0; i < len(username); i++ {
		c := username[i]
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') && !isASCIIPunct(c) {
			return invalid("username", "must be uppercase, digit or punctuation characters only")
		}
	}
	if strings.ContainsAny(username, usernameBlockedChars) {
		return invalid("username", "contains forbidden character")
	}
	return nil
}

func validateRealmName(realm string) error {
	if len(realm) < 1 || len(realm) > 32 {
		return invalid("realm", "must be 1-32 characters")
	}
	return nil
}

// validateIdentity checks the hash/username/sid/rid quad shared by get
// parameters and set entries. The hash must be the legacy hash of the
// username; a mismatch means either a buggy client or a spoofing attempt.
func validateIdentity(hash int64, username string, sid int64, rid string) error {
	if err := validateIDRange("hash", hash); err != nil {
		return err
	}
	if err := validateUsername(username); err != nil {
		return err
	}
	if err := validateIDRange("sid", sid); err != nil {
		return err
	}
	if err := validateHex64("rid", rid); err != nil {
		return err
	}
	if hash != legacyhash.Hash64(username) {
		return invalid("hash", "not the hash of the given username")
	}
	return nil
}
