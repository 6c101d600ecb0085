package access

import (
	"fmt"
	"net/netip"
)

// IPNotAllowedError reports a request from an address outside the client IP
// allow-list.
type IPNotAllowedError struct {
	Addr netip.Addr
}

func (e *IPNotAllowedError) Error() string {
	return fmt.Sprintf("client ip '%s' not allowed", e.Addr)
}

// RealmNotConfiguredError reports a request for a realm name absent from the
// configured realm set. Distinct from a digest failure: the realm is simply
// not served here.
type RealmNotConfiguredError struct {
	Realm string
}

func (e *RealmNotConfiguredError) Error() string {
	return fmt.Sprintf("realm '%s' is not configured", e.Realm)
}

// SidBlockedError reports a SID present on the block-list.
type SidBlockedError struct {
	Sid int64
}

func (e *SidBlockedError) Error() string {
	return fmt.Sprintf("sid %d is blocked", e.Sid)
}

// SidNotAllowedError reports a SID absent from a configured allow-list.
type SidNotAllowedError struct {
	Sid int64
}

func (e *SidNotAllowedError) Error() string {
	return fmt.Sprintf("sid %d is not on the allowlist", e.Sid)
}

// RealmDigestIncorrectError reports a realm digest that failed verification
// against the stored digest. A forged-realm-credential attempt, as opposed
// to a forged player token.
type RealmDigestIncorrectError struct {
	Realm  string
	Digest string
}

func (e *RealmDigestIncorrectError) Error() string {
	return fmt.Sprintf("realm '%s' digest '%s' incorrect", e.Realm, e.Digest)
}

// SidMismatchError reports a supplied SID that does not equal the enlisted
// player's SID. Indicates a stolen identity rather than a forged token, so
// it stays distinguishable from RidIncorrectError.
type SidMismatchError struct {
	Hash     int64
	Username string
	GivenSid int64
	WantSid  int64
}

func (e *SidMismatchError) Error() string {
	return fmt.Sprintf("player '%s' [%d] sid '%d' does not match existing sid", e.Username, e.Hash, e.GivenSid)
}

// RidIncorrectError reports a supplied RID that failed constant-time
// verification against the enlisted player's RID.
type RidIncorrectError struct {
	Hash     int64
	Username string
	Sid      int64
	GivenRid string
}

func (e *RidIncorrectError) Error() string {
	return fmt.Sprintf("player '%s' [%d] rid '%s' incorrect", e.Username, e.Hash, e.GivenRid)
}
