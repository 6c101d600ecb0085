// Package access implements the ordered verification gates applied to every
// profile request: client IP allow-list, realm-name allow-list, SID
// allow/block lists, realm digest verification and player credential
// verification. All checks are pure and cheap; they run before any cache or
// store access they gate.
package access

import (
	"crypto/subtle"
	"net/netip"

	"github.com/veldt-labs/quartermaster/internal/config"
	"github.com/veldt-labs/quartermaster/internal/model"
)

// Service holds the configured allow/block sets.
type Service struct {
	realms      map[string]struct{}
	allowedIPs  map[netip.Addr]struct{}
	allowedSids map[int64]struct{}
	blockedSids map[int64]struct{}
}

// New builds the access service from configuration.
func New(cfg *config.Config) *Service {
	s := &Service{
		realms:      make(map[string]struct{}, len(cfg.Realms)),
		allowedIPs:  make(map[netip.Addr]struct{}),
		allowedSids: make(map[int64]struct{}, len(cfg.AllowedSids)),
		blockedSids: make(map[int64]struct{}, len(cfg.BlockedSids)),
	}
	for _, name := range cfg.Realms {
		s.realms[name] = struct{}{}
	}
	for _, addr := range cfg.ParsedAllowedIPs() {
		s.allowedIPs[addr] = struct{}{}
	}
	for _, sid := range cfg.AllowedSids {
		s.allowedSids[sid] = struct{}{}
	}
	for _, sid := range cfg.BlockedSids {
		s.blockedSids[sid] = struct{}{}
	}
	return s
}

// ctEqual compares two secret-bearing strings in constant time with respect
// to their contents. Length differences short-circuit; lengths of the
// secrets compared here (64-char hex digests) are not themselves secret.
func ctEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// CheckClientIP rejects requests from addresses outside the allow-list.
func (s *Service) CheckClientIP(addr netip.Addr) error {
	if _, ok := s.allowedIPs[addr.Unmap()]; !ok {
		return &IPNotAllowedError{Addr: addr}
	}
	return nil
}

// CheckRealmConfigured rejects realm names outside the configured set. The
// realm digest is opaque, so pre-enumerating realm names is the only guard
// against arbitrary realm creation under trust-on-first-use.
func (s *Service) CheckRealmConfigured(realm string) error {
	if _, ok := s.realms[realm]; !ok {
		return &RealmNotConfiguredError{Realm: realm}
	}
	return nil
}

// CheckSid applies the SID block-list (unconditional, takes precedence) and
// the allow-list (only when one is configured).
func (s *Service) CheckSid(sid int64) error {
	if _, blocked := s.blockedSids[sid]; blocked {
		return &SidBlockedError{Sid: sid}
	}
	if len(s.allowedSids) > 0 {
		if _, ok := s.allowedSids[sid]; !ok {
			return &SidNotAllowedError{Sid: sid}
		}
	}
	return nil
}

// VerifyRealmDigest compares the supplied digest against the realm's stored
// digest in constant time.
func (s *Service) VerifyRealmDigest(realm *model.Realm, digest string) error {
	if !ctEqual(digest, realm.Digest) {
		return &RealmDigestIncorrectError{Realm: realm.Name, Digest: digest}
	}
	return nil
}

// VerifyPlayerCredentials checks the supplied SID and RID against the
// enlisted player. SIDs are not secret, so exact integer equality; RIDs are,
// so constant-time comparison. The two failure kinds stay distinct.
func (s *Service) VerifyPlayerCredentials(player *model.Player, sid int64, rid string) error {
	if sid != player.Sid {
		return &SidMismatchError{Hash: player.Hash, Username: player.Username, GivenSid: sid, WantSid: player.Sid}
	}
	if !ctEqual(rid, player.Rid) {
		return &RidIncorrectError{Hash: player.Hash, Username: player.Username, Sid: sid, GivenRid: rid}
	}
	return nil
}
