package model

// Realm is one game-world server instance. It authenticates to the profile
// backend with a pre-shared digest supplied on its first request
// (trust-on-first-use); the digest is never updated after creation.
type Realm struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Digest string `json:"digest"`
}
