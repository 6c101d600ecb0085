package model

// Player is one persistent game identity. Hash is the primary key and must
// equal the legacy client hash of Username; this is enforced at input
// validation, not at storage.
type Player struct {
	Hash     int64  `json:"hash"`
	Username string `json:"username"`
	Sid      int64  `json:"sid"`
	Rid      string `json:"rid"`
}
