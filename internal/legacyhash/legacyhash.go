// Package legacyhash reproduces the 32-bit username hash used by the
// original game client. The algorithm is a DJB2 running hash: seeded at
// 5381, folded as h = (h<<5) + h + byte over the UTF-8 bytes of the input
// in forward order, accumulated in a wrapping 32-bit integer.
//
// The client is a 32-bit binary, so the accumulator must stay u32 even
// though identities are transported as 64-bit integers. Any deviation here
// breaks identity matching for every existing account.
package legacyhash

const seed uint32 = 5381

// Hash returns the legacy 32-bit hash of username.
func Hash(username string) uint32 {
	h := seed
	for i := 0; i < len(username); i++ {
		h = (h << 5) + h + uint32(username[i])
	}
	return h
}

// Hash64 returns the legacy hash widened to int64 for transport and
// storage, matching the wire representation used by game servers.
func Hash64(username string) int64 {
	return int64(Hash(username))
}
