package legacyhash

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownVectors(t *testing.T) {
	tests := []struct {
		username string
		want     uint32
	}{
		{"", 5381},
		{"A", 177638},
		{"ABC", 193450027},
		{"RWR", 193469248},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			assert.Equal(t, tt.want, Hash(tt.username))
		})
	}
}

func TestDeterministic(t *testing.T) {
	inputs := []string{"", "COMRADE", "MR. MODERATOR", "!@#$%^&*()", "\xff\xfe"}
	for _, in := range inputs {
		first := Hash(in)
		for i := 0; i < 10; i++ {
			require.Equal(t, first, Hash(in))
		}
	}
}

// referenceHash is an independent implementation of the generator formula
// the algorithm was derived from: sum(byte_i * 33^(n-1-i)) + 33^n * 5381,
// mod 2^32, computed with big integers.
func referenceHash(username string) uint32 {
	thirtyThree := big.NewInt(33)
	sum := new(big.Int)
	term := new(big.Int)
	n := len(username)
	for i := 0; i < n; i++ {
		term.Exp(thirtyThree, big.NewInt(int64(n-1-i)), nil)
		term.Mul(term, big.NewInt(int64(username[i])))
		sum.Add(sum, term)
	}
	term.Exp(thirtyThree, big.NewInt(int64(n)), nil)
	term.Mul(term, big.NewInt(5381))
	sum.Add(sum, term)
	sum.Mod(sum, new(big.Int).Lsh(big.NewInt(1), 32))
	return uint32(sum.Uint64())
}

func TestMatchesGeneratorFormula(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789.-_!"

	for i := 0; i < 200; i++ {
		b := make([]byte, rng.Intn(32)+1)
		for j := range b {
			b[j] = chars[rng.Intn(len(chars))]
		}
		s := string(b)
		require.Equal(t, referenceHash(s), Hash(s), "input %q", s)
	}
}

func TestHash64Widens(t *testing.T) {
	// The 64-bit form must never be negative; it is the u32 value zero
	// extended.
	h := Hash64("ZZZZZZZZZZZZZZZZ")
	assert.GreaterOrEqual(t, h, int64(0))
	assert.LessOrEqual(t, h, int64(1)<<32-1)
	assert.Equal(t, int64(Hash("ZZZZZZZZZZZZZZZZ")), h)
}
