// Package gameid generates sortable identifiers for games.
//
// IDs are UUIDv7 values encoded as 26 lowercase Crockford base32
// characters, so they sort by creation time and are safe in file names.
package gameid

import (
	"encoding/base32"
	rand "math/rand/v2"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/highcard/internal/randutil"
)

// Crockford's base32, lowercase
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generator produces game IDs from a clock and a random source
type Generator struct {
	clock quartz.Clock
	rng   *rand.Rand
}

// NewGenerator creates a generator. A nil clock uses wall time and a nil
// rng a time-seeded source.
func NewGenerator(clock quartz.Clock, rng *rand.Rand) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if rng == nil {
		rng = randutil.New(time.Now().UnixNano())
	}
	return &Generator{clock: clock, rng: rng}
}

// Generate creates a new game ID using wall time and a time-seeded source
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate creates the next ID
func (g *Generator) Generate() string {
	uuid := g.uuidV7()
	return encoding.EncodeToString(uuid[:])
}

func (g *Generator) uuidV7() [16]byte {
	var uuid [16]byte

	// 48-bit big-endian millisecond timestamp
	ms := g.clock.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		uuid[i] = byte(ms >> (40 - 8*i))
	}

	hi, lo := g.rng.Uint64(), g.rng.Uint64()
	for i := 0; i < 2; i++ {
		uuid[6+i] = byte(hi >> (56 - 8*i))
	}
	for i := 0; i < 8; i++ {
		uuid[8+i] = byte(lo >> (56 - 8*i))
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70 // version 7
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // RFC 4122 variant
	return uuid
}
