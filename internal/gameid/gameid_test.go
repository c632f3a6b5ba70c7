package gameid

import (
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/highcard/internal/randutil"
)

func decode(t *testing.T, id string) []byte {
	t.Helper()
	require.Len(t, id, Length)
	raw, err := encoding.DecodeString(id)
	require.NoError(t, err)
	require.Len(t, raw, 16)
	return raw
}

func TestGenerate(t *testing.T) {
	id := Generate()

	raw := decode(t, id)
	assert.Equal(t, byte(7), raw[6]>>4, "version 7")
	assert.Equal(t, byte(0x80), raw[8]&0xc0, "RFC 4122 variant")
	assert.Equal(t, strings.ToLower(id), id)
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate()
		require.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	mClock := quartz.NewMock(t)
	gen := NewGenerator(mClock, randutil.New(1))

	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, gen.Generate())
		mClock.Advance(time.Millisecond)
	}

	for i := 1; i < len(ids); i++ {
		assert.Negative(t, strings.Compare(ids[i-1], ids[i]), "IDs not sorted: %s >= %s", ids[i-1], ids[i])
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	mClock := quartz.NewMock(t)

	a := NewGenerator(mClock, randutil.New(42)).Generate()
	b := NewGenerator(mClock, randutil.New(42)).Generate()
	c := NewGenerator(mClock, randutil.New(43)).Generate()

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestTimestamp(t *testing.T) {
	mClock := quartz.NewMock(t)
	raw := decode(t, NewGenerator(mClock, randutil.New(7)).Generate())

	var ms int64
	for i := 0; i < 6; i++ {
		ms = ms<<8 | int64(raw[i])
	}
	assert.Equal(t, mClock.Now().UnixMilli(), ms)
}

func TestAlphabet(t *testing.T) {
	require.Len(t, alphabet, 32)

	seen := make(map[rune]bool)
	for _, char := range alphabet {
		assert.False(t, seen[char], "duplicate character in alphabet: %c", char)
		seen[char] = true
	}

	for _, char := range "ilou" {
		assert.NotContains(t, alphabet, string(char))
	}
}
