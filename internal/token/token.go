// Package token generates the unique archive-member name prefixes the
// container layout requires for array and image members: names beginning
// with an arbitrary unique token. The hash input is a per-writer monotonic
// counter plus the archive's declared start time, since members have no
// natural name of their own to hash.
package token

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Generator produces a deterministic sequence of unique tokens for one
// writer session. Two Generators seeded with the same seed produce the same
// sequence, which keeps Writer output reproducible for golden-file tests.
type Generator struct {
	seed    uint64
	counter uint64
}

// NewGenerator creates a token Generator seeded from an arbitrary 64-bit
// value (typically the writer's declared start time in microseconds).
func NewGenerator(seed int64) *Generator {
	return &Generator{seed: uint64(seed)}
}

// Next returns the next token in the sequence: 16 lowercase hex characters.
func (g *Generator) Next() string {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], g.seed)
	binary.LittleEndian.PutUint64(buf[8:16], g.counter)
	g.counter++

	sum := xxhash.Sum64(buf[:])

	return fmt.Sprintf("%016x", sum)
}
