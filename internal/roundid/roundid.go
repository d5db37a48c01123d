// Package roundid generates sortable identifiers for blackjack rounds.
package roundid

import (
	"encoding/base32"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet. It is in ascending ASCII order, so encoded
// UUIDv7 values sort by creation time.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded round ID
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generator creates round IDs from a UUIDv7 source
type Generator struct {
	random io.Reader
}

// NewGenerator creates a generator. A nil reader uses crypto randomness.
func NewGenerator(random io.Reader) *Generator {
	return &Generator{random: random}
}

// Generate creates a new round ID using crypto randomness
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new round ID
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.random != nil {
		id, err = uuid.NewV7FromReader(g.random)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		panic("failed to generate round id: " + err.Error())
	}
	return encoding.EncodeToString(id[:])
}

// Validate checks that id is a well-formed round ID
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(id))
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	raw, err := encoding.DecodeString(id)
	if err != nil {
		return fmt.Errorf("round ID does not decode: %w", err)
	}
	parsed, err := uuid.FromBytes(raw)
	if err != nil {
		return fmt.Errorf("round ID is not a UUID: %w", err)
	}
	if parsed.Version() != 7 {
		return fmt.Errorf("round ID has UUID version %d, want 7", parsed.Version())
	}
	return nil
}
