package quilt

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/vmihailenco/msgpack/v4"
)

// Identifier represents a 32-byte unique identifier for an entity.
type Identifier [32]byte

// ZeroID is the lowest value in the 32-byte ID space.
var ZeroID = Identifier{}

// HexStringToIdentifier converts a hex string to an identifier. The input
// must be 64 characters long and contain only valid hex characters.
func HexStringToIdentifier(hexString string) (Identifier, error) {
	var identifier Identifier
	i, err := hex.Decode(identifier[:], []byte(hexString))
	if err != nil {
		return identifier, err
	}
	if i != 32 {
		return identifier, fmt.Errorf("malformed input, expected 32 bytes (64 characters), decoded %d", i)
	}
	return identifier, nil
}

// String returns the hex string representation of the identifier.
func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}

// Format handles formatting of id for different verbs. This is called when
// formatting an identifier with fmt.
func (id Identifier) Format(state fmt.State, verb rune) {
	switch verb {
	case 'x', 's', 'v':
		_, _ = state.Write([]byte(id.String()))
	default:
		_, _ = state.Write([]byte(fmt.Sprintf("%%!%c(%s=%s)", verb, "Identifier", id.String())))
	}
}

// MarshalText implements encoding.TextMarshaler, allowing identifiers to be
// used as map keys in JSON encodings.
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *Identifier) UnmarshalText(text []byte) error {
	decoded, err := HexStringToIdentifier(string(text))
	if err != nil {
		return err
	}
	*id = decoded
	return nil
}

// MakeID creates an ID for the given entity by hashing its canonical
// msgpack encoding.
func MakeID(entity interface{}) Identifier {
	data, err := msgpack.Marshal(entity)
	if err != nil {
		// the entities we fingerprint are plain data structs; an encoding
		// failure is a symptom of a programming error, not an input error
		panic(fmt.Sprintf("could not encode entity for ID: %v", err))
	}
	return HashToID(data)
}

// HashToID hashes the given data and returns the digest as identifier.
func HashToID(data []byte) Identifier {
	return Identifier(sha256.Sum256(data))
}

// IsCanonicallyBefore returns whether the first identifier sorts before
// the second in canonical (bytewise ascending) order.
func IsCanonicallyBefore(a Identifier, b Identifier) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// ConcatSum concatenates and hashes a list of identifiers into a single one.
func ConcatSum(ids ...Identifier) Identifier {
	hasher := sha256.New()
	for _, id := range ids {
		_, _ = hasher.Write(id[:])
	}
	var sum Identifier
	copy(sum[:], hasher.Sum(nil))
	return sum
}
