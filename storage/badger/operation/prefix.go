package operation

import (
	"encoding/binary"
	"fmt"

	"github.com/quiltchain/quilt-go/model/quilt"
)

const (

	// codes for entities
	codeBlock = 1

	// codes for chain state derived per block
	codeBlockStatus = 10

	// codes for indexes and boundaries
	codeHeightToBlock  = 20
	codeCommittedBlock = 21

	// codes for consensus replica state
	codeSafetyData   = 30
	codeLivenessData = 31
)

// makePrefix builds a storage key from a code byte and a variadic list of
// key parts, each encoded with a fixed width so keys sort correctly.
func makePrefix(code byte, keys ...interface{}) []byte {
	prefix := make([]byte, 1)
	prefix[0] = code
	for _, key := range keys {
		prefix = append(prefix, b(key)...)
	}
	return prefix
}

func b(v interface{}) []byte {
	switch i := v.(type) {
	case uint8:
		return []byte{i}
	case uint64:
		bin := make([]byte, 8)
		binary.BigEndian.PutUint64(bin, i)
		return bin
	case quilt.Identifier:
		return i[:]
	case quilt.ShardID:
		return []byte(i)
	case []byte:
		return i
	default:
		panic(fmt.Sprintf("unsupported type to convert (%T)", v))
	}
}
