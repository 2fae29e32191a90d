package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Run IDs are ULIDs: 26-character Crockford Base32 strings with a timestamp
// prefix, generated without external dependencies.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewRunID returns a fresh ULID.
func NewRunID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// Timestamp in first 6 bytes (big-endian 48-bit).
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	// Random in remaining 10 bytes.
	rand.Read(b[6:])
	// Embed sequence in bytes 6-7 to ensure uniqueness within same ms.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encode(b)
}

// encode is Crockford Base32 over 128 bits: 26 characters, first character
// carrying only the top 3 bits.
func encode(b [16]byte) string {
	var out [26]byte
	out[0] = crockford[b[0]>>5]
	bit := 3
	for i := 1; i < 26; i++ {
		byteIdx := bit / 8
		shift := bit % 8
		v := int(b[byteIdx]) << 8
		if byteIdx+1 < len(b) {
			v |= int(b[byteIdx+1])
		}
		out[i] = crockford[(v>>(11-shift))&31]
		bit += 5
	}
	return string(out[:])
}
