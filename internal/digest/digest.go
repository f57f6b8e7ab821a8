// Package digest computes the content-binding hash that identifies a data
// point in the ledger.
//
// The digest is a SHA-256 over a length-prefixed encoding of the five
// submission fields. Length prefixes keep field boundaries unambiguous:
// ("ab","c") and ("a","bc") encode differently, so distinct tuples cannot
// collide through concatenation alone.
package digest

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// Size is the digest width in bytes.
const Size = sha256.Size

// HexSize is the width of the hex-encoded digest string.
const HexSize = Size * 2

// Reading computes the digest identifying a single sensor reading.
//
// The five inputs are hashed in a fixed order: device ID, data type, data
// value, logical timestamp, caller identity. Identical inputs always yield
// the identical digest.
//
// Returns:
//   - string: lowercase hex encoding of the SHA-256 digest
func Reading(deviceID, dataType, dataValue string, timestamp int64, caller string) string {
	h := sha256.New()

	writeField(h, []byte(deviceID))
	writeField(h, []byte(dataType))
	writeField(h, []byte(dataValue))

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(timestamp))
	writeField(h, ts[:])

	writeField(h, []byte(caller))

	return hex.EncodeToString(h.Sum(nil))
}

// writeField writes a single length-prefixed field into the hash state.
func writeField(h hash.Hash, b []byte) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(b)))
	h.Write(n[:]) //nolint:errcheck // hash.Hash.Write never returns an error
	h.Write(b)    //nolint:errcheck // hash.Hash.Write never returns an error
}

// Valid reports whether s looks like a digest produced by Reading:
// exactly HexSize lowercase hex characters.
func Valid(s string) bool {
	if len(s) != HexSize {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
