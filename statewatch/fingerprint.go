package statewatch

import (
	"crypto/sha256"

	"github.com/fxamacker/cbor/v2"
)

// Slices are compared by structural fingerprint: deterministic CBOR encoding
// (RFC 8949 Core Deterministic) hashed with SHA-256. Two structurally equal
// values always encode to the same bytes, so equal fingerprints mean the
// slice did not change.
var encMode cbor.EncMode

func init() {
	eo := cbor.CoreDetEncOptions()
	eo.Time = cbor.TimeRFC3339Nano
	em, err := eo.EncMode()
	if err != nil {
		panic(err) // static options; cannot fail at runtime
	}
	encMode = em
}

type fingerprint struct {
	sum [sha256.Size]byte
	// ok is false when the value could not be encoded; an unknown
	// fingerprint never equals anything, so the slice reads as changed.
	ok bool
}

func fingerprintOf(v any) (fingerprint, error) {
	b, err := encMode.Marshal(v)
	if err != nil {
		return fingerprint{}, err
	}
	return fingerprint{sum: sha256.Sum256(b), ok: true}, nil
}

func (f fingerprint) equal(other fingerprint) bool {
	return f.ok && other.ok && f.sum == other.sum
}
