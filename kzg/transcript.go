package kzg

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/sha3"

	"github.com/eth2030/kzg/crypto/field"
)

// transcript derives Fiat-Shamir challenges from a Keccak-256 hash of
// everything absorbed so far.
type transcript struct {
	h hash.Hash
}

func newTranscript(label string) *transcript {
	t := &transcript{h: sha3.NewLegacyKeccak256()}
	t.appendBytes([]byte(label))
	return t
}

// appendBytes absorbs b with a length prefix so that adjacent items cannot
// be reinterpreted.
func (t *transcript) appendBytes(b []byte) {
	t.appendUint64(uint64(len(b)))
	t.h.Write(b)
}

func (t *transcript) appendUint64(v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	t.h.Write(buf[:])
}

// challenge returns a non-zero element of f.
func (t *transcript) challenge(f *field.PrimeField) field.Element {
	c := f.FromBytesReduce(t.h.Sum(nil))
	if c.IsZero() {
		return f.One()
	}
	return c
}
