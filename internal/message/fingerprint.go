package message

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprinter digests the canonical form of a record. Fingerprints label
// entries in logs and events; duplicate detection compares canonical bytes.
type Fingerprinter struct {
	algorithm string
}

func NewFingerprinter(algorithm string) *Fingerprinter {
	return &Fingerprinter{algorithm: strings.ToLower(algorithm)}
}

func (f *Fingerprinter) Fingerprint(rec Record) string {
	input := rec.Canonical()

	switch f.algorithm {
	case "md5":
		sum := md5.Sum(input)
		return hex.EncodeToString(sum[:])
	case "sha1":
		sum := sha1.Sum(input)
		return hex.EncodeToString(sum[:])
	default:
		sum := sha256.Sum256(input)
		return hex.EncodeToString(sum[:])
	}
}
