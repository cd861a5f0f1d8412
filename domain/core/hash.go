package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Fingerprint identifies one analysis input set. Two runs over identical
// inputs always produce the same fingerprint, which makes results replayable.
type Fingerprint Hash

func (f Fingerprint) String() string { return Hash(f).String() }

// ComputeFingerprint hashes named input sections in a canonical (sorted) order
// so the result is independent of load order.
func ComputeFingerprint(sections map[string]string) Fingerprint {
	keys := make([]string, 0, len(sections))
	for k := range sections {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data strings.Builder
	for _, key := range keys {
		data.WriteString(key)
		data.WriteString("\x00")
		data.WriteString(sections[key])
		data.WriteString("\x00")
	}

	return Fingerprint(NewHash([]byte(data.String())))
}

// SectionForFloats renders a float sequence into a stable section string.
func SectionForFloats(values []float64) string {
	var b strings.Builder
	for _, v := range values {
		fmt.Fprintf(&b, "%x;", v)
	}
	return b.String()
}

// SectionForInts renders an int sequence into a stable section string.
func SectionForInts(values []int) string {
	var b strings.Builder
	for _, v := range values {
		fmt.Fprintf(&b, "%d;", v)
	}
	return b.String()
}
