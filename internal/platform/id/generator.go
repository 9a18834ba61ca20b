// Package id issues the opaque public identifiers stored on every league
// record. They are random, not sequential, so they leak nothing about
// creation order.
package id

import (
	"crypto/rand"
	"encoding/hex"

	crerr "github.com/cockroachdb/errors"
)

type Generator interface {
	NewID() (string, error)
}

// RandomGenerator produces 128-bit hex identifiers.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", crerr.Wrap(err, "read random bytes")
	}
	return hex.EncodeToString(buf[:]), nil
}
