package chat

import (
	"crypto/rand"
	"encoding/hex"
)

// IDGenerator mints session identifiers.
type IDGenerator interface {
	NewID() (string, error)
}

type IDGeneratorFunc func() (string, error)

func (f IDGeneratorFunc) NewID() (string, error) { return f() }

// HexIDGenerator returns 128 random bits as 32 lowercase hex characters.
type HexIDGenerator struct{}

func (HexIDGenerator) NewID() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
