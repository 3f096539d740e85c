package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator mints opaque identifiers for rows created through the admin
// surface (players, gameweeks).
type Generator interface {
	NewID() (string, error)
}

// HexGenerator produces 32-char lowercase hex IDs from crypto/rand.
type HexGenerator struct{}

func NewHexGenerator() *HexGenerator {
	return &HexGenerator{}
}

func (g *HexGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
