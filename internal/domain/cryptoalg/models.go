package cryptoalg

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/textbook-rsa/internal/pkg/validators"
)

// PublicExponent is the fixed encryption exponent e.
const PublicExponent = 65537

// KeyPair is a textbook RSA key pair. BitLength is the requested total key size and drives the
// block widths; it is not necessarily the bit length of Modulus.
type KeyPair struct {
	PublicExponent  *big.Int
	PrivateExponent *big.Int
	Modulus         *big.Int
	BitLength       int
}

// Public returns the encryption half (e, n, bits).
func (k *KeyPair) Public() *KeyHalf {
	return &KeyHalf{Exponent: k.PublicExponent, Modulus: k.Modulus, BitLength: k.BitLength}
}

// Private returns the decryption half (d, n, bits).
func (k *KeyPair) Private() *KeyHalf {
	return &KeyHalf{Exponent: k.PrivateExponent, Modulus: k.Modulus, BitLength: k.BitLength}
}

// Validate checks both halves.
func (k *KeyPair) Validate() error {
	if err := k.Public().Validate(); err != nil {
		return fmt.Errorf("public key: %w", err)
	}
	if err := k.Private().Validate(); err != nil {
		return fmt.Errorf("private key: %w", err)
	}
	return nil
}

// KeyHalf is one exponent with the shared modulus and bit length, as stored in one key file.
type KeyHalf struct {
	Exponent  *big.Int
	Modulus   *big.Int
	BitLength int
}

// PlainBlockSize is the width in bytes of a plaintext block.
func (k *KeyHalf) PlainBlockSize() int {
	return k.BitLength / 8
}

// CipherBlockSize is the width in bytes of a ciphertext block. It is one byte wider than a
// plaintext block since results are bounded by the modulus, not by the plaintext width.
func (k *KeyHalf) CipherBlockSize() int {
	return k.BitLength/8 + 1
}

// Validate reports ErrInvalidKeyMaterial unless every plaintext block is below the modulus and every
// residue fits a cipher block.
func (k *KeyHalf) Validate() error {
	switch {
	case k.Exponent == nil || k.Modulus == nil:
		return fmt.Errorf("%w: missing exponent or modulus", ErrInvalidKeyMaterial)
	case k.Modulus.Cmp(big.NewInt(1)) <= 0:
		return fmt.Errorf("%w: modulus must be greater than 1", ErrInvalidKeyMaterial)
	case k.Exponent.Sign() < 0:
		return fmt.Errorf("%w: exponent must not be negative", ErrInvalidKeyMaterial)
	case !validators.ValidKeyBitLength(int64(k.BitLength)):
		return fmt.Errorf("%w: bit length %d out of range", ErrInvalidKeyMaterial, k.BitLength)
	}

	modulusBits := k.Modulus.BitLen()
	if modulusBits <= 8*k.PlainBlockSize() {
		return fmt.Errorf("%w: %d-bit modulus cannot hold %d-byte blocks", ErrInvalidKeyMaterial, modulusBits, k.PlainBlockSize())
	}
	if modulusBits > 8*k.CipherBlockSize() {
		return fmt.Errorf("%w: %d-bit modulus overflows %d-byte cipher blocks", ErrInvalidKeyMaterial, modulusBits, k.CipherBlockSize())
	}
	return nil
}

// Framing selects how the final block of a stream is delimited.
type Framing int

const (
	// FramingMarker appends a 0x01 byte above the last plaintext chunk (or emits a marker-only
	// block) so decryption reproduces the exact input length.
	FramingMarker Framing = iota
	// FramingLegacy writes no marker; the last decrypted block is zero padded to the full width.
	FramingLegacy
)

// String returns the configuration name of the framing.
func (f Framing) String() string {
	switch f {
	case FramingMarker:
		return "marker"
	case FramingLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Framing(%d)", int(f))
	}
}

// ParseFraming maps a configuration name to a Framing.
func ParseFraming(name string) (Framing, error) {
	switch name {
	case "", "marker":
		return FramingMarker, nil
	case "legacy":
		return FramingLegacy, nil
	default:
		return 0, fmt.Errorf("unknown framing %q", name)
	}
}

// StreamStats summarizes one encrypted or decrypted stream.
type StreamStats struct {
	Blocks   int
	BytesIn  int64
	BytesOut int64
}
