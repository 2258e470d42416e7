package cryptography

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/validators"
)

// keyGenerator derives textbook RSA key pairs with the fixed public exponent 65537.
type keyGenerator struct {
	primes cryptoalg.PrimeGenerator
	logger logger.Logger
}

// NewKeyGenerator creates a key generator on top of a prime generator.
func NewKeyGenerator(primes cryptoalg.PrimeGenerator, logger logger.Logger) (cryptoalg.KeyGenerator, error) {
	if primes == nil {
		return nil, fmt.Errorf("prime generator cannot be nil")
	}

	return &keyGenerator{
		primes: primes,
		logger: logger,
	}, nil
}

// GenerateKeyPair draws two primes of totalBits/2+1 bits each, so for an even totalBits the modulus
// has totalBits+1 or totalBits+2 bits. When 65537 is not invertible modulo (p-1)(q-1) both primes are drawn again.
// p == q is not excluded.
func (g *keyGenerator) GenerateKeyPair(ctx context.Context, totalBits int) (*cryptoalg.KeyPair, error) {
	if !validators.ValidKeyBitLength(int64(totalBits)) {
		return nil, fmt.Errorf("%w: key size must be between %d and %d bits, got %d",
			cryptoalg.ErrInvalidBitLength, validators.MinKeyBitLength, validators.MaxKeyBitLength, totalBits)
	}

	primeBits := totalBits/2 + 1

	for attempt := 1; ; attempt++ {
		p, err := g.primes.GeneratePrime(ctx, primeBits)
		if err != nil {
			return nil, fmt.Errorf("failed to generate prime p: %w", err)
		}
		q, err := g.primes.GeneratePrime(ctx, primeBits)
		if err != nil {
			return nil, fmt.Errorf("failed to generate prime q: %w", err)
		}

		pair, err := NewKeyPairFromPrimes(p, q, totalBits)
		if errors.Is(err, cryptoalg.ErrInvalidKeyMaterial) {
			g.logger.Debug(fmt.Sprintf("Attempt %d: %v, regenerating both primes", attempt, err))
			continue
		}
		if err != nil {
			return nil, err
		}

		g.logger.Info(fmt.Sprintf("Generated %d-bit key pair with %d-bit modulus", totalBits, pair.Modulus.BitLen()))
		return pair, nil
	}
}

// NewKeyPairFromPrimes derives n = p*q and d = e^-1 mod (p-1)(q-1) for e = 65537.
func NewKeyPairFromPrimes(p, q *big.Int, totalBits int) (*cryptoalg.KeyPair, error) {
	e := big.NewInt(cryptoalg.PublicExponent)

	n := new(big.Int).Mul(p, q)
	totient := new(big.Int).Mul(
		new(big.Int).Sub(p, one),
		new(big.Int).Sub(q, one),
	)

	d := new(big.Int).ModInverse(e, totient)
	if d == nil {
		return nil, fmt.Errorf("%w: %d has no inverse modulo (p-1)(q-1)", cryptoalg.ErrInvalidKeyMaterial, cryptoalg.PublicExponent)
	}

	return &cryptoalg.KeyPair{
		PublicExponent:  e,
		PrivateExponent: d,
		Modulus:         n,
		BitLength:       totalBits,
	}, nil
}
