package cryptography

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
)

// primeGenerator walks odd candidates upwards from a random start until one tests prime.
type primeGenerator struct {
	tester cryptoalg.PrimalityTester
	random io.Reader
	logger logger.Logger
}

// NewPrimeGenerator creates a prime generator drawing start candidates from random, which must be
// a cryptographically secure source. A nil random selects crypto/rand.Reader.
func NewPrimeGenerator(tester cryptoalg.PrimalityTester, random io.Reader, logger logger.Logger) (cryptoalg.PrimeGenerator, error) {
	if tester == nil {
		return nil, fmt.Errorf("primality tester cannot be nil")
	}
	if random == nil {
		random = rand.Reader
	}

	return &primeGenerator{
		tester: tester,
		random: random,
		logger: logger,
	}, nil
}

// GeneratePrime returns an odd prime with exactly bits significant bits.
//
// The search has no iteration cap: by the prime number theorem about one in every ln(2^bits)/2 odd
// candidates is prime, so it ends after a few hundred candidates even for 2048-bit primes.
// The context is checked between candidates.
func (g *primeGenerator) GeneratePrime(ctx context.Context, bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("%w: a prime needs at least 2 bits, got %d", cryptoalg.ErrInvalidBitLength, bits)
	}

	candidate, err := g.startCandidate(bits)
	if err != nil {
		return nil, err
	}

	for tried := 1; ; tried++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("prime generation aborted after %d candidates: %w", tried-1, err)
		}

		if g.tester.IsPrime(candidate) {
			g.logger.Debug(fmt.Sprintf("Found %d-bit prime after %d candidates", bits, tried))
			return candidate, nil
		}

		candidate.Add(candidate, two)
		if candidate.BitLen() > bits {
			// walked past 2^bits; start over rather than return a wider prime
			if candidate, err = g.startCandidate(bits); err != nil {
				return nil, err
			}
		}
	}
}

// startCandidate ORs a random bits-wide integer with the top and bottom bits.
func (g *primeGenerator) startCandidate(bits int) (*big.Int, error) {
	limit := new(big.Int).Lsh(one, uint(bits))
	candidate, err := rand.Int(g.random, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to draw random candidate: %w", err)
	}

	candidate.SetBit(candidate, bits-1, 1)
	candidate.SetBit(candidate, 0, 1)
	return candidate, nil
}
