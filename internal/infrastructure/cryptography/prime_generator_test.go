//go:build unit
// +build unit

package cryptography

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"testing"
	"testing/iotest"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimeGenerator_ExactBitLength(t *testing.T) {
	generator := setupPrimeGenerator(t)

	for _, bits := range []int{2, 3, 8, 16, 64, 129, 257} {
		p, err := generator.GeneratePrime(context.Background(), bits)
		require.NoError(t, err)

		assert.Equal(t, bits, p.BitLen(), "bits=%d", bits)
		assert.True(t, p.ProbablyPrime(20), "%s", p)
		if bits > 2 {
			assert.Equal(t, uint(1), p.Bit(0), "%s should be odd", p)
		}
	}
}

func TestPrimeGenerator_WalksUpFromStartCandidate(t *testing.T) {
	generator, err := NewPrimeGenerator(setupPrimalityTester(t), bytes.NewReader([]byte{0x00, 0x00}), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	// a zero draw becomes 2^15 + 1 after forcing the top and bottom bits
	expected := big.NewInt(1<<15 + 1)
	for !expected.ProbablyPrime(20) {
		expected.Add(expected, big.NewInt(2))
	}

	p, err := generator.GeneratePrime(context.Background(), 16)
	require.NoError(t, err)
	assert.Zero(t, expected.Cmp(p), "got %s, want %s", p, expected)
}

func TestPrimeGenerator_RedrawsPastBitLength(t *testing.T) {
	// 65535 is composite and the next odd number, 65537, needs 17 bits
	random := io.MultiReader(bytes.NewReader([]byte{0xFF, 0xFF}), rand.Reader)
	generator, err := NewPrimeGenerator(setupPrimalityTester(t), random, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	p, err := generator.GeneratePrime(context.Background(), 16)
	require.NoError(t, err)
	assert.Equal(t, 16, p.BitLen())
	assert.True(t, p.ProbablyPrime(20))
}

func TestPrimeGenerator_InvalidBitLength(t *testing.T) {
	generator := setupPrimeGenerator(t)

	for _, bits := range []int{-1, 0, 1} {
		_, err := generator.GeneratePrime(context.Background(), bits)
		assert.ErrorIs(t, err, cryptoalg.ErrInvalidBitLength)
	}
}

func TestPrimeGenerator_ContextCanceled(t *testing.T) {
	generator := setupPrimeGenerator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := generator.GeneratePrime(ctx, 512)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrimeGenerator_RandomSourceFailure(t *testing.T) {
	generator, err := NewPrimeGenerator(setupPrimalityTester(t), iotest.ErrReader(errors.New("entropy exhausted")), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	_, err = generator.GeneratePrime(context.Background(), 64)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entropy exhausted")
}

func TestNewPrimeGenerator_NilTester(t *testing.T) {
	_, err := NewPrimeGenerator(nil, nil, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}
