//go:build unit
// +build unit

package cryptography

import (
	"context"
	"math/rand"
	"testing"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/testutil"
	"github.com/stretchr/testify/require"
)

const (
	TestKeySize256 = 256
	TestKeySize512 = 512
)

func setupPrimalityTester(t *testing.T) cryptoalg.PrimalityTester {
	t.Helper()
	tester, err := NewPrimalityTester(NewSmallPrimeTable(541), DefaultMillerRabinRounds, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return tester
}

func setupPrimeGenerator(t *testing.T) cryptoalg.PrimeGenerator {
	t.Helper()
	generator, err := NewPrimeGenerator(setupPrimalityTester(t), nil, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return generator
}

func setupKeyGenerator(t *testing.T) cryptoalg.KeyGenerator {
	t.Helper()
	generator, err := NewKeyGenerator(setupPrimeGenerator(t), testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return generator
}

func setupKeyPair(t *testing.T, bits int) *cryptoalg.KeyPair {
	t.Helper()
	pair, err := setupKeyGenerator(t).GenerateKeyPair(context.Background(), bits)
	require.NoError(t, err)
	return pair
}

func setupStreamCipher(t *testing.T, framing cryptoalg.Framing) cryptoalg.StreamCipher {
	t.Helper()
	cipher, err := NewStreamCipher(framing, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return cipher
}
