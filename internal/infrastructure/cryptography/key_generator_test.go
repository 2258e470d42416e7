//go:build unit
// +build unit

package cryptography

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"testing"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPrimeGenerator struct {
	mock.Mock
}

func (m *mockPrimeGenerator) GeneratePrime(ctx context.Context, bits int) (*big.Int, error) {
	args := m.Called(ctx, bits)
	if p := args.Get(0); p != nil {
		return p.(*big.Int), args.Error(1)
	}
	return nil, args.Error(1)
}

func nextPrime(from int64) *big.Int {
	p := big.NewInt(from)
	for !p.ProbablyPrime(20) {
		p.Add(p, big.NewInt(1))
	}
	return p
}

// primeWithoutInverse returns a prime p with 65537 | p-1.
func primeWithoutInverse() *big.Int {
	e := big.NewInt(cryptoalg.PublicExponent)
	p := new(big.Int)
	for k := int64(2); ; k += 2 {
		p.Mul(e, big.NewInt(k)).Add(p, big.NewInt(1))
		if p.ProbablyPrime(20) {
			return p
		}
	}
}

func assertRoundTrip(t *testing.T, pair *cryptoalg.KeyPair, m *big.Int) {
	t.Helper()

	c, err := TransformBlock(m, pair.PublicExponent, pair.Modulus)
	require.NoError(t, err)
	back, err := TransformBlock(c, pair.PrivateExponent, pair.Modulus)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Cmp(back), "m=%s", m)
}

func TestKeyGenerator_GenerateKeyPair(t *testing.T) {
	pair := setupKeyPair(t, TestKeySize512)

	assert.Equal(t, int64(cryptoalg.PublicExponent), pair.PublicExponent.Int64())
	assert.Equal(t, TestKeySize512, pair.BitLength)
	assert.Contains(t, []int{513, 514}, pair.Modulus.BitLen())
	require.NoError(t, pair.Validate())

	nMinusOne := new(big.Int).Sub(pair.Modulus, big.NewInt(1))
	for _, m := range []*big.Int{big.NewInt(0), big.NewInt(1), big.NewInt(2), nMinusOne} {
		assertRoundTrip(t, pair, m)
	}
	for i := 0; i < 10; i++ {
		m, err := rand.Int(rand.Reader, pair.Modulus)
		require.NoError(t, err)
		assertRoundTrip(t, pair, m)
	}
}

func TestKeyGenerator_SmallestKeySize(t *testing.T) {
	pair := setupKeyPair(t, 16)

	assert.Contains(t, []int{17, 18}, pair.Modulus.BitLen())
	require.NoError(t, pair.Validate())
	assertRoundTrip(t, pair, big.NewInt(0xBEEF))
}

func TestKeyGenerator_InvalidBitLength(t *testing.T) {
	generator := setupKeyGenerator(t)

	for _, bits := range []int{0, 8, 15, 16385} {
		_, err := generator.GenerateKeyPair(context.Background(), bits)
		assert.ErrorIs(t, err, cryptoalg.ErrInvalidBitLength, "bits=%d", bits)
	}
}

func TestKeyGenerator_RetriesWithoutInverse(t *testing.T) {
	primes := new(mockPrimeGenerator)
	bad := primeWithoutInverse()
	p, q := nextPrime(1_000_000), nextPrime(2_000_000)

	primes.On("GeneratePrime", mock.Anything, 21).Return(bad, nil).Once()
	primes.On("GeneratePrime", mock.Anything, 21).Return(q, nil).Once()
	primes.On("GeneratePrime", mock.Anything, 21).Return(p, nil).Once()
	primes.On("GeneratePrime", mock.Anything, 21).Return(q, nil).Once()

	generator, err := NewKeyGenerator(primes, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	pair, err := generator.GenerateKeyPair(context.Background(), 40)
	require.NoError(t, err)

	assert.Zero(t, new(big.Int).Mul(p, q).Cmp(pair.Modulus))
	primes.AssertNumberOfCalls(t, "GeneratePrime", 4)
	assertRoundTrip(t, pair, big.NewInt(123456789))
}

func TestKeyGenerator_PrimeGeneratorFailure(t *testing.T) {
	primes := new(mockPrimeGenerator)
	primes.On("GeneratePrime", mock.Anything, 129).Return(nil, context.DeadlineExceeded)

	generator, err := NewKeyGenerator(primes, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	_, err = generator.GenerateKeyPair(context.Background(), TestKeySize256)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestNewKeyPairFromPrimes(t *testing.T) {
	pair, err := NewKeyPairFromPrimes(big.NewInt(61), big.NewInt(53), 16)
	require.NoError(t, err)

	assert.Equal(t, int64(3233), pair.Modulus.Int64())
	phi := big.NewInt(60 * 52)
	check := new(big.Int).Mul(pair.PublicExponent, pair.PrivateExponent)
	assert.Equal(t, int64(1), check.Mod(check, phi).Int64())

	_, err = NewKeyPairFromPrimes(primeWithoutInverse(), big.NewInt(1_000_003), 40)
	assert.ErrorIs(t, err, cryptoalg.ErrInvalidKeyMaterial)
}
