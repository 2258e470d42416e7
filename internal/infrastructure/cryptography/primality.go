package cryptography

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	"math/rand"
	"sync"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
)

// DefaultMillerRabinRounds bounds the false positive probability of a composite by 4^-20.
const DefaultMillerRabinRounds = 20

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// primalityTester combines trial division by a small prime table with Miller-Rabin rounds.
type primalityTester struct {
	table  *SmallPrimeTable
	rounds int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPrimalityTester creates a tester over table running rounds Miller-Rabin rounds.
// Witness bases come from rng, or from a math/rand source seeded by crypto/rand when rng is nil;
// they only affect soundness of the test, not secrecy.
func NewPrimalityTester(table *SmallPrimeTable, rounds int, rng *rand.Rand) (cryptoalg.PrimalityTester, error) {
	if table == nil {
		return nil, fmt.Errorf("small prime table cannot be nil")
	}
	if rounds < 1 {
		return nil, fmt.Errorf("miller-rabin rounds must be positive, got %d", rounds)
	}
	if rng == nil {
		seeded, err := newSeededRand()
		if err != nil {
			return nil, err
		}
		rng = seeded
	}

	return &primalityTester{
		table:  table,
		rounds: rounds,
		rng:    rng,
	}, nil
}

// IsPrime reports whether n is prime: tabled primes are accepted, multiples of a tabled prime are
// rejected and everything else goes through Miller-Rabin.
func (t *primalityTester) IsPrime(n *big.Int) bool {
	if n.Cmp(two) < 0 {
		return false
	}
	if t.table.Contains(n) {
		return true
	}
	if _, divisible := t.table.Divisor(n); divisible {
		return false
	}
	return t.millerRabin(n)
}

// millerRabin expects an odd n > 3.
func (t *primalityTester) millerRabin(n *big.Int) bool {
	nMinusOne := new(big.Int).Sub(n, one)

	// n-1 = 2^s * d with d odd
	s := nMinusOne.TrailingZeroBits()
	d := new(big.Int).Rsh(nMinusOne, s)

	// bases are uniform in [2, n-2]
	span := new(big.Int).Sub(n, three)
	x := new(big.Int)

	for round := 0; round < t.rounds; round++ {
		a := t.randomBelow(span)
		a.Add(a, two)

		x.Exp(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinusOne) == 0 {
			continue
		}

		witnessed := true
		for r := uint(1); r < s; r++ {
			x.Mul(x, x).Mod(x, n)
			if x.Cmp(nMinusOne) == 0 {
				witnessed = false
				break
			}
		}
		if witnessed {
			return false
		}
	}
	return true
}

func (t *primalityTester) randomBelow(limit *big.Int) *big.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return new(big.Int).Rand(t.rng, limit)
}

func newSeededRand() (*rand.Rand, error) {
	var seed [8]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("failed to seed witness generator: %w", err)
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(seed[:])))), nil //nolint:gosec // witness bases need no secrecy
}
