package cryptography

import (
	"iter"
	"math/big"
	"slices"
	"sync"
)

// smallPrimes holds the first 100 primes, 2 through 541.
var smallPrimes = []uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151, 157, 163, 167, 173,
	179, 181, 191, 193, 197, 199, 211, 223, 227, 229, 233, 239, 241, 251, 257, 263, 269, 271, 277, 281,
	283, 293, 307, 311, 313, 317, 331, 337, 347, 349, 353, 359, 367, 373, 379, 383, 389, 397, 401, 409,
	419, 421, 431, 433, 439, 443, 449, 457, 461, 463, 467, 479, 487, 491, 499, 503, 509, 521, 523, 541,
}

// SmallPrimeTable is an ordered, append-only table of consecutive primes starting at 2.
// It is safe for concurrent use.
type SmallPrimeTable struct {
	mu     sync.RWMutex
	primes []uint64
}

// NewSmallPrimeTable returns a table holding every prime up to bound, and at least 2 through 541.
func NewSmallPrimeTable(bound uint64) *SmallPrimeTable {
	t := &SmallPrimeTable{primes: slices.Clone(smallPrimes)}
	t.ExtendTo(bound)
	return t
}

// Len returns the number of tabled primes.
func (t *SmallPrimeTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.primes)
}

// Largest returns the largest tabled prime.
func (t *SmallPrimeTable) Largest() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primes[len(t.primes)-1]
}

// snapshot returns a copy of the tabled primes.
func (t *SmallPrimeTable) snapshot() []uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.primes)
}

// Contains reports whether n is one of the tabled primes.
func (t *SmallPrimeTable) Contains(n *big.Int) bool {
	if n.Sign() <= 0 || !n.IsUint64() {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, found := slices.BinarySearch(t.primes, n.Uint64())
	return found
}

// Divisor returns the smallest tabled prime dividing n.
func (t *SmallPrimeTable) Divisor(n *big.Int) (uint64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	divisor, remainder := new(big.Int), new(big.Int)
	for _, p := range t.primes {
		divisor.SetUint64(p)
		if remainder.Rem(n, divisor).Sign() == 0 {
			return p, true
		}
	}
	return 0, false
}

// extend appends the next count primes and returns the new largest prime.
func (t *SmallPrimeTable) extend(count int) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	for added := 0; added < count; added++ {
		t.appendNext()
	}
	return t.primes[len(t.primes)-1]
}

// ExtendTo appends primes until the next one would exceed bound.
func (t *SmallPrimeTable) ExtendTo(bound uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for candidate := t.primes[len(t.primes)-1] + 2; candidate <= bound; candidate += 2 {
		if t.isTablePrime(candidate) {
			t.primes = append(t.primes, candidate)
		}
	}
}

// all yields the tabled primes in order and then keeps growing the table, without end.
func (t *SmallPrimeTable) all() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for i := 0; ; i++ {
			p, ok := t.at(i)
			for !ok {
				t.extend(1)
				p, ok = t.at(i)
			}
			if !yield(p) {
				return
			}
		}
	}
}

func (t *SmallPrimeTable) at(i int) (uint64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i >= len(t.primes) {
		return 0, false
	}
	return t.primes[i], true
}

// appendNext walks odd candidates past the largest prime. Callers hold the write lock.
func (t *SmallPrimeTable) appendNext() {
	candidate := t.primes[len(t.primes)-1] + 2
	for !t.isTablePrime(candidate) {
		candidate += 2
	}
	t.primes = append(t.primes, candidate)
}

// isTablePrime is exact for odd candidates below the square of the largest tabled prime, which
// always holds for the next prime after it.
func (t *SmallPrimeTable) isTablePrime(candidate uint64) bool {
	for _, p := range t.primes {
		if p*p > candidate {
			return true
		}
		if candidate%p == 0 {
			return false
		}
	}
	return true
}
