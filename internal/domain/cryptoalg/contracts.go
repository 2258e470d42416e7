package cryptoalg

import (
	"context"
	"io"
	"math/big"
)

// PrimalityTester decides probabilistic primality of an arbitrary-precision integer.
type PrimalityTester interface {
	// IsPrime reports whether n is prime. A composite passes with probability at most 4^-k for k rounds.
	IsPrime(n *big.Int) bool
}

// PrimeGenerator produces random primes of an exact bit length.
type PrimeGenerator interface {
	// GeneratePrime returns an odd prime with exactly bits significant bits.
	GeneratePrime(ctx context.Context, bits int) (*big.Int, error)
}

// KeyGenerator derives textbook RSA key pairs.
type KeyGenerator interface {
	// GenerateKeyPair derives a key pair from two primes of totalBits/2+1 bits each.
	GenerateKeyPair(ctx context.Context, totalBits int) (*KeyPair, error)
}

// StreamCipher encrypts and decrypts byte streams block by block.
type StreamCipher interface {
	// Encrypt reads plaintext blocks from in and writes ciphertext blocks to out using the public half.
	Encrypt(ctx context.Context, in io.Reader, key *KeyHalf, out io.Writer) (*StreamStats, error)

	// Decrypt reads ciphertext blocks from in and writes plaintext to out using the private half.
	Decrypt(ctx context.Context, in io.Reader, key *KeyHalf, out io.Writer) (*StreamStats, error)
}

// KeyStore persists key pairs as two key files inside a directory.
type KeyStore interface {
	// WriteKeyPair writes the public and private key files into dir.
	WriteKeyPair(pair *KeyPair, dir string) error

	// ReadKeyHalf reads one key file.
	ReadKeyHalf(path string) (*KeyHalf, error)

	// ReadPublicKey reads the public key file of dir.
	ReadPublicKey(dir string) (*KeyHalf, error)

	// ReadPrivateKey reads the private key file of dir.
	ReadPrivateKey(dir string) (*KeyHalf, error)
}
