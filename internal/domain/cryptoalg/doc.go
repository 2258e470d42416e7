// Package cryptoalg defines the textbook RSA engine: key material, block framing, error kinds and
// the contracts of the primality tester, prime generator, key generator, stream cipher and key store.
package cryptoalg
