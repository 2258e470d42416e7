// Package keyfile stores textbook RSA key halves as plain text files of three decimal lines:
// exponent, modulus and key bit length.
package keyfile
