package cryptoalg

import "errors"

var (
	// ErrInvalidKeyMaterial reports a key that cannot drive the block cipher.
	ErrInvalidKeyMaterial = errors.New("invalid key material")
	// ErrMalformedKeyFile reports an unparsable or incomplete exponent/modulus/bit length triple.
	ErrMalformedKeyFile = errors.New("malformed key file")
	// ErrStreamTruncated reports end of input in the middle of a block that had to be complete.
	ErrStreamTruncated = errors.New("stream truncated")
	// ErrMalformedBlock reports a block value that does not fit its width or lacks the final block marker.
	ErrMalformedBlock = errors.New("malformed block")
	// ErrInvalidBitLength reports a requested prime or key size that is too small.
	ErrInvalidBitLength = errors.New("invalid bit length")
)
