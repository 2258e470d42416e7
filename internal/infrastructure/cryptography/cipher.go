package cryptography

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
)

// TransformBlock computes m^exponent mod modulus.
func TransformBlock(m, exponent, modulus *big.Int) (*big.Int, error) {
	if modulus == nil || modulus.Cmp(one) <= 0 {
		return nil, fmt.Errorf("%w: modulus must be greater than 1", cryptoalg.ErrInvalidKeyMaterial)
	}
	if exponent == nil || exponent.Sign() < 0 {
		return nil, fmt.Errorf("%w: exponent must not be negative", cryptoalg.ErrInvalidKeyMaterial)
	}
	return new(big.Int).Exp(m, exponent, modulus), nil
}

// streamCipher applies TransformBlock to every block of a stream, in order, writing each result
// as soon as it is computed.
type streamCipher struct {
	framing cryptoalg.Framing
	logger  logger.Logger
}

// NewStreamCipher creates a stream cipher delimiting the final block with framing.
func NewStreamCipher(framing cryptoalg.Framing, logger logger.Logger) (cryptoalg.StreamCipher, error) {
	if framing != cryptoalg.FramingMarker && framing != cryptoalg.FramingLegacy {
		return nil, fmt.Errorf("unsupported framing %v", framing)
	}

	return &streamCipher{
		framing: framing,
		logger:  logger,
	}, nil
}

// Encrypt reads PlainBlockSize chunks and writes CipherBlockSize blocks.
func (c *streamCipher) Encrypt(ctx context.Context, in io.Reader, key *cryptoalg.KeyHalf, out io.Writer) (*cryptoalg.StreamStats, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	scanner := NewPlainBlockScanner(in, key.PlainBlockSize())
	buffered := bufio.NewWriter(out)
	writer := NewBlockWriter(buffered, key.CipherBlockSize())
	stats := &cryptoalg.StreamStats{}

	// legacy streams carry no marker at all
	markerWritten := c.framing == cryptoalg.FramingLegacy

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("encryption aborted after %d blocks: %w", stats.Blocks, err)
		}

		block := scanner.Block()
		m := block.Value
		if block.Last && !markerWritten && block.Len < key.PlainBlockSize() {
			m = withLengthMarker(m, block.Len)
			markerWritten = true
		}

		if err := c.transformInto(writer, m, key); err != nil {
			return nil, err
		}
		stats.Blocks++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read plaintext: %w", err)
	}

	// a full (or absent) final chunk leaves no room for the marker, so it gets a block of its own
	if !markerWritten {
		if err := c.transformInto(writer, withLengthMarker(new(big.Int), 0), key); err != nil {
			return nil, err
		}
		stats.Blocks++
	}

	if err := buffered.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush ciphertext: %w", err)
	}

	stats.BytesIn = scanner.BytesRead()
	stats.BytesOut = writer.BytesWritten()
	c.logger.Debug(fmt.Sprintf("Encrypted %d bytes into %d blocks", stats.BytesIn, stats.Blocks))
	return stats, nil
}

// Decrypt reads CipherBlockSize blocks and writes PlainBlockSize chunks; with marker framing the
// last chunk is cut back to its original length.
func (c *streamCipher) Decrypt(ctx context.Context, in io.Reader, key *cryptoalg.KeyHalf, out io.Writer) (*cryptoalg.StreamStats, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	scanner := NewCipherBlockScanner(in, key.CipherBlockSize())
	buffered := bufio.NewWriter(out)
	writer := NewBlockWriter(buffered, key.PlainBlockSize())
	stats := &cryptoalg.StreamStats{}
	sawMarker := false

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("decryption aborted after %d blocks: %w", stats.Blocks, err)
		}

		block := scanner.Block()
		m, err := TransformBlock(block.Value, key.Exponent, key.Modulus)
		if err != nil {
			return nil, err
		}

		if block.Last && c.framing == cryptoalg.FramingMarker {
			payload, length, err := stripLengthMarker(m)
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", stats.Blocks, err)
			}
			if err := writer.WriteBlockN(payload, length); err != nil {
				return nil, fmt.Errorf("block %d: %w", stats.Blocks, err)
			}
			sawMarker = true
		} else if err := writer.WriteBlock(m); err != nil {
			return nil, fmt.Errorf("block %d: %w", stats.Blocks, err)
		}
		stats.Blocks++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ciphertext: %w", err)
	}
	if c.framing == cryptoalg.FramingMarker && !sawMarker {
		return nil, fmt.Errorf("%w: ciphertext holds no final block", cryptoalg.ErrStreamTruncated)
	}

	if err := buffered.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush plaintext: %w", err)
	}

	stats.BytesIn = scanner.BytesRead()
	stats.BytesOut = writer.BytesWritten()
	c.logger.Debug(fmt.Sprintf("Decrypted %d blocks into %d bytes", stats.Blocks, stats.BytesOut))
	return stats, nil
}

func (c *streamCipher) transformInto(writer *BlockWriter, m *big.Int, key *cryptoalg.KeyHalf) error {
	result, err := TransformBlock(m, key.Exponent, key.Modulus)
	if err != nil {
		return err
	}
	return writer.WriteBlock(result)
}

// withLengthMarker sets a 0x01 byte just above the length low bytes of m.
func withLengthMarker(m *big.Int, length int) *big.Int {
	return new(big.Int).SetBit(m, 8*length, 1)
}

// stripLengthMarker undoes withLengthMarker: the highest set bit must be the lowest bit of a byte.
func stripLengthMarker(v *big.Int) (*big.Int, int, error) {
	bits := v.BitLen()
	if bits == 0 || (bits-1)%8 != 0 {
		return nil, 0, fmt.Errorf("%w: final block carries no length marker (wrong key or bit length?)", cryptoalg.ErrMalformedBlock)
	}

	length := (bits - 1) / 8
	return new(big.Int).SetBit(v, 8*length, 0), length, nil
}
