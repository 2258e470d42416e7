package cryptography

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"slices"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
)

// Block is one chunk of a byte stream read as a little-endian unsigned integer.
type Block struct {
	Value *big.Int
	// Len is the number of bytes actually read; only a plaintext stream's last block can be short.
	Len int
	// Last is set on the final block of the stream.
	Last bool
}

// BlockScanner reads a byte stream as a lazy, finite sequence of fixed-width blocks. It reads one
// chunk ahead so the final block can be flagged. A scanner cannot be restarted.
type BlockScanner struct {
	r      io.Reader
	width  int
	strict bool

	cur, next []byte
	nextLen   int
	primed    bool
	done      bool

	block Block
	read  int64
	err   error
}

// NewPlainBlockScanner scans plaintext: width-byte chunks, the last of which may be shorter.
func NewPlainBlockScanner(r io.Reader, width int) *BlockScanner {
	return newBlockScanner(r, width, false)
}

// NewCipherBlockScanner scans ciphertext: every chunk must be exactly width bytes, a partial
// chunk fails with ErrStreamTruncated.
func NewCipherBlockScanner(r io.Reader, width int) *BlockScanner {
	return newBlockScanner(r, width, true)
}

func newBlockScanner(r io.Reader, width int, strict bool) *BlockScanner {
	s := &BlockScanner{r: r, width: width, strict: strict}
	if width > 0 {
		s.cur = make([]byte, width)
		s.next = make([]byte, width)
	}
	return s
}

// Scan advances to the next block. It returns false at the end of the stream or on error.
func (s *BlockScanner) Scan() bool {
	if s.done || s.err != nil {
		return false
	}
	if s.width <= 0 {
		s.err = fmt.Errorf("invalid block width %d", s.width)
		return false
	}

	if !s.primed {
		s.primed = true
		if s.nextLen, s.err = s.fill(s.next); s.err != nil {
			return false
		}
	}
	if s.nextLen == 0 {
		s.done = true
		return false
	}

	s.cur, s.next = s.next, s.cur
	curLen := s.nextLen
	s.nextLen = 0

	// a short chunk means the reader is exhausted
	if curLen == s.width {
		if s.nextLen, s.err = s.fill(s.next); s.err != nil {
			return false
		}
	}

	s.block = Block{
		Value: littleEndianToInt(s.cur[:curLen]),
		Len:   curLen,
		Last:  s.nextLen == 0,
	}
	return true
}

// Block returns the block read by the last successful Scan.
func (s *BlockScanner) Block() Block {
	return s.block
}

// Err returns the first error met by Scan.
func (s *BlockScanner) Err() error {
	return s.err
}

// BytesRead returns the number of bytes consumed so far, including the lookahead chunk.
func (s *BlockScanner) BytesRead() int64 {
	return s.read
}

func (s *BlockScanner) fill(buf []byte) (int, error) {
	n, err := io.ReadFull(s.r, buf)
	s.read += int64(n)

	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF):
		return 0, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		if s.strict {
			return n, fmt.Errorf("%w: got %d of %d block bytes", cryptoalg.ErrStreamTruncated, n, s.width)
		}
		return n, nil
	default:
		return n, fmt.Errorf("failed to read block: %w", err)
	}
}

// BlockWriter serializes integers as fixed-width little-endian blocks.
type BlockWriter struct {
	w       io.Writer
	width   int
	buf     []byte
	written int64
}

// NewBlockWriter creates a writer of width-byte blocks.
func NewBlockWriter(w io.Writer, width int) *BlockWriter {
	return &BlockWriter{w: w, width: width, buf: make([]byte, width)}
}

// WriteBlock writes v as a full-width block.
func (bw *BlockWriter) WriteBlock(v *big.Int) error {
	return bw.WriteBlockN(v, bw.width)
}

// WriteBlockN writes v as an n-byte block, n no wider than the writer's width.
// A value needing more than n bytes fails with ErrMalformedBlock.
func (bw *BlockWriter) WriteBlockN(v *big.Int, n int) error {
	if n < 0 || n > bw.width {
		return fmt.Errorf("block length %d outside [0, %d]", n, bw.width)
	}
	if v.Sign() < 0 || (v.BitLen()+7)/8 > n {
		return fmt.Errorf("%w: value of %d bits does not fit %d bytes", cryptoalg.ErrMalformedBlock, v.BitLen(), n)
	}

	out := bw.buf[:n]
	v.FillBytes(out)
	slices.Reverse(out)

	written, err := bw.w.Write(out)
	bw.written += int64(written)
	if err != nil {
		return fmt.Errorf("failed to write block: %w", err)
	}
	return nil
}

// BytesWritten returns the number of bytes written so far.
func (bw *BlockWriter) BytesWritten() int64 {
	return bw.written
}

func littleEndianToInt(b []byte) *big.Int {
	bigEndian := slices.Clone(b)
	slices.Reverse(bigEndian)
	return new(big.Int).SetBytes(bigEndian)
}
