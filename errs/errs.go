// Package errs defines the sentinel errors shared by bitstream, block,
// stream, and blockio.
//
// Callers should compare against these with errors.Is, since most sites
// that return them wrap additional context with fmt.Errorf("%w: ...", ...).
package errs

import "errors"

var (
	// ErrShortBuffer is returned when a read would extend past the last
	// byte of a bit stream's data. A read that ends inside the unused
	// low-order bits of the final partial byte is not detected.
	ErrShortBuffer = errors.New("bitstream: read past logical end")

	// ErrCorruptBlock is returned when a block's bit stream cannot be
	// decoded: a record runs past the end of the data, a value record
	// asks to reuse an XOR window before any window was set, or a new
	// window's leading-zero and meaningful-bit counts add up to more
	// than 64.
	ErrCorruptBlock = errors.New("block: corrupt bit stream")

	// ErrOutOfOrderAppend is returned when Append is called with a
	// timestamp smaller than the last timestamp appended to the same
	// block or encoder.
	ErrOutOfOrderAppend = errors.New("block: timestamp out of order")

	// ErrEncoderFinished is returned when Append is called on a block or
	// encoder that has already been sealed.
	ErrEncoderFinished = errors.New("block: append after block sealed")

	// ErrChecksumMismatch is returned by blockio when a decoded frame's
	// checksum does not match its payload.
	ErrChecksumMismatch = errors.New("blockio: checksum mismatch")

	// ErrInvalidFrame is returned by blockio when a frame's magic, version,
	// or length fields are malformed.
	ErrInvalidFrame = errors.New("blockio: invalid frame")

	// ErrUnknownCompression is returned by blockio when a frame names a
	// compression type this build does not recognize.
	ErrUnknownCompression = errors.New("blockio: unknown compression type")
)
