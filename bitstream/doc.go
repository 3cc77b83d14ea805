// Package bitstream implements a byte-addressable, MSB-first bit buffer.
//
// A Writer accumulates bits into a growable byte buffer; a position
// (byte offset, bit offset) pair addresses any bit previously written.
// ReadBits is a pure function of the underlying bytes and a position: it
// performs no mutation and can be called repeatedly at the same
// position.
//
// All multi-bit values are packed most-significant-bit first within each
// byte, matching the on-wire layout described for the block codec that
// sits on top of this package.
package bitstream
