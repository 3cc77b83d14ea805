// Package block implements a single Gorilla-style encoded block: a
// fixed-width header followed by a variable-length stream of
// (timestamp, value) records, packed into one bitstream.Writer.
//
// A Block covers a fixed time window of W = WindowSize timestamp units.
// Timestamps are delta-of-delta encoded (§4.3 in the design notes);
// values are XOR-encoded against the previous value with leading/
// trailing-zero window reuse (§4.4). Decoding is exposed only through a
// forward, single-pass Iterator (§4.6); there is no random access within
// a block.
package block
