// Package blockio frames a single Encoded Block's bytes for storage or
// transport. It sits beside the core codec, not inside it: the core
// exposes only append/iterate/decode, and blockio is the optional
// adapter that gives a finished block a persistent, checksummed,
// optionally-compressed wire form.
package blockio
