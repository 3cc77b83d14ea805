// Package stream owns an ordered collection of blocks and routes appends
// between them, presenting the whole collection as a single append-only
// time-series encoder.
package stream
