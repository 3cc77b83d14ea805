// Package compress provides compression and decompression codecs for
// blockio frame payloads.
//
// Compression is applied to an Encoded Block's finished bytes when
// framing it for storage or transport; the core codec itself has no
// notion of compression.
//
// # Supported algorithms
//
//   - None: no compression (fastest, largest)
//   - Zstd: best compression ratio, moderate speed
//   - S2: balanced compression and speed
//   - LZ4: fastest decompression, moderate compression
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Choosing an algorithm
//
// | Workload             | Recommended | Reason                         |
// |-----------------------|-------------|--------------------------------|
// | Storage-constrained   | Zstd        | Best compression ratio         |
// | Real-time ingestion   | S2          | Balanced speed and compression |
// | Query-heavy           | LZ4         | Fastest decompression          |
// | CPU-constrained       | None        | No compression overhead        |
//
// # Memory management
//
// Zstd and LZ4 use pooled encoders/decoders to avoid repeated allocator
// warmup; S2 and NoOp are stateless. Zstd, S2 and LZ4 return newly
// allocated slices owned by the caller; NoOp returns its input slice
// unchanged. Input slices are never modified.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	compressed, err := codec.Compress(data)
//	original, err := codec.Decompress(compressed)
//
// blockio.Writer selects a codec once, at construction, via
// blockio.WithCompression; every frame it writes names that algorithm
// in its header so blockio.Reader can look up the matching codec on
// decode regardless of which Writer configuration produced the frame.
package compress
