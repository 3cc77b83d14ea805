package blockio

import (
	"github.com/arloliu/tscodec/format"
	"github.com/arloliu/tscodec/internal/options"
)

type config struct {
	compression format.CompressionType
}

// Option configures a Writer.
type Option = options.Option[*config]

// WithCompression selects the compression algorithm a Writer applies to
// each frame's payload. The default, if no Option is given, is
// format.CompressionNone.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *config) error {
		cfg.compression = c

		return nil
	})
}
