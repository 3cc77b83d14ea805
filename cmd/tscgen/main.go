// Command tscgen generates a synthetic monotonic timestamp/value stream,
// feeds it through a stream.Encoder, and reports the resulting block
// count and encoded size. With -bench it additionally times repeated
// append and decode passes, the way the original compression
// benchmarks timed BM_AddTSPoints and BM_AddTSPointsAndDecode.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"log/slog"

	"github.com/arloliu/tscodec/internal/hash"
	"github.com/arloliu/tscodec/stream"
)

func main() {
	var (
		count       = flag.Int("n", 100_000, "number of samples to generate")
		intervalSec = flag.Int64("interval", 10, "nominal spacing between samples, in timestamp units")
		jitter      = flag.Int64("jitter", 2, "max random jitter applied to the interval, in timestamp units")
		bench       = flag.Bool("bench", false, "time repeated append and decode passes instead of a single run")
		benchN      = flag.Int("bench-iters", 10, "number of iterations when -bench is set")
		series      = flag.String("series", "synthetic", "series name, logged as a hashed id alongside the run")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil)).With("series_id", hash.ID(*series))

	samples := generate(*count, *intervalSec, *jitter)

	if *bench {
		runBench(logger, samples, *benchN)

		return
	}

	e := stream.NewEncoder()
	for _, s := range samples {
		if err := e.Append(s.ts, s.val); err != nil {
			logger.Error("append failed", "ts", s.ts, "err", err)
			os.Exit(1)
		}
	}

	size := 0
	for _, b := range e.Blocks() {
		size += b.ByteLen()
	}

	logger.Info("encoded stream",
		"samples", len(samples),
		"blocks", len(e.Blocks()),
		"encoded_bytes", size,
		"bytes_per_sample", float64(size)/float64(len(samples)),
	)
}

type sample struct {
	ts  uint64
	val float64
}

// generate produces a monotonic, semi-regular timestamp/value sequence:
// a sine wave sampled at roughly intervalSec spacing with up to ±jitter
// noise, which exercises both the steady-cadence dod fast path and the
// occasional wider delta-of-delta bucket.
func generate(count int, intervalSec, jitter int64) []sample {
	out := make([]sample, 0, count)

	var ts uint64
	for i := 0; i < count; i++ {
		out = append(out, sample{ts: ts, val: math.Sin(float64(ts) / 3600)})

		step := intervalSec
		if jitter > 0 {
			step += int64(i%int(2*jitter+1)) - jitter
		}
		if step < 1 {
			step = 1
		}
		ts += uint64(step)
	}

	return out
}

func runBench(logger *slog.Logger, samples []sample, iters int) {
	var appendTotal, decodeTotal time.Duration

	for i := 0; i < iters; i++ {
		start := time.Now()
		e := stream.NewEncoder()
		for _, s := range samples {
			if err := e.Append(s.ts, s.val); err != nil {
				logger.Error("append failed", "err", err)
				os.Exit(1)
			}
		}
		appendTotal += time.Since(start)

		start = time.Now()
		if _, err := e.Decode(); err != nil {
			logger.Error("decode failed", "err", err)
			os.Exit(1)
		}
		decodeTotal += time.Since(start)

		e.Release()
	}

	fmt.Printf("append: %v/iter (%d samples)\n", appendTotal/time.Duration(iters), len(samples))
	fmt.Printf("decode: %v/iter (%d samples)\n", decodeTotal/time.Duration(iters), len(samples))
}
