package calllog

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ssargent/calltrace/pkg/bplist"
	"github.com/ssargent/calltrace/pkg/extract"
	"github.com/ssargent/calltrace/pkg/locator"
	"github.com/ssargent/calltrace/pkg/timestamp"
)

// Options configures a Pipeline.
type Options struct {
	Workers         int    // Concurrent block decoders (0 = GOMAXPROCS)
	Marker          []byte // Block delimiter (nil = locator.BplistMagic)
	TimestampMarker []byte // Precedes raw call dates (nil = timestamp.DefaultMarker)
}

// DefaultOptions returns the options used by Decode.
func DefaultOptions() Options {
	return Options{
		Workers:         runtime.GOMAXPROCS(0),
		Marker:          locator.BplistMagic,
		TimestampMarker: timestamp.DefaultMarker,
	}
}

// Pipeline turns capture buffers into call records.
type Pipeline struct {
	opts      Options
	sink      Sink
	plist     *bplist.Decoder
	extractor extract.Extractor
}

// NewPipeline creates a pipeline reporting to sink. A nil sink discards
// diagnostics.
func NewPipeline(opts Options, sink Sink) *Pipeline {
	defaults := DefaultOptions()
	if opts.Workers <= 0 {
		opts.Workers = defaults.Workers
	}
	if len(opts.Marker) == 0 {
		opts.Marker = defaults.Marker
	}
	if len(opts.TimestampMarker) == 0 {
		opts.TimestampMarker = defaults.TimestampMarker
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Pipeline{
		opts:      opts,
		sink:      sink,
		plist:     bplist.NewDecoder(),
		extractor: extract.Extractor{TimestampMarker: opts.TimestampMarker},
	}
}

// Decode recovers records from buf with default options and no diagnostics.
func Decode(ctx context.Context, buf []byte) (*Result, error) {
	return NewPipeline(DefaultOptions(), nil).Decode(ctx, buf)
}

// Decode locates every block in buf, decodes the blocks concurrently and
// assembles the records. buf must not be modified until Decode returns.
//
// Bad blocks never fail the run; the only error is ctx's.
func (p *Pipeline) Decode(ctx context.Context, buf []byte) (*Result, error) {
	ranges := locator.Split(buf, p.opts.Marker)
	p.sink.RunStarted(len(ranges))

	blocks := make([]blockResult, len(ranges))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	for i, r := range ranges {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			blocks[i] = p.decodeBlock(r.Start, r.Bytes(buf))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := assemble(blocks, p.sink)
	return &result, nil
}

// decodeBlock runs both decoding paths over one block
func (p *Pipeline) decodeBlock(offset int, data []byte) blockResult {
	res := blockResult{offset: offset}

	structured, err := decodeStructured(p.plist, data)
	switch {
	case errors.Is(err, ErrNotCallRecord):
		res.shapeErr = err
	case err != nil:
		res.decodeErr = err
	}

	heuristic := fromExtract(p.extractor.Extract(data))
	res.merged, res.source = merge(structured, heuristic)
	return res
}
