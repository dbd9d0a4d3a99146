// Package extractor coordinates batch feature extraction: it drains an
// audio source, runs the MFCC pipeline per utterance, and writes keyed
// feature matrices to a sink in input order.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/RyanBlaney/mfcc-extract/pkg/audio"
	"github.com/RyanBlaney/mfcc-extract/pkg/logging"
	"github.com/RyanBlaney/mfcc-extract/pkg/mfcc"
	"github.com/RyanBlaney/mfcc-extract/pkg/sink"
	"github.com/RyanBlaney/mfcc-extract/pkg/source"
)

// Options controls batch behavior around the core pipeline.
type Options struct {
	MinDuration time.Duration // utterances shorter than this are skipped before extraction
	Standardize bool          // per-utterance zero-mean/unit-variance normalization
	Permissive  bool          // skip failed utterances instead of halting the batch
	Workers     int           // parallel pipeline workers; <= 1 means sequential
}

// Summary reports the outcome of a batch run.
type Summary struct {
	Processed    int `json:"processed"`
	SkippedShort int `json:"skipped_short"`
	Failed       int `json:"failed"`
	TotalFrames  int `json:"total_frames"`
}

// Runner runs the extraction pipeline over a source. The pipeline per
// utterance is sequential; utterances are processed in parallel with
// the filter bank cache as the only shared (read-only) state.
type Runner struct {
	ex     *mfcc.Extractor
	opts   Options
	logger logging.Logger
}

// NewRunner builds a runner around a validated pipeline configuration.
func NewRunner(cfg mfcc.Config, opts Options, logger logging.Logger) (*Runner, error) {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	ex, err := mfcc.NewExtractor(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &Runner{
		ex:     ex,
		opts:   opts,
		logger: logger.WithFields(logging.Fields{"component": "batch_runner"}),
	}, nil
}

type result struct {
	matrix *mfcc.FeatureMatrix
	err    error
}

type task struct {
	key string
	utt *source.Utterance
	res chan result
}

// Run drains src, extracting features for each utterance and writing
// them to snk in input order. In strict mode the first failure aborts
// the batch; in permissive mode failures are logged and skipped. Sink
// write errors always abort.
func (r *Runner) Run(ctx context.Context, src source.Source, snk sink.Sink) (*Summary, error) {
	workers := r.opts.Workers
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	tasks := make(chan *task, workers)
	ordered := make(chan *task, workers*2)

	var skippedShort, failedSource int

	// Reader: sequential source drain, duration filter, dispatch.
	g.Go(func() error {
		defer close(tasks)
		defer close(ordered)
		for {
			utt, err := src.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				if r.opts.Permissive {
					failedSource++
					r.logger.Warn("skipping unreadable utterance", logging.Fields{"error": err.Error()})
					continue
				}
				return err
			}
			if utt.Buffer.Duration() < r.opts.MinDuration {
				skippedShort++
				r.logger.Debug("skipping short utterance", logging.Fields{
					"key":      utt.Key,
					"duration": utt.Buffer.Duration().Seconds(),
				})
				continue
			}

			t := &task{key: utt.Key, utt: utt, res: make(chan result, 1)}
			select {
			case ordered <- t:
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case tasks <- t:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	// Workers: the pure pipeline pass, parallel across utterances.
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for t := range tasks {
				m, err := r.processOne(t.key, t.utt.Buffer)
				t.res <- result{matrix: m, err: err}
			}
			return nil
		})
	}

	// Writer: sequential, preserves input key order in the sink.
	var processed, failedProcess, totalFrames int
	g.Go(func() error {
		for t := range ordered {
			var res result
			select {
			case res = <-t.res:
			case <-ctx.Done():
				return ctx.Err()
			}

			if res.err != nil {
				if r.opts.Permissive {
					failedProcess++
					r.logger.Warn("skipping failed utterance", logging.Fields{
						"key":   t.key,
						"error": res.err.Error(),
					})
					continue
				}
				return res.err
			}

			if err := snk.Write(t.key, res.matrix); err != nil {
				return fmt.Errorf("writing features for %q: %w", t.key, err)
			}
			processed++
			totalFrames += res.matrix.Rows()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{
		Processed:    processed,
		SkippedShort: skippedShort,
		Failed:       failedSource + failedProcess,
		TotalFrames:  totalFrames,
	}
	r.logger.Info("batch extraction finished", logging.Fields{
		"processed":     summary.Processed,
		"skipped_short": summary.SkippedShort,
		"failed":        summary.Failed,
		"total_frames":  summary.TotalFrames,
	})
	return summary, nil
}

// processOne runs resample, downmix, extraction, and optional
// standardization for a single utterance.
func (r *Runner) processOne(key string, buf *audio.Buffer) (*mfcc.FeatureMatrix, error) {
	decimated, err := audio.Decimate(buf, r.ex.Config().SampleRate)
	if err != nil {
		return nil, tagKey(err, key)
	}
	sig := audio.DownmixMono(decimated)

	m, err := r.ex.Extract(sig)
	if err != nil {
		return nil, tagKey(err, key)
	}

	if r.opts.Standardize {
		if err := mfcc.Standardize(m); err != nil {
			return nil, tagKey(err, key)
		}
	}
	return m, nil
}

// tagKey attaches the utterance key to pipeline errors that lack one,
// including errors wrapped by intermediate stages.
func tagKey(err error, key string) error {
	var perr *audio.ProcessingError
	if errors.As(err, &perr) && perr.Key == "" {
		perr.Key = key
	}
	return err
}
