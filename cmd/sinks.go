package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bnema/pmc-telemetry/internal/adapters/emit/jsonl"
	otelemit "github.com/bnema/pmc-telemetry/internal/adapters/emit/otel"
	otelplatform "github.com/bnema/pmc-telemetry/internal/platform/otel"
	"github.com/bnema/pmc-telemetry/internal/ports"
)

const (
	sinkLog   = "log"
	sinkJSONL = "jsonl"
	sinkOTel  = "otel"
)

var knownSinks = []string{sinkLog, sinkJSONL, sinkOTel}

// sinkCloser releases one sink once the aggregator is done with it.
type sinkCloser struct {
	sink  string
	close func(context.Context) error
}

func (c sinkCloser) run(ctx context.Context) error {
	if err := c.close(ctx); err != nil {
		return fmt.Errorf("close %s sink: %w", c.sink, err)
	}
	return nil
}

// sinkSet holds the emitters selected for one command run and the cleanup
// to run once the aggregator is done with them.
type sinkSet struct {
	emitters []ports.Emitter
	// flushes is set when a closer exports buffered events over the network.
	flushes  bool
	closers  []sinkCloser
}

// close runs every closer in order, even after a failure.
func (s *sinkSet) close(ctx context.Context) error {
	var errs error
	for _, closer := range s.closers {
		errs = errors.Join(errs, closer.run(ctx))
	}
	return errs
}

func parseSinks(raw string) ([]string, error) {
	var sinks []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(strings.ToLower(part))
		if name == "" {
			continue
		}
		if !slices.Contains(knownSinks, name) {
			return nil, fmt.Errorf("unknown sink %q (known: %s)", name, strings.Join(knownSinks, ", "))
		}
		if !slices.Contains(sinks, name) {
			sinks = append(sinks, name)
		}
	}

	return sinks, nil
}

func (a *app) openSinks(ctx context.Context, names []string) (*sinkSet, error) {
	set := &sinkSet{}

	for _, name := range names {
		switch name {
		case sinkLog:
			set.emitters = append(set.emitters, a.eventLog)
		case sinkJSONL:
			path := a.config.GetString(jsonlPathKey)
			if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
				_ = set.close(ctx)
				return nil, fmt.Errorf("create jsonl directory: %w", err)
			}
			file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err != nil {
				_ = set.close(ctx)
				return nil, fmt.Errorf("open jsonl sink: %w", err)
			}
			set.emitters = append(set.emitters, jsonl.NewSink(file, a.clock))
			set.closers = append(set.closers, sinkCloser{
				sink:  sinkJSONL,
				close: func(context.Context) error { return file.Close() },
			})
		case sinkOTel:
			if !a.otel.Active() {
				_ = set.close(ctx)
				return nil, errors.New("otel sink requires PMCT_OTEL_ENDPOINT and PMCT_OTEL_ENABLED not false")
			}
			provider, shutdown, err := otelplatform.Setup(ctx, a.otel)
			if err != nil {
				_ = set.close(ctx)
				return nil, fmt.Errorf("setup otel: %w", err)
			}
			set.emitters = append(set.emitters, otelemit.NewEmitter(provider))
			set.closers = append(set.closers, sinkCloser{sink: sinkOTel, close: shutdown})
			set.flushes = true
		}
	}

	return set, nil
}
