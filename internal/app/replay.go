package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jkalina/flowreplay/internal/capture"
	uferrors "github.com/jkalina/flowreplay/internal/errors"
	"github.com/jkalina/flowreplay/internal/flow"
	"github.com/jkalina/flowreplay/internal/logging"
	"github.com/jkalina/flowreplay/internal/replay"
)

// ReplayOptions configure one replay run.
type ReplayOptions struct {
	Input   string
	Target  replay.Target
	Verbose bool
	LogFile string

	// Out receives the summary line; defaults to os.Stdout.
	Out io.Writer
}

// RunReplay reads the capture, classifies each frame, forwards
// recognized flow-export payloads over per-tuple sessions and prints
// the summary. Frames are processed strictly one at a time in capture
// order; a cancelled context aborts between frames.
func RunReplay(ctx context.Context, opts ReplayOptions) (replay.Stats, error) {
	var stats replay.Stats

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	level := logging.LogLevelInfo
	if opts.Verbose {
		level = logging.LogLevelVerbose
	}
	log, err := logging.NewLogger(level, opts.LogFile)
	if err != nil {
		return stats, err
	}
	defer log.Close()
	log.LogStartup(opts.Input, opts.Target.Addr, opts.Target.Port, string(opts.Target.Proto))

	reader, err := capture.OpenFile(opts.Input)
	if err != nil {
		return stats, uferrors.WrapCaptureError(err, opts.Input)
	}
	defer reader.Close()

	registry := replay.NewRegistry(opts.Target, log)
	defer registry.CloseAll()
	forwarder := replay.NewForwarder(registry)

	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		pkt, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, uferrors.WrapCaptureError(err, opts.Input)
		}

		stats.FramesTotal++
		log.Verbose("Processing %d. packet", stats.FramesTotal)

		result := flow.Classify(pkt)
		if !result.Classified() {
			log.Verbose("%s. Skipping...", result.Skip)
			continue
		}
		version, skip := flow.Sniff(result.Payload)
		if skip != flow.SkipNone {
			log.Verbose("%s. Skipping...", skip)
			continue
		}
		log.Debug("%s payload of %d bytes for %s", version, len(result.Payload), result.Tuple)

		if err := forwarder.Forward(ctx, result.Tuple, result.Payload); err != nil {
			stats.SessionsCreated = registry.Created()
			return stats, uferrors.WrapSessionError(err, opts.Target.Addr, opts.Target.Port, string(opts.Target.Proto))
		}
		stats.FramesSent++
	}

	stats.SessionsCreated = registry.Created()
	fmt.Fprintln(out, stats.Summary())
	return stats, nil
}
