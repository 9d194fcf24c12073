package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrStreamRead marks a read failure inside the streamer.
var ErrStreamRead = errors.New("stream read")

// channelDepth bounds how many batches may queue before the reader waits
// for the consumer.
const channelDepth = 64

// Batch is one group of lines read from the source. A batch carrying Err
// is always the last value sent before the channel closes.
type Batch struct {
	Lines []string
	Err   error
}

// Start launches a goroutine that reads r line by line and delivers the
// lines in batches of batchSize. It returns immediately. The channel is
// closed at end of input, after a read error, or once ctx is done.
func Start(ctx context.Context, r io.Reader, batchSize int, logger *slog.Logger) <-chan Batch {
	if batchSize <= 0 {
		batchSize = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	out := make(chan Batch, channelDepth)
	go func() {
		defer close(out)
		pump(ctx, r, batchSize, out, logger)
	}()
	return out
}

func pump(ctx context.Context, r io.Reader, batchSize int, out chan<- Batch, logger *slog.Logger) {
	reader := bufio.NewReader(transform.NewReader(r, unicode.UTF8.NewDecoder()))
	for {
		lines, err := readBatch(reader, batchSize)
		if len(lines) > 0 {
			logger.Debug("read batch", "lines", len(lines))
			if !send(ctx, out, Batch{Lines: lines}) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			logger.Debug("input exhausted")
			return
		}
		if err != nil {
			logger.Warn("read input", "error", err)
			send(ctx, out, Batch{Err: fmt.Errorf("%w: %w", ErrStreamRead, err)})
			return
		}
	}
}

// readBatch collects up to size lines. Lines read before an error are
// returned alongside it.
func readBatch(reader *bufio.Reader, size int) ([]string, error) {
	lines := make([]string, 0, size)
	for len(lines) < size {
		line, err := reader.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimSuffix(line, "\n"))
		}
		if err != nil {
			return lines, err
		}
	}
	return lines, nil
}

func send(ctx context.Context, out chan<- Batch, batch Batch) bool {
	select {
	case out <- batch:
		return true
	case <-ctx.Done():
		return false
	}
}
