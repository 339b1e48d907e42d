package transport

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/goodnatureofminers/tta-backend/pkg/batcher"
	"go.uber.org/zap"
)

const statusTrailer = "X-Report-Status"

// SinkConfig controls how CSV records are batched before reaching the client.
type SinkConfig struct {
	FlushSize     int
	FlushInterval time.Duration
	FlushRPS      int
}

// DefaultSinkConfig returns the settings used when none are configured.
func DefaultSinkConfig() SinkConfig {
	return SinkConfig{
		FlushSize:     256,
		FlushInterval: 200 * time.Millisecond,
		FlushRPS:      1000,
	}
}

func (c SinkConfig) withDefaults() SinkConfig {
	d := DefaultSinkConfig()
	if c.FlushSize <= 0 {
		c.FlushSize = d.FlushSize
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = d.FlushInterval
	}
	if c.FlushRPS <= 0 {
		c.FlushRPS = d.FlushRPS
	}
	return c
}

// csvSink queues records on a batcher whose loop writes them to the response.
// The response status and headers are committed by the first flush, so a request
// that fails before producing a record can still be answered with an error status.
type csvSink struct {
	w         http.ResponseWriter
	csv       *csv.Writer
	filename  string
	batcher   *batcher.Batcher[[]string]
	committed bool
}

func newCSVSink(w http.ResponseWriter, filename string, cfg SinkConfig, logger *zap.Logger) *csvSink {
	cfg = cfg.withDefaults()
	s := &csvSink{
		w:        w,
		csv:      csv.NewWriter(w),
		filename: filename,
	}
	s.batcher = batcher.New(logger.Named("csv_sink"), s.flush, cfg.FlushSize, cfg.FlushInterval, cfg.FlushRPS)
	return s
}

func (s *csvSink) start(ctx context.Context) {
	s.batcher.Start(ctx)
}

// Write queues a record; it blocks while the queue is full.
func (s *csvSink) Write(ctx context.Context, record []string) error {
	return s.batcher.Add(ctx, record)
}

// close flushes the queued records and stops the writer loop.
func (s *csvSink) close() error {
	return s.batcher.Stop()
}

func (s *csvSink) flush(_ context.Context, records [][]string) error {
	s.commit()
	if err := s.csv.WriteAll(records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}

func (s *csvSink) commit() {
	if s.committed {
		return
	}
	h := s.w.Header()
	h.Set("Content-Type", "text/csv")
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.filename))
	h.Set("Trailer", statusTrailer)
	s.w.WriteHeader(http.StatusOK)
	s.committed = true
}

// finish ends a committed stream. Must be called after close.
func (s *csvSink) finish(err error) {
	s.commit()
	status := "ok"
	if err != nil {
		reason := failureReason(err)
		_ = s.csv.Write([]string{"ERROR", reason})
		s.csv.Flush()
		status = "error: " + reason
	}
	s.w.Header().Set(statusTrailer, status)
}
