// Package sink writes the scanner's output stream: one JSON object per
// line. Capture records are the data plane; diagnostics never go here.
package sink

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"go.uber.org/zap"

	"probescan/internal/models"
)

// StatsPrefix marks periodic stats lines so downstream consumers can
// split them from capture records without parsing.
const StatsPrefix = "# STATS: "

// Writer serializes records to newline-delimited JSON. Safe for use from
// the capture callback and the scheduler concurrently.
type Writer struct {
	mu  sync.Mutex
	out *bufio.Writer
	log *zap.Logger
}

func New(w io.Writer, log *zap.Logger) *Writer {
	return &Writer{out: bufio.NewWriter(w), log: log}
}

// WriteRecord emits one capture record as a single line. The record is
// marshaled before any bytes are written, so a marshal failure emits
// nothing rather than a partial line.
func (w *Writer) WriteRecord(rec *models.CaptureRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return w.writeLine("", b)
}

// WriteStats emits a stats record under the stats prefix.
func (w *Writer) WriteStats(st *models.StatsRecord) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return w.writeLine(StatsPrefix, b)
}

func (w *Writer) writeLine(prefix string, b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if prefix != "" {
		if _, err := w.out.WriteString(prefix); err != nil {
			return err
		}
	}
	if _, err := w.out.Write(b); err != nil {
		return err
	}
	if err := w.out.WriteByte('\n'); err != nil {
		return err
	}
	return w.out.Flush()
}
