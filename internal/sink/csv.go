// Package sink persists memory samples to an append-only CSV log.
//
// Sink failures never interrupt monitoring: open and write errors degrade
// to a single warning and the sink disables itself for the rest of the
// session.
package sink

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/glueful/memwatch/internal/logger"
	"github.com/glueful/memwatch/internal/sampler"
)

// header is the fixed six-column CSV header, written only when the file is
// created. Existing files are appended to without rewriting it.
var header = []string{
	"Timestamp",
	"Iteration",
	"Current (bytes)",
	"Peak (bytes)",
	"Limit (bytes)",
	"Usage (%)",
}

// timestampLayout matches the console timestamp format.
const timestampLayout = "2006-01-02 15:04:05"

// CSVSink appends samples to a CSV file. The zero value is a disabled sink.
type CSVSink struct {
	file     *os.File
	writer   *csv.Writer
	log      logger.Logger
	disabled bool
}

// Open binds a sink to path, creating the file with a header row if it does
// not already exist. Open failures return a disabled sink (never nil) after
// warning through log; monitoring continues without persisted metrics.
func Open(path string, log logger.Logger) *CSVSink {
	if log == nil {
		log = logger.Noop()
	}
	s := &CSVSink{log: log}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			s.degrade("create directory for "+path, err)
			return s
		}
	}

	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		s.degrade("open "+path, err)
		return s
	}

	s.file = file
	s.writer = csv.NewWriter(file)

	if isNew {
		if err := s.writer.Write(header); err != nil {
			s.degrade("write header to "+path, err)
			return s
		}
		s.writer.Flush()
		if err := s.writer.Error(); err != nil {
			s.degrade("write header to "+path, err)
			return s
		}
	}

	return s
}

// Record appends one sample row. Rows carry the iteration counter so the
// log preserves strict collection order. Write failures disable the sink.
func (s *CSVSink) Record(sample sampler.Sample, iteration int) {
	if s == nil || s.disabled || s.writer == nil {
		return
	}

	row := []string{
		sample.Timestamp.Format(timestampLayout),
		strconv.Itoa(iteration),
		strconv.FormatUint(sample.Current, 10),
		strconv.FormatUint(sample.Peak, 10),
		strconv.FormatUint(sample.Limit, 10),
		strconv.FormatFloat(sample.Percent, 'f', 2, 64),
	}

	if err := s.writer.Write(row); err != nil {
		s.degrade("write sample", err)
		return
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.degrade("write sample", err)
	}
}

// Enabled reports whether samples are being persisted.
func (s *CSVSink) Enabled() bool {
	return s != nil && !s.disabled && s.writer != nil
}

// Close flushes and releases the underlying file. Idempotent.
func (s *CSVSink) Close() {
	if s == nil || s.file == nil {
		return
	}
	if s.writer != nil && !s.disabled {
		s.writer.Flush()
	}
	_ = s.file.Close()
	s.file = nil
	s.writer = nil
}

// degrade disables the sink after its first failure. One warning, then
// silence; the session keeps running without persisted metrics.
func (s *CSVSink) degrade(op string, err error) {
	s.disabled = true
	s.log.Warn("CSV logging disabled: failed to %s: %v", op, err)
	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
		s.writer = nil
	}
}
