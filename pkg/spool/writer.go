// Package spool appends encoded records to a local file.
//
// Each entry is the record exactly as codec.Record.Serialize writes it; the
// varint length prefix frames one entry from the next. The spool does not
// assign offsets and does not read entries back.
package spool

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ssargent/brokercore/pkg/codec"
)

// Config holds configuration for the spool writer
type Config struct {
	FilePath      string        // Path to the spool file
	FsyncInterval time.Duration // How often to fsync (0 = every write)
	BufferSize    int           // Write buffer size
	Logger        *zap.Logger   // Optional, used for background fsync failures
}

// Writer handles append-only writes of encoded records
type Writer struct {
	file       *os.File
	writer     *bufio.Writer
	fsyncTimer *time.Timer
	config     Config
	logger     *zap.Logger
	mutex      sync.Mutex
	offset     int64 // Current write position
	records    int64
}

// NewWriter opens (or creates) the spool file for appending
func NewWriter(config Config) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create spool directory: %w", err)
	}

	file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open spool file: %w", err)
	}

	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to seek spool file: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bufferSize := config.BufferSize
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	writer := &Writer{
		file:   file,
		writer: bufio.NewWriterSize(file, bufferSize),
		config: config,
		logger: logger.With(zap.String("spool", config.FilePath)),
		offset: offset,
	}

	if config.FsyncInterval > 0 {
		writer.fsyncTimer = time.AfterFunc(config.FsyncInterval, func() {
			writer.mutex.Lock()
			defer writer.mutex.Unlock()
			if err := writer.sync(); err != nil {
				writer.logger.Warn("background fsync failed", zap.Error(err))
			}
		})
	}

	return writer, nil
}

// Append writes the encoded record and returns the file position it starts at
func (w *Writer) Append(record *codec.Record) (int64, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	start := w.offset
	n, err := record.Serialize(w.writer)
	w.offset += int64(n)
	if err != nil {
		return 0, fmt.Errorf("failed to append record: %w", err)
	}
	w.records++

	if w.config.FsyncInterval == 0 {
		if err := w.sync(); err != nil {
			return 0, err
		}
	} else if w.fsyncTimer != nil {
		w.fsyncTimer.Reset(w.config.FsyncInterval)
	}

	w.logger.Debug("record appended",
		zap.Int64("position", start),
		zap.Int("bytes", n),
		zap.Int64("offset", record.Offset()))

	return start, nil
}

// Sync forces a fsync to disk
func (w *Writer) Sync() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.sync()
}

func (w *Writer) sync() error {
	if err := w.writer.Flush(); err != nil {
		return err
	}
	return w.file.Sync()
}

// Close flushes, syncs and closes the spool file
func (w *Writer) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.fsyncTimer != nil {
		w.fsyncTimer.Stop()
	}

	if err := w.sync(); err != nil {
		_ = w.file.Close()
		return err
	}

	return w.file.Close()
}

// Size returns the current size of the spool file, buffered bytes included
func (w *Writer) Size() int64 {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.offset
}

// Records returns the number of records appended since the writer was opened
func (w *Writer) Records() int64 {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.records
}

// Path returns the file path
func (w *Writer) Path() string {
	return w.config.FilePath
}
