package logger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type AsyncFileWriter struct {
	writer  *bufio.Writer
	file    *os.File
	logChan chan []byte
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once

	// mu orders Write against Close so no entry is queued after the drain.
	mu     sync.RWMutex
	closed bool
}

func NewAsyncFileWriter(logFile string, bufferSize int) (*AsyncFileWriter, error) {
	safeLogFile := filepath.Clean(logFile)
	if dir := filepath.Dir(safeLogFile); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	file, err := os.OpenFile(safeLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	aw := &AsyncFileWriter{
		writer:  bufio.NewWriterSize(file, bufferSize),
		file:    file,
		logChan: make(chan []byte, 256),
		done:    make(chan struct{}),
	}
	aw.wg.Add(1)
	go aw.processLogs()

	return aw, nil
}

// Write queues a copy of p. It returns os.ErrClosed once Close was called.
func (aw *AsyncFileWriter) Write(p []byte) (int, error) {
	aw.mu.RLock()
	defer aw.mu.RUnlock()
	if aw.closed {
		return 0, os.ErrClosed
	}
	aw.logChan <- append([]byte{}, p...)
	return len(p), nil
}

func (aw *AsyncFileWriter) processLogs() {
	defer aw.wg.Done()
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case logData := <-aw.logChan:
			aw.write(logData)
		case <-ticker.C:
			_ = aw.writer.Flush()
		case <-aw.done:
			for {
				select {
				case logData := <-aw.logChan:
					aw.write(logData)
				default:
					_ = aw.writer.Flush()
					return
				}
			}
		}
	}
}

func (aw *AsyncFileWriter) write(p []byte) {
	if _, err := aw.writer.Write(p); err != nil {
		fmt.Fprintln(os.Stderr, "error writing log data to file", err)
	}
}

// Close drains pending entries, flushes and closes the file.
func (aw *AsyncFileWriter) Close() {
	aw.once.Do(func() {
		aw.mu.Lock()
		aw.closed = true
		close(aw.done)
		aw.mu.Unlock()
		aw.wg.Wait()
		_ = aw.file.Close()
	})
}
