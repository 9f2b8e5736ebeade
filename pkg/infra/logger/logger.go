package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Options struct {
	Level string
	// File additionally receives every entry when set.
	File string
	// Output defaults to stderr; stdout is reserved for query results.
	Output io.Writer
}

// NewLogger builds the JSON logger. The returned func flushes the file sink.
func NewLogger(opts Options) (*logrus.Logger, func(), error) {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	logger.SetLevel(parseLevel(opts.Level))

	if opts.Output != nil {
		logger.SetOutput(opts.Output)
	} else {
		logger.SetOutput(os.Stderr)
	}

	if opts.File == "" {
		return logger, func() {}, nil
	}

	asyncWriter, err := NewAsyncFileWriter(opts.File, 32*1024)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize async log writer: %w", err)
	}
	logger.AddHook(NewFileHook(asyncWriter))

	return logger, asyncWriter.Close, nil
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
