package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// FileHook mirrors every entry to w using the logger's formatter.
type FileHook struct {
	w io.Writer
}

func NewFileHook(w io.Writer) *FileHook {
	return &FileHook{w: w}
}

func (h *FileHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.w.Write(line)
	return err
}

func (h *FileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
