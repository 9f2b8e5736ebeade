package query

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/NeuralTrust/supaquery/pkg/common"
	"github.com/NeuralTrust/supaquery/pkg/domain/table"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrEmptyResponse = errors.New("reader returned no response")

type Runner interface {
	Run(ctx context.Context) error
}

type runner struct {
	reader table.Reader
	out    io.Writer
	logger *logrus.Logger
}

// NewRunner returns a Runner that selects every column of the users table
// and writes the returned data, unchanged, to out.
func NewRunner(reader table.Reader, out io.Writer, logger *logrus.Logger) Runner {
	return &runner{
		reader: reader,
		out:    out,
		logger: logger,
	}
}

func (r *runner) Run(ctx context.Context) error {
	log := r.logger.WithFields(logrus.Fields{
		"run_id": uuid.New().String(),
		"table":  common.UsersTable,
	})
	log.Debug("querying table")

	resp, err := r.reader.SelectAll(ctx, common.UsersTable, common.AllColumns)
	if err != nil {
		return fmt.Errorf("select from %s: %w", common.UsersTable, err)
	}
	if resp == nil {
		return ErrEmptyResponse
	}

	line := make([]byte, 0, len(resp.Data)+1)
	line = append(line, resp.Data...)
	line = append(line, '\n')
	if _, err := r.out.Write(line); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	fields := logrus.Fields{"status": resp.Status}
	if rows, ok := resp.RowCount(); ok {
		fields["rows"] = rows
	}
	if resp.Count != nil {
		fields["total"] = *resp.Count
	}
	log.WithFields(fields).Info("query executed")
	return nil
}
