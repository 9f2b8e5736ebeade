package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/NeuralTrust/supaquery/pkg/common"
	domain "github.com/NeuralTrust/supaquery/pkg/domain/errors"
	"github.com/NeuralTrust/supaquery/pkg/domain/table"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const undefinedTableCode = "42P01"

// TableReader reads whole tables straight from Postgres.
type TableReader struct {
	db     *gorm.DB
	schema string
	logger *logrus.Logger
}

func NewTableReader(db *gorm.DB, schema string, logger *logrus.Logger) *TableReader {
	return &TableReader{
		db:     db,
		schema: schema,
		logger: logger,
	}
}

func (r *TableReader) SelectAll(ctx context.Context, tableName, columns string) (*table.Response, error) {
	// identifiers are quoted; no user value reaches the statement unescaped
	stmt := "SELECT " + QuoteColumns(columns) + " FROM " + QualifiedTable(r.schema, tableName)

	var rows []map[string]interface{}
	if err := r.db.WithContext(ctx).Raw(stmt).Scan(&rows).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == undefinedTableCode {
			return nil, domain.NewTableNotFoundError(tableName, &domain.APIError{
				Status:  http.StatusNotFound,
				Code:    pgErr.Code,
				Message: pgErr.Message,
				Hint:    pgErr.Hint,
			})
		}
		return nil, fmt.Errorf("failed to read table %s: %w", tableName, err)
	}

	for _, row := range rows {
		for k, v := range row {
			row[k] = normalizeValue(v)
		}
	}
	if rows == nil {
		rows = []map[string]interface{}{}
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rows: %w", err)
	}
	count := int64(len(rows))

	r.logger.WithFields(logrus.Fields{
		"table": tableName,
		"rows":  count,
	}).Debug("table read from database")

	return &table.Response{Data: data, Count: &count, Status: http.StatusOK}, nil
}

// QualifiedTable quotes schema and table as identifiers.
func QualifiedTable(schema, tableName string) string {
	if schema == "" {
		return pq.QuoteIdentifier(tableName)
	}
	return pq.QuoteIdentifier(schema) + "." + pq.QuoteIdentifier(tableName)
}

// QuoteColumns quotes each column of a comma separated list; "*" and an
// empty list select every column.
func QuoteColumns(columns string) string {
	trimmed := strings.TrimSpace(columns)
	if trimmed == "" || trimmed == common.AllColumns {
		return common.AllColumns
	}
	parts := strings.Split(trimmed, ",")
	quoted := make([]string, 0, len(parts))
	for _, p := range parts {
		name := strings.Trim(strings.TrimSpace(p), `"`)
		if name == "" {
			continue
		}
		quoted = append(quoted, pq.QuoteIdentifier(name))
	}
	if len(quoted) == 0 {
		return common.AllColumns
	}
	return strings.Join(quoted, ",")
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case [16]byte:
		return uuid.UUID(val).String()
	case []byte:
		if json.Valid(val) {
			return json.RawMessage(append([]byte{}, val...))
		}
		return string(val)
	default:
		return v
	}
}
