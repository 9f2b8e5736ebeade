package database

import (
	"context"
	"errors"
	"io"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	domain "github.com/NeuralTrust/supaquery/pkg/domain/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockedReader(t *testing.T, schema string) (*TableReader, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewTableReader(gormDB, schema, logger), mock
}

func TestTableReader_SelectAllReturnsJSONArray(t *testing.T) {
	reader, mock := newMockedReader(t, "public")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "public"."usuarios"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "alice"))

	resp, err := reader.SelectAll(context.Background(), "usuarios", "*")

	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"alice"}]`, string(resp.Data))
	require.NotNil(t, resp.Count)
	assert.Equal(t, int64(1), *resp.Count)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableReader_SelectAllQuotesColumnsAndKeepsJSONValues(t *testing.T) {
	reader, mock := newMockedReader(t, "")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id","meta" FROM "usuarios"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "meta"}).AddRow(int64(7), []byte(`{"role":"admin"}`)))

	resp, err := reader.SelectAll(context.Background(), "usuarios", "id, meta")

	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":7,"meta":{"role":"admin"}}]`, string(resp.Data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableReader_SelectAllEmptyTable(t *testing.T) {
	reader, mock := newMockedReader(t, "public")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "public"."usuarios"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	resp, err := reader.SelectAll(context.Background(), "usuarios", "*")

	require.NoError(t, err)
	assert.Equal(t, "[]", string(resp.Data))
	require.NotNil(t, resp.Count)
	assert.Equal(t, int64(0), *resp.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableReader_SelectAllMissingTable(t *testing.T) {
	reader, mock := newMockedReader(t, "public")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "public"."usuarios"`)).
		WillReturnError(&pgconn.PgError{
			Severity: "ERROR",
			Code:     "42P01",
			Message:  `relation "public.usuarios" does not exist`,
		})

	resp, err := reader.SelectAll(context.Background(), "usuarios", "*")

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, domain.ErrTableNotFound))

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "42P01", apiErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableReader_SelectAllWrapsOtherErrors(t *testing.T) {
	reader, mock := newMockedReader(t, "public")
	connErr := errors.New("connection reset by peer")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "public"."usuarios"`)).
		WillReturnError(connErr)

	_, err := reader.SelectAll(context.Background(), "usuarios", "*")

	require.Error(t, err)
	assert.ErrorIs(t, err, connErr)
	assert.NotErrorIs(t, err, domain.ErrTableNotFound)
	assert.Contains(t, err.Error(), "failed to read table usuarios")
	assert.NoError(t, mock.ExpectationsWereMet())
}
