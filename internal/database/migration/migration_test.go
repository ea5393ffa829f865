package migration

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimsapi/internal/logger"
)

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()
	sentinel := regexp.QuoteMeta(sentinelQuery)

	t.Run("creates schema when missing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(sentinel).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_items").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_kv_items_updated_at").WillReturnResult(sqlmock.NewResult(0, 0))

		var buf bytes.Buffer
		err = EnsureMigrated(ctx, db, logger.New(&buf, "info", time.UTC), "db")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Contains(t, buf.String(), `"msg":"db_migration_success"`)
	})

	t.Run("skips when schema exists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(sentinel).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		require.NoError(t, EnsureMigrated(ctx, db, logger.Discard(), "db"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sentinel error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(sentinel).WillReturnError(errors.New("conn refused"))

		err = EnsureMigrated(ctx, db, logger.Discard(), "db")
		assert.EqualError(t, err, "failed to check sentinel table: conn refused")
	})

	t.Run("step error stops migration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(sentinel).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))

		err = EnsureMigrated(ctx, db, logger.Discard(), "db")
		assert.EqualError(t, err, "migration step create_table_kv_items failed: permission denied")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
