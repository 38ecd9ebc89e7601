package persistence

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/minishop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock, sqlDB
}

func productColumns() []string {
	return []string{"id", "created_at", "updated_at", "version", "name", "description", "price", "stock", "active", "created_by"}
}

func TestGormProductRepository_Reserve(t *testing.T) {
	productID := uuid.New()

	t.Run("decrements stock in a single guarded update", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "stock"=stock - $1,"updated_at"=$2 WHERE id = $3 AND active = $4 AND stock >= $5`)).
			WithArgs(int64(2), sqlmock.AnyArg(), productID, true, int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id = $1`)).
			WithArgs(productID, 1).
			WillReturnRows(sqlmock.NewRows(productColumns()).
				AddRow(productID, time.Now(), time.Now(), 1, "Widget", "", "9.9900", int64(8), true, nil))

		repo := NewGormProductRepository(db)
		product, err := repo.Reserve(context.Background(), productID, 2)

		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, int64(8), product.Stock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("product deleted after decrement reported as not found", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET`)).
			WithArgs(int64(2), sqlmock.AnyArg(), productID, true, int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id = $1`)).
			WithArgs(productID, 1).
			WillReturnRows(sqlmock.NewRows(productColumns()))

		repo := NewGormProductRepository(db)
		_, err := repo.Reserve(context.Background(), productID, 2)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insufficient stock leaves row untouched", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET`)).
			WithArgs(int64(5), sqlmock.AnyArg(), productID, true, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewGormProductRepository(db)
		_, err := repo.Reserve(context.Background(), productID, 5)

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindAll(t *testing.T) {
	t.Run("zero-value filter falls back to default paging", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE active = \$1 ORDER BY created_at DESC LIMIT \$2`).
			WithArgs(true, 20).
			WillReturnRows(sqlmock.NewRows(productColumns()).
				AddRow(uuid.New(), time.Now(), time.Now(), 1, "Widget", "", "9.9900", int64(3), true, nil))

		repo := NewGormProductRepository(db)
		products, err := repo.FindAll(context.Background(), shared.Filter{})

		require.NoError(t, err)
		assert.Len(t, products, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search matches name or description", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE active = \$1 AND \(?name LIKE \$2 OR description LIKE \$3\)? ORDER BY created_at DESC LIMIT \$4`).
			WithArgs(true, "%widget%", "%widget%", 20).
			WillReturnRows(sqlmock.NewRows(productColumns()))

		repo := NewGormProductRepository(db)
		_, err := repo.FindAll(context.Background(), shared.Filter{Search: "widget"})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("oversized page size is clamped", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE active = \$1 ORDER BY created_at DESC LIMIT \$2`).
			WithArgs(true, 100).
			WillReturnRows(sqlmock.NewRows(productColumns()))

		repo := NewGormProductRepository(db)
		_, err := repo.FindAll(context.Background(), shared.Filter{Page: 1, PageSize: 5000})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Release(t *testing.T) {
	productID := uuid.New()

	t.Run("restores stock unconditionally", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "stock"=stock + $1,"updated_at"=$2 WHERE id = $3`)).
			WithArgs(int64(2), sqlmock.AnyArg(), productID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewGormProductRepository(db)
		err := repo.Release(context.Background(), productID, 2)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing product reported as not found", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET`)).
			WithArgs(int64(2), sqlmock.AnyArg(), productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewGormProductRepository(db)
		err := repo.Release(context.Background(), productID, 2)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Delete(t *testing.T) {
	productID := uuid.New()

	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "products" WHERE id = $1`)).
		WithArgs(productID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewGormProductRepository(db)
	err := repo.Delete(context.Background(), productID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
