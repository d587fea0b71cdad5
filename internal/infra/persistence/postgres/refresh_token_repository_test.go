package postgres

import (
	"context"
	"testing"
	"time"

	"paygate/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func refreshTokenColumns() []string {
	return []string{"id", "token", "user_id", "expires_at", "is_revoked", "created_at"}
}

func TestRefreshTokenRepository_FindActive_Unknown(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens" WHERE token = \$1`).
		WithArgs("missing-token", 1).
		WillReturnRows(sqlmock.NewRows(refreshTokenColumns()))

	_, err := repo.FindActive(context.Background(), "missing-token")

	assert.ErrorIs(t, err, repository.ErrRefreshTokenNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_FindActive_Revoked(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens" WHERE token = \$1`).
		WithArgs("used-token", 1).
		WillReturnRows(sqlmock.NewRows(refreshTokenColumns()).AddRow(
			uuid.NewString(), "used-token", uuid.NewString(),
			time.Now().Add(time.Hour), true, time.Now(),
		))

	_, err := repo.FindActive(context.Background(), "used-token")

	assert.ErrorIs(t, err, repository.ErrRefreshTokenRevoked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_FindActive_ExpiredIsLazilyRevoked(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens" WHERE token = \$1`).
		WithArgs("stale-token", 1).
		WillReturnRows(sqlmock.NewRows(refreshTokenColumns()).AddRow(
			uuid.NewString(), "stale-token", uuid.NewString(),
			time.Now().Add(-time.Hour), false, time.Now().Add(-8*24*time.Hour),
		))

	// The expired read flips is_revoked as a side effect.
	mock.ExpectExec(`UPDATE "refresh_tokens" SET "is_revoked"=\$1 WHERE token = \$2`).
		WithArgs(true, "stale-token").
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.FindActive(context.Background(), "stale-token")

	assert.ErrorIs(t, err, repository.ErrRefreshTokenExpired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_FindActive_Live(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens" WHERE token = \$1`).
		WithArgs("live-token", 1).
		WillReturnRows(sqlmock.NewRows(refreshTokenColumns()).AddRow(
			uuid.NewString(), "live-token", userID.String(),
			time.Now().Add(time.Hour), false, time.Now(),
		))

	grant, err := repo.FindActive(context.Background(), "live-token")

	require.NoError(t, err)
	assert.Equal(t, "live-token", grant.Token)
	assert.Equal(t, userID, grant.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_Revoke_Consumes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	mock.ExpectExec(`UPDATE "refresh_tokens" SET "is_revoked"=\$1 WHERE token = \$2 AND is_revoked = \$3`).
		WithArgs(true, "live-token", false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	revoked, err := repo.Revoke(context.Background(), "live-token")

	require.NoError(t, err)
	assert.True(t, revoked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_Revoke_AlreadyConsumed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	// Conditional update matches no rows for an already revoked token.
	mock.ExpectExec(`UPDATE "refresh_tokens" SET "is_revoked"=\$1 WHERE token = \$2 AND is_revoked = \$3`).
		WithArgs(true, "used-token", false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	revoked, err := repo.Revoke(context.Background(), "used-token")

	require.NoError(t, err)
	assert.False(t, revoked)
	assert.NoError(t, mock.ExpectationsWereMet())
}
