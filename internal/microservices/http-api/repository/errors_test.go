package repository

import (
	"context"
	"errors"
	"testing"

	"yamdb/internal/testutils"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, ErrDuplicate},
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_genres_slug"}, ErrDuplicate},
		{"foreign key violation", &pgconn.PgError{Code: pgForeignKeyViolation}, ErrInvalidRef},
		{"anything else", boom, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translate("op", tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "op: ")
		})
	}
	assert.NoError(t, translate("op", nil))
}

// failingDB returns a handle whose every statement fails with err.
func failingDB(t *testing.T, err error) *gorm.DB {
	db := testutils.DryRunDB(t).Session(&gorm.Session{})
	_ = db.AddError(err)
	return db
}

func TestGenreRepo_TranslatesErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewGenreRepo(failingDB(t, gorm.ErrRecordNotFound))

	_, _, err := repo.List(ctx, "", 10, 0)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "count genres")

	_, err = repo.GetBySlugs(ctx, []string{"drama"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "get genres by slug")
}
