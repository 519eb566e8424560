package store_test

import (
	"context"
	"testing"

	"github.com/emrgen/inquests-migration/internal/model"
	"github.com/emrgen/inquests-migration/internal/store"
	"github.com/emrgen/inquests-migration/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seed(t *testing.T, db *gorm.DB) *model.Authority {
	require.NoError(t, db.Create(&model.AuthorityCategory{ID: "CAUSE", Name: "Cause"}).Error)
	require.NoError(t, db.Create(&model.AuthorityKeyword{ID: "CAUSE_FALL", AuthorityCategoryID: "CAUSE", Name: "Fall"}).Error)

	a := &model.Authority{}
	require.NoError(t, db.Create(a).Error)
	return a
}

func TestGormStore_TryCreateIsolatesViolation(t *testing.T) {
	db := tester.Setup(t)
	a := seed(t, db)
	s := store.NewGormStore(db)
	ctx := context.Background()

	err := s.Transaction(ctx, func(tx store.Store) error {
		violation, err := tx.TryCreate(ctx, &model.AuthorityKeywords{AuthorityID: a.ID, AuthorityKeywordID: "CAUSE_FALL"})
		require.NoError(t, err)
		assert.Nil(t, violation)

		violation, err = tx.TryCreate(ctx, &model.AuthorityKeywords{AuthorityID: a.ID, AuthorityKeywordID: "NO_SUCH_KEYWORD"})
		require.NoError(t, err)
		require.NotNil(t, violation)
		assert.Equal(t, "authority_keywords", violation.Table)
		assert.ErrorIs(t, violation, gorm.ErrForeignKeyViolated)

		violation, err = tx.TryCreate(ctx, &model.AuthorityKeywords{AuthorityID: a.ID, AuthorityKeywordID: "CAUSE_FALL"})
		require.NoError(t, err)
		require.NotNil(t, violation)
		assert.ErrorIs(t, violation, gorm.ErrDuplicatedKey)

		return tx.Create(ctx, &model.AuthorityTag{AuthorityID: a.ID, TagKey: "costs", Tag: "Costs"})
	})
	require.NoError(t, err)

	var joins int64
	require.NoError(t, db.Model(&model.AuthorityKeywords{}).Count(&joins).Error)
	assert.Equal(t, int64(1), joins)

	var tags int64
	require.NoError(t, db.Model(&model.AuthorityTag{}).Count(&tags).Error)
	assert.Equal(t, int64(1), tags)
}

func TestGormStore_TransactionRollsBack(t *testing.T) {
	db := tester.Setup(t)
	s := store.NewGormStore(db)
	ctx := context.Background()

	err := s.Transaction(ctx, func(tx store.Store) error {
		require.NoError(t, tx.Create(ctx, &model.Authority{}))
		return tx.Create(ctx, &model.AuthorityCitation{AuthorityID: 1, CitedAuthorityID: 99})
	})
	require.Error(t, err)
	assert.True(t, store.IsConstraintViolation(err))

	count, err := s.CountAuthorities(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
