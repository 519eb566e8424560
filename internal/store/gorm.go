package store

import (
	"context"

	"github.com/emrgen/inquests-migration/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) Create(ctx context.Context, value any) error {
	return g.db.WithContext(ctx).Create(value).Error
}

// TryCreate runs the insert in a nested transaction, which gorm maps to a
// savepoint when g is already inside a transaction.
func (g *GormStore) TryCreate(ctx context.Context, value any) (*ConstraintViolation, error) {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(value).Error
	})
	if err == nil {
		return nil, nil
	}

	if IsConstraintViolation(err) {
		violation := &ConstraintViolation{Table: g.tableName(value), Err: err}
		logrus.Debugf("Rolled back insert: %v", violation)
		return violation, nil
	}

	return nil, err
}

func (g *GormStore) tableName(value any) string {
	stmt := &gorm.Statement{DB: g.db}
	if err := stmt.Parse(value); err != nil {
		return "unknown"
	}
	return stmt.Schema.Table
}

func (g *GormStore) CountAuthorities(ctx context.Context) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.Authority{}).Count(&count).Error
	return count, err
}

func (g *GormStore) AuthorityPrimaryDocumentCounts(ctx context.Context) ([]IDCount, error) {
	var rows []IDCount
	err := g.db.WithContext(ctx).Raw(`
		SELECT authority.id AS id, COUNT(authority_document.id) AS count
		FROM authority
		LEFT JOIN authority_document
			ON authority_document.authority_id = authority.id AND authority_document.is_primary = ?
		GROUP BY authority.id
		HAVING COUNT(authority_document.id) <> 1
		ORDER BY authority.id`, true).Scan(&rows).Error
	return rows, err
}

func (g *GormStore) InquestsWithoutDocuments(ctx context.Context) ([]uint, error) {
	return g.ids(ctx, `
		SELECT inquest.id
		FROM inquest
		LEFT JOIN inquest_document ON inquest_document.inquest_id = inquest.id
		WHERE inquest_document.id IS NULL
		ORDER BY inquest.id`)
}

func (g *GormStore) AuthoritiesWithoutKeywords(ctx context.Context) ([]uint, error) {
	return g.ids(ctx, `
		SELECT authority.id
		FROM authority
		LEFT JOIN authority_keywords ON authority_keywords.authority_id = authority.id
		WHERE authority_keywords.authority_id IS NULL
		ORDER BY authority.id`)
}

func (g *GormStore) InquestsWithoutKeywords(ctx context.Context) ([]uint, error) {
	return g.ids(ctx, `
		SELECT inquest.id
		FROM inquest
		LEFT JOIN inquest_keywords ON inquest_keywords.inquest_id = inquest.id
		WHERE inquest_keywords.inquest_id IS NULL
		ORDER BY inquest.id`)
}

func (g *GormStore) InquestsWithoutCategory(ctx context.Context, categoryID string) ([]uint, error) {
	return g.ids(ctx, `
		SELECT inquest.id
		FROM inquest
		WHERE NOT EXISTS (
			SELECT 1
			FROM inquest_keywords
			INNER JOIN inquest_keyword ON inquest_keyword.id = inquest_keywords.inquest_keyword_id
			WHERE inquest_keywords.inquest_id = inquest.id AND inquest_keyword.inquest_category_id = ?
		)
		ORDER BY inquest.id`, categoryID)
}

func (g *GormStore) ids(ctx context.Context, query string, args ...any) ([]uint, error) {
	var ids []uint
	err := g.db.WithContext(ctx).Raw(query, args...).Scan(&ids).Error
	return ids, err
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
