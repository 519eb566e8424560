package builder

import (
	"strings"

	"github.com/emrgen/inquests-migration/internal/canon"
	"github.com/emrgen/inquests-migration/internal/codes"
	"github.com/emrgen/inquests-migration/internal/model"
	"github.com/emrgen/inquests-migration/internal/sheet"
	"github.com/sirupsen/logrus"
)

// Keyword is a normalized keyword row.
type Keyword struct {
	Type        codes.KeywordType
	Text        string // as referenced from the authorities sheet
	ID          string
	CategoryID  string
	Name        string
	Description *string
}

// NewKeyword builds a keyword from a keywords sheet row. Rows of an unknown
// type, or whose category is outside the closed set of their type, are
// rejected with a warning.
func NewKeyword(row sheet.KeywordRow) (*Keyword, bool) {
	text := strings.TrimSpace(row.Keyword)
	log := logrus.WithFields(logrus.Fields{"kind": "keyword", "serial": text})

	kt, ok := codes.ParseKeywordType(row.Type)
	if !ok {
		log.Warnf("Unknown authority type: %s", row.Type)
		return nil, false
	}
	if text == "" {
		log.Warnf("Empty keyword of type %s.", kt)
		return nil, false
	}

	category, name := codes.SplitKeyword(text)
	categoryID := canon.FormatAsID(category)
	if !codes.ValidCategory(kt, categoryID) {
		log.Warnf("Invalid category %s of %s keyword %s.", category, kt, text)
		return nil, false
	}

	return &Keyword{
		Type:        kt,
		Text:        text,
		ID:          codes.KeywordID(text),
		CategoryID:  categoryID,
		Name:        name,
		Description: canon.StringToNullable(row.Description),
	}, true
}

// Model returns the store record of the keyword's type.
func (k *Keyword) Model() any {
	if k.Type == codes.KeywordTypeInquest {
		return &model.InquestKeyword{
			ID:                k.ID,
			InquestCategoryID: k.CategoryID,
			Name:              k.Name,
			Description:       k.Description,
		}
	}
	return &model.AuthorityKeyword{
		ID:                  k.ID,
		AuthorityCategoryID: k.CategoryID,
		Name:                k.Name,
		Description:         k.Description,
	}
}

// Category returns the store record of a seeded keyword category.
func Category(kt codes.KeywordType, term codes.Term) any {
	description := canon.StringToNullable(&term.Description)
	if kt == codes.KeywordTypeInquest {
		return &model.InquestCategory{ID: term.ID, Name: term.Name, Description: description}
	}
	return &model.AuthorityCategory{ID: term.ID, Name: term.Name, Description: description}
}
