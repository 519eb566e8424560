package model

import "gorm.io/gorm"

// Tables lists every model in foreign-key dependency order.
func Tables() []any {
	return []any{
		&Sovereignty{},
		&Jurisdiction{},
		&Source{},
		&DocumentSource{},
		&InquestType{},
		&DeathManner{},
		&AuthorityCategory{},
		&AuthorityKeyword{},
		&InquestCategory{},
		&InquestKeyword{},
		&Authority{},
		&Inquest{},
		&Deceased{},
		&AuthorityCitation{},
		&AuthorityRelated{},
		&AuthorityInquest{},
		&AuthorityKeywords{},
		&AuthorityTag{},
		&InquestKeywords{},
		&InquestTag{},
		&AuthorityDocument{},
		&AuthorityDocumentLink{},
		&InquestDocument{},
		&InquestDocumentLink{},
	}
}

func Migrate(db *gorm.DB) error {
	for _, table := range Tables() {
		if err := db.AutoMigrate(table); err != nil {
			return err
		}
	}

	return nil
}
