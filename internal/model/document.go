package model

import "time"

// AuthorityDocument is a citable file or link of an authority. Each authority
// should have exactly one primary document.
type AuthorityDocument struct {
	ID                      uint       `gorm:"primaryKey;autoIncrement"`
	AuthorityID             uint       `gorm:"not null;index"`
	Authority               *Authority `gorm:"foreignKey:AuthorityID"`
	AuthorityDocumentTypeID *string    `gorm:"size:100"`
	SourceID                *string    `gorm:"size:100"`
	Source                  *Source    `gorm:"foreignKey:SourceID"`
	IsPrimary               bool       `gorm:"not null;default:false"`
	Name                    *string    `gorm:"size:255"`
	Citation                *string    `gorm:"size:255"`
	Created                 *time.Time `gorm:"type:date"`
}

func (AuthorityDocument) TableName() string {
	return "authority_document"
}

// AuthorityDocumentLink points a document at its storage location; a document
// has at most one.
type AuthorityDocumentLink struct {
	AuthorityDocumentID uint               `gorm:"primaryKey;autoIncrement:false"`
	DocumentSourceID    string             `gorm:"size:100;not null"`
	Link                string             `gorm:"size:1000;not null"`
	Document            *AuthorityDocument `gorm:"foreignKey:AuthorityDocumentID"`
	DocumentSource      *DocumentSource    `gorm:"foreignKey:DocumentSourceID"`
}

func (AuthorityDocumentLink) TableName() string {
	return "authority_document_links"
}

type InquestDocument struct {
	ID                    uint       `gorm:"primaryKey;autoIncrement"`
	InquestID             uint       `gorm:"not null;index"`
	Inquest               *Inquest   `gorm:"foreignKey:InquestID"`
	InquestDocumentTypeID *string    `gorm:"size:100"` // verdict, ruling, exhibit; nil for misc.
	Name                  *string    `gorm:"size:255"`
	Created               *time.Time `gorm:"type:date"`
}

func (InquestDocument) TableName() string {
	return "inquest_document"
}

type InquestDocumentLink struct {
	InquestDocumentID uint             `gorm:"primaryKey;autoIncrement:false"`
	DocumentSourceID  string           `gorm:"size:100;not null"`
	Link              string           `gorm:"size:1000;not null"`
	Document          *InquestDocument `gorm:"foreignKey:InquestDocumentID"`
	DocumentSource    *DocumentSource  `gorm:"foreignKey:DocumentSourceID"`
}

func (InquestDocumentLink) TableName() string {
	return "inquest_document_links"
}
