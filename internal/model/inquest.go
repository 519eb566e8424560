package model

import "time"

// Inquest is a fatality inquiry.
type Inquest struct {
	ID               uint          `gorm:"primaryKey;autoIncrement"`
	JurisdictionID   string        `gorm:"size:100;not null"`
	Jurisdiction     *Jurisdiction `gorm:"foreignKey:JurisdictionID"`
	IsPrimary        bool          `gorm:"not null;default:false"`
	Name             string        `gorm:"size:255;not null"`
	Overview         *string       `gorm:"size:255"`
	Synopsis         *string       `gorm:"type:text"`
	Notes            *string       `gorm:"type:text"`
	PresidingOfficer string        `gorm:"size:255;not null"`
	Start            *time.Time    `gorm:"type:date"`
	End              *time.Time    `gorm:"type:date"`
	SittingDays      *int
	Exhibits         *int
}

func (Inquest) TableName() string {
	return "inquest"
}

// Deceased is the person whose death an inquest examines.
type Deceased struct {
	ID            uint         `gorm:"primaryKey;autoIncrement"`
	InquestID     uint         `gorm:"not null;index"`
	Inquest       *Inquest     `gorm:"foreignKey:InquestID"`
	InquestTypeID string       `gorm:"size:100;not null"`
	InquestType   *InquestType `gorm:"foreignKey:InquestTypeID"`
	DeathMannerID string       `gorm:"size:100;not null"`
	DeathManner   *DeathManner `gorm:"foreignKey:DeathMannerID"`
	DeathCause    *string      `gorm:"size:255"`
	DeathDate     *time.Time   `gorm:"type:date"`
	LastName      *string      `gorm:"size:255"`
	GivenNames    *string      `gorm:"size:255"`
	Age           *int
	Sex           *string `gorm:"size:255"`
}

func (Deceased) TableName() string {
	return "deceased"
}

type InquestKeywords struct {
	InquestID        uint            `gorm:"primaryKey;autoIncrement:false"`
	InquestKeywordID string          `gorm:"primaryKey;size:100"`
	Inquest          *Inquest        `gorm:"foreignKey:InquestID"`
	Keyword          *InquestKeyword `gorm:"foreignKey:InquestKeywordID"`
}

func (InquestKeywords) TableName() string {
	return "inquest_keywords"
}

type InquestTag struct {
	InquestID uint     `gorm:"primaryKey;autoIncrement:false"`
	TagKey    string   `gorm:"primaryKey;size:255"`
	Tag       string   `gorm:"size:255;not null"`
	Inquest   *Inquest `gorm:"foreignKey:InquestID"`
}

func (InquestTag) TableName() string {
	return "inquest_tags"
}
