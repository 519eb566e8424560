package model

type AuthorityCategory struct {
	ID          string  `gorm:"primaryKey;size:100"`
	Name        string  `gorm:"size:255;not null"`
	Description *string `gorm:"size:255"`
}

func (AuthorityCategory) TableName() string {
	return "authority_category"
}

// AuthorityKeyword is a controlled-vocabulary tag for authorities.
type AuthorityKeyword struct {
	ID                  string             `gorm:"primaryKey;size:100"`
	AuthorityCategoryID string             `gorm:"size:100;not null"`
	Category            *AuthorityCategory `gorm:"foreignKey:AuthorityCategoryID"`
	Name                string             `gorm:"size:255;not null"`
	Description         *string            `gorm:"size:255"`
}

func (AuthorityKeyword) TableName() string {
	return "authority_keyword"
}

type InquestCategory struct {
	ID          string  `gorm:"primaryKey;size:100"`
	Name        string  `gorm:"size:255;not null"`
	Description *string `gorm:"size:255"`
}

func (InquestCategory) TableName() string {
	return "inquest_category"
}

// InquestKeyword is a controlled-vocabulary tag for inquests.
type InquestKeyword struct {
	ID                string           `gorm:"primaryKey;size:100"`
	InquestCategoryID string           `gorm:"size:100;not null"`
	Category          *InquestCategory `gorm:"foreignKey:InquestCategoryID"`
	Name              string           `gorm:"size:255;not null"`
	Description       *string          `gorm:"size:255"`
}

func (InquestKeyword) TableName() string {
	return "inquest_keyword"
}
