package model

// Authority is a citable legal decision or document.
type Authority struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"`
	IsPrimary bool    `gorm:"not null;default:false"`
	Name      *string `gorm:"size:255"`
	Overview  string  `gorm:"size:255;not null"`
	Synopsis  string  `gorm:"type:text;not null"`
	Quotes    *string `gorm:"type:text"`
	Notes     *string `gorm:"type:text"`
}

func (Authority) TableName() string {
	return "authority"
}

// AuthorityCitation records that an authority cites another authority.
type AuthorityCitation struct {
	AuthorityID      uint       `gorm:"primaryKey;autoIncrement:false"`
	CitedAuthorityID uint       `gorm:"primaryKey;autoIncrement:false"`
	Authority        *Authority `gorm:"foreignKey:AuthorityID"`
	CitedAuthority   *Authority `gorm:"foreignKey:CitedAuthorityID"`
}

func (AuthorityCitation) TableName() string {
	return "authority_citations"
}

type AuthorityRelated struct {
	AuthorityID        uint       `gorm:"primaryKey;autoIncrement:false"`
	RelatedAuthorityID uint       `gorm:"primaryKey;autoIncrement:false"`
	Authority          *Authority `gorm:"foreignKey:AuthorityID"`
	RelatedAuthority   *Authority `gorm:"foreignKey:RelatedAuthorityID"`
}

func (AuthorityRelated) TableName() string {
	return "authority_related"
}

// AuthorityInquest links an authority to a related inquest.
type AuthorityInquest struct {
	AuthorityID uint       `gorm:"primaryKey;autoIncrement:false"`
	InquestID   uint       `gorm:"primaryKey;autoIncrement:false"`
	Authority   *Authority `gorm:"foreignKey:AuthorityID"`
	Inquest     *Inquest   `gorm:"foreignKey:InquestID"`
}

func (AuthorityInquest) TableName() string {
	return "authority_inquests"
}

type AuthorityKeywords struct {
	AuthorityID        uint              `gorm:"primaryKey;autoIncrement:false"`
	AuthorityKeywordID string            `gorm:"primaryKey;size:100"`
	Authority          *Authority        `gorm:"foreignKey:AuthorityID"`
	Keyword            *AuthorityKeyword `gorm:"foreignKey:AuthorityKeywordID"`
}

func (AuthorityKeywords) TableName() string {
	return "authority_keywords"
}

// AuthorityTag is a free-text tag. TagKey is the lower-cased tag, which makes
// the per-authority uniqueness case-insensitive on every backend.
type AuthorityTag struct {
	AuthorityID uint       `gorm:"primaryKey;autoIncrement:false"`
	TagKey      string     `gorm:"primaryKey;size:255"`
	Tag         string     `gorm:"size:255;not null"`
	Authority   *Authority `gorm:"foreignKey:AuthorityID"`
}

func (AuthorityTag) TableName() string {
	return "authority_tags"
}
