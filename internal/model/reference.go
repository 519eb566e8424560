package model

// Sovereignty is generally, but not always, a country.
type Sovereignty struct {
	ID   string `gorm:"primaryKey;size:100"`
	Name string `gorm:"size:255;not null"`
}

func (Sovereignty) TableName() string {
	return "sovereignty"
}

// Jurisdiction is a sovereignty or one of its subdivisions, identified by the
// concatenation of the sovereignty and subdivision codes (e.g. CAD_ON).
type Jurisdiction struct {
	ID            string       `gorm:"primaryKey;size:100"`
	SovereigntyID string       `gorm:"size:100;not null"`
	Sovereignty   *Sovereignty `gorm:"foreignKey:SovereigntyID"`
	Code          string       `gorm:"size:255;not null"`
	Name          string       `gorm:"size:255;not null"`
	IsFederal     bool         `gorm:"not null;default:false"`
}

func (Jurisdiction) TableName() string {
	return "jurisdiction"
}

// Source is a court, legislature or category of legal record.
type Source struct {
	ID             string        `gorm:"primaryKey;size:100"`
	JurisdictionID *string       `gorm:"size:100"`
	Jurisdiction   *Jurisdiction `gorm:"foreignKey:JurisdictionID"`
	Name           string        `gorm:"size:255;not null"`
	Code           *string       `gorm:"size:255"`
	Rank           int           `gorm:"not null"` // importance of the source, and whether it is binding
}

func (Source) TableName() string {
	return "source"
}

// DocumentSource is where a document is hosted (e.g. Inquests.ca, CanLII).
type DocumentSource struct {
	ID         string `gorm:"primaryKey;size:100"`
	Name       string `gorm:"size:255;not null"`
	HasPaywall bool   `gorm:"not null;default:false"`
}

func (DocumentSource) TableName() string {
	return "document_source"
}

type InquestType struct {
	ID   string `gorm:"primaryKey;size:100"`
	Name string `gorm:"size:255;not null"`
}

func (InquestType) TableName() string {
	return "inquest_type"
}

type DeathManner struct {
	ID   string `gorm:"primaryKey;size:100"`
	Name string `gorm:"size:255;not null"`
}

func (DeathManner) TableName() string {
	return "death_manner"
}
