package sheet

// Workbook names; each is read from caspio_<name>.xlsx in the data directory.
const (
	WorkbookSources     = "sources"
	WorkbookKeywords    = "keywords"
	WorkbookAuthorities = "authorities"
	WorkbookDocuments   = "docs"
)

// Row is implemented by every typed sheet row. Arity is the exact column
// count of the sheet; fields are bound by their `col` tag.
type Row interface {
	Arity() int
}

// SourceRow is a court, legislature or other origin of legal records.
type SourceRow struct {
	Code         string  `col:"0"`
	Name         *string `col:"1"`
	Jurisdiction *string `col:"2"` // e.g. "ON-Ontario"
	Description  *string `col:"3"`
	Rank         *string `col:"4"` // e.g. "1-Supreme Court"
}

func (SourceRow) Arity() int { return 5 }

// KeywordRow is one entry of the keyword vocabulary.
type KeywordRow struct {
	Type        string  `col:"0"`
	Keyword     string  `col:"1"`
	Description *string `col:"3"`
}

func (KeywordRow) Arity() int { return 4 }

// AuthorityRow is shared by authorities and inquests, told apart by Type.
// Reference lists (Keywords, Cited, Related) are newline or comma separated
// serials.
type AuthorityRow struct {
	Serial           string  `col:"0"`
	Name             *string `col:"1"`
	Type             string  `col:"3"`
	Synopsis         *string `col:"4"`
	Keywords         *string `col:"5"`
	Tags             *string `col:"6"`
	Quotes           *string `col:"7"`
	Notes            *string `col:"8"`
	Primary          bool    `col:"9"`
	Overview         *string `col:"12"`
	Jurisdiction     *string `col:"15"`
	PrimaryDocument  *string `col:"18"`
	Cited            *string `col:"20"`
	Related          *string `col:"21"`
	LastName         *string `col:"25"`
	GivenNames       *string `col:"26"`
	DeathDate        any     `col:"27"`
	DeathCause       *string `col:"28"`
	InquestType      *string `col:"29"`
	PresidingOfficer *string `col:"30"`
	Sex              *string `col:"31"`
	Age              *int    `col:"32"`
	Start            any     `col:"33"`
	End              any     `col:"34"`
	DeathManner      *string `col:"40"`
	ExportID         int     `col:"41"`
}

func (AuthorityRow) Arity() int { return 42 }

// DocumentRow is a citable file or link attached to one or more authorities.
type DocumentRow struct {
	Authorities *string `col:"0"`
	Serial      *string `col:"1"`
	ShortName   *string `col:"2"`
	Citation    *string `col:"3"`
	Date        any     `col:"4"`
	Link        *string `col:"5"`
	LinkType    *string `col:"6"`
	Source      *string `col:"7"`
}

func (DocumentRow) Arity() int { return 8 }
