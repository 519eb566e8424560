package codes

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/inquests-migration/internal/canon"
)

// KeywordType separates the authority and inquest keyword vocabularies.
type KeywordType string

const (
	KeywordTypeAuthority KeywordType = "Authority"
	KeywordTypeInquest   KeywordType = "Inquest/Fatality Inquiry"
)

// ParseKeywordType accepts the type column of the keyword and authority sheets.
func ParseKeywordType(value string) (KeywordType, bool) {
	switch KeywordType(strings.TrimSpace(value)) {
	case KeywordTypeAuthority:
		return KeywordTypeAuthority, true
	case KeywordTypeInquest:
		return KeywordTypeInquest, true
	}
	return "", false
}

const (
	CategoryCause    = "CAUSE"
	CategoryEvidence = "EVIDENCE"
	CategoryGeneral  = "GENERAL"

	keywordSeparator = "-"
	evidenceGeneral  = "Evidence General"
)

var AuthorityCategories = []Term{
	{ID: CategoryCause, Name: "Cause", Description: "Cause or circumstance of death considered by the authority"},
	{ID: "CHARTER", Name: "Charter", Description: "Charter of Rights and Freedoms issues"},
	{ID: CategoryEvidence, Name: "Evidence", Description: "Admissibility and use of evidence"},
	{ID: CategoryGeneral, Name: "General", Description: "Keywords without a more specific category"},
	{ID: "INQUEST", Name: "Inquest", Description: "Conduct and scope of inquests"},
	{ID: "JURISDICTION", Name: "Jurisdiction", Description: "Jurisdiction of the coroner or court"},
	{ID: "PROCEDURE", Name: "Procedure", Description: "Procedural fairness and practice"},
	{ID: "STANDING", Name: "Standing", Description: "Standing of parties"},
}

var InquestCategories = []Term{
	{ID: CategoryCause, Name: "Cause", Description: "Cause of death"},
	{ID: "CIRCUMSTANCE", Name: "Circumstance", Description: "Circumstances surrounding the death"},
	{ID: CategoryEvidence, Name: "Evidence", Description: "Evidence heard at the inquest"},
	{ID: CategoryGeneral, Name: "General", Description: "Keywords without a more specific category"},
	{ID: "JURY", Name: "Jury", Description: "Jury verdict and recommendations"},
	{ID: "SETTING", Name: "Setting", Description: "Place or institution of the death"},
}

var (
	authorityCategoryIDs mapset.Set[string] = termIDs(AuthorityCategories)
	inquestCategoryIDs   mapset.Set[string] = termIDs(InquestCategories)
)

// Categories returns the closed category set of a keyword type.
func Categories(kt KeywordType) []Term {
	if kt == KeywordTypeInquest {
		return InquestCategories
	}
	return AuthorityCategories
}

// ValidCategory reports whether categoryID belongs to the closed set of kt.
func ValidCategory(kt KeywordType, categoryID string) bool {
	if kt == KeywordTypeInquest {
		return inquestCategoryIDs.Contains(categoryID)
	}
	return authorityCategoryIDs.Contains(categoryID)
}

// SplitKeyword derives the category and display name of a keyword, e.g.
// "Cause-Fall from height" -> ("Cause", "Fall from height"). Keywords without
// a separator fall in the General category, except "Evidence General".
func SplitKeyword(keyword string) (category, name string) {
	keyword = strings.TrimSpace(keyword)
	if head, tail, ok := strings.Cut(keyword, keywordSeparator); ok {
		return strings.TrimSpace(head), strings.TrimSpace(tail)
	}
	if keyword == evidenceGeneral {
		return "Evidence", keyword
	}
	return "General", keyword
}

// KeywordID is the identifier of a keyword, derived from its full text.
func KeywordID(keyword string) string {
	return canon.FormatAsID(keyword)
}
