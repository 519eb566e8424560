package codes

import (
	"strings"

	"github.com/emrgen/inquests-migration/internal/canon"
)

const (
	// Other is the sentinel identifier for unrecognised codes in every vocabulary.
	Other = "OTHER"

	SovereigntyCanada        = "CAD"
	SovereigntyUnitedKingdom = "UK"
	SovereigntyUnitedStates  = "US"

	// DefaultSovereignty prefixes source codes that carry no jurisdiction.
	DefaultSovereignty = SovereigntyCanada
)

// Sovereignty is a country-level entry of the jurisdiction vocabulary.
type Sovereignty struct {
	ID   string
	Name string
}

// Jurisdiction is a sovereignty or one of its subdivisions.
type Jurisdiction struct {
	ID            string
	SovereigntyID string
	Code          string
	Name          string
	Federal       bool
}

var Sovereignties = []Sovereignty{
	{ID: SovereigntyCanada, Name: "Canada"},
	{ID: SovereigntyUnitedKingdom, Name: "United Kingdom"},
	{ID: SovereigntyUnitedStates, Name: "United States"},
	{ID: Other, Name: "Other"},
}

var provinces = []struct{ code, name string }{
	{"AB", "Alberta"},
	{"BC", "British Columbia"},
	{"MB", "Manitoba"},
	{"NB", "New Brunswick"},
	{"NL", "Newfoundland and Labrador"},
	{"NS", "Nova Scotia"},
	{"NT", "Northwest Territories"},
	{"NU", "Nunavut"},
	{"ON", "Ontario"},
	{"PE", "Prince Edward Island"},
	{"QC", "Quebec"},
	{"SK", "Saskatchewan"},
	{"YT", "Yukon"},
}

// federal maps source-side codes of federal-only jurisdictions to their sovereignty.
var federal = map[string]string{
	"CAN": SovereigntyCanada,
	"CA":  SovereigntyCanada,
	"CAD": SovereigntyCanada,
	"FED": SovereigntyCanada,
	"UK":  SovereigntyUnitedKingdom,
	"US":  SovereigntyUnitedStates,
	"USA": SovereigntyUnitedStates,
}

// Jurisdictions lists every jurisdiction the mapping can produce, OTHER included.
func Jurisdictions() []Jurisdiction {
	out := []Jurisdiction{
		{ID: SovereigntyCanada, SovereigntyID: SovereigntyCanada, Code: "CAN", Name: "Canada", Federal: true},
		{ID: SovereigntyUnitedKingdom, SovereigntyID: SovereigntyUnitedKingdom, Code: "UK", Name: "United Kingdom", Federal: true},
		{ID: SovereigntyUnitedStates, SovereigntyID: SovereigntyUnitedStates, Code: "US", Name: "United States", Federal: true},
	}
	for _, p := range provinces {
		out = append(out, Jurisdiction{
			ID:            SovereigntyCanada + "_" + p.code,
			SovereigntyID: SovereigntyCanada,
			Code:          p.code,
			Name:          p.name,
		})
	}
	return append(out, Jurisdiction{ID: Other, SovereigntyID: Other, Code: Other, Name: "Other"})
}

// JurisdictionCode extracts the code from a field such as "ON-Ontario".
func JurisdictionCode(field string) string {
	code, _, _ := strings.Cut(field, "-")
	return strings.ToUpper(strings.TrimSpace(code))
}

// JurisdictionID maps a jurisdiction field to {SOVEREIGNTY} or
// {SOVEREIGNTY}_{SUBDIVISION}. The second result is false when the code is
// unknown and OTHER was returned.
func JurisdictionID(field string) (string, bool) {
	code := JurisdictionCode(field)
	if sovereignty, ok := federal[code]; ok {
		return sovereignty, true
	}
	for _, p := range provinces {
		if p.code == code {
			return SovereigntyCanada + "_" + code, true
		}
	}
	return Other, false
}

// SovereigntyOf returns the sovereignty part of a jurisdiction ID.
func SovereigntyOf(jurisdictionID string) string {
	sovereignty, _, _ := strings.Cut(jurisdictionID, "_")
	if sovereignty == "" || sovereignty == Other {
		return DefaultSovereignty
	}
	return sovereignty
}

// sourceOverrides holds sources whose ID does not follow the
// sovereignty-prefix rule.
var sourceOverrides = map[string]string{
	"CANLEG": "CAD_LEG",
	"CANPI":  "CAD_PI",
	"UKLEG":  "UK_LEG",
	"UKSENC": "UK_SENC",
	"UKSC":   "UK_SC",
	"USOTH":  "US_REF",
	"USSC":   "US_SC",
	"REF":    "REF",
}

// SourceID maps a source or court code to its canonical ID. Unmapped codes are
// prefixed with the sovereignty of their jurisdiction (DefaultSovereignty when
// jurisdictionID is empty).
func SourceID(code, jurisdictionID string) string {
	id := canon.FormatAsID(code)
	if override, ok := sourceOverrides[id]; ok {
		return override
	}
	return SovereigntyOf(jurisdictionID) + "_" + id
}
