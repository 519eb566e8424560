package codes

import (
	"testing"

	"github.com/emrgen/inquests-migration/internal/canon"
	"github.com/stretchr/testify/assert"
)

func TestJurisdictionID(t *testing.T) {
	tests := []struct {
		field string
		want  string
		ok    bool
	}{
		{"ON-Ontario", "CAD_ON", true},
		{"bc", "CAD_BC", true},
		{"CAN", "CAD", true},
		{"UK-United Kingdom", "UK", true},
		{"US", "US", true},
		{"ZZ", Other, false},
		{"", Other, false},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, ok := JurisdictionID(tt.field)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestJurisdictionsCoverMapping(t *testing.T) {
	ids := map[string]bool{}
	for _, j := range Jurisdictions() {
		ids[j.ID] = true
	}
	for _, field := range []string{"ON", "YT", "CAN", "UK", "US", "??"} {
		id, _ := JurisdictionID(field)
		assert.True(t, ids[id], "jurisdiction %s must be seeded", id)
	}
}

func TestSourceID(t *testing.T) {
	assert.Equal(t, "CAD_ONCA", SourceID("ONCA", "CAD_ON"))
	assert.Equal(t, "CAD_SCC", SourceID("SCC", "CAD"))
	assert.Equal(t, "CAD_ONSC", SourceID("ONSC", ""))
	assert.Equal(t, "UK_SENC", SourceID("UKSenC", "UK"))
	assert.Equal(t, "US_REF", SourceID("USOTH", ""))
	assert.Equal(t, "REF", SourceID("REF", ""))
	assert.Equal(t, "UK_EWHC", SourceID("EWHC", "UK"))
}

func TestInquestTypeID(t *testing.T) {
	id, ok := InquestTypeID(canon.Ptr("Mandatory-Custody/Police"))
	assert.True(t, ok)
	assert.Equal(t, "CUSTODY_POLICE", id)

	id, ok = InquestTypeID(canon.Ptr("Discretionary"))
	assert.True(t, ok)
	assert.Equal(t, "DISCRETIONARY", id)

	id, ok = InquestTypeID(canon.Ptr("Mandatory-Unknown reason"))
	assert.False(t, ok)
	assert.Equal(t, Other, id)

	id, ok = InquestTypeID(nil)
	assert.False(t, ok)
	assert.Equal(t, Other, id)
}

func TestDeathMannerID(t *testing.T) {
	id, ok := DeathMannerID(canon.Ptr(" homicide"))
	assert.True(t, ok)
	assert.Equal(t, "HOMICIDE", id)

	id, ok = DeathMannerID(canon.Ptr("Misadventure"))
	assert.False(t, ok)
	assert.Equal(t, Other, id)
}

func TestSplitKeyword(t *testing.T) {
	category, name := SplitKeyword("Cause-Fall from height")
	assert.Equal(t, "Cause", category)
	assert.Equal(t, "Fall from height", name)
	assert.Equal(t, "CAUSE", canon.FormatAsID(category))
	assert.Equal(t, "CAUSE_FALL_FROM_HEIGHT", KeywordID("Cause-Fall from height"))

	category, name = SplitKeyword("Evidence General")
	assert.Equal(t, "Evidence", category)
	assert.Equal(t, "Evidence General", name)

	category, name = SplitKeyword("Standard of review")
	assert.Equal(t, "General", category)
	assert.Equal(t, "Standard of review", name)
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(KeywordTypeAuthority, "CAUSE"))
	assert.True(t, ValidCategory(KeywordTypeInquest, "JURY"))
	assert.False(t, ValidCategory(KeywordTypeAuthority, "JURY"))
	assert.False(t, ValidCategory(KeywordTypeInquest, "MADE_UP"))
}

func TestParseRank(t *testing.T) {
	rank, ok := ParseRank(canon.Ptr("1-Supreme Court of Canada"))
	assert.True(t, ok)
	assert.Equal(t, 1, rank)

	rank, ok = ParseRank(canon.Ptr("binding"))
	assert.False(t, ok)
	assert.Equal(t, DefaultRank, rank)
}
