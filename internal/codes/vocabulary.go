package codes

import (
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/inquests-migration/internal/canon"
)

// Term is one entry of a closed vocabulary.
type Term struct {
	ID          string
	Name        string
	Description string
}

var InquestTypes = []Term{
	{ID: "CONSTRUCTION", Name: "Construction"},
	{ID: "CUSTODY_INMATE", Name: "Custody (Inmate)"},
	{ID: "CUSTODY_POLICE", Name: "Custody (Police)"},
	{ID: "DISCRETIONARY", Name: "Discretionary"},
	{ID: "MINING", Name: "Mining"},
	{ID: "PSYCHIATRIC_RESTRAINT", Name: "Psychiatric Restraint"},
	{ID: Other, Name: "Other"},
}

var DeathManners = []Term{
	{ID: "ACCIDENT", Name: "Accident"},
	{ID: "HOMICIDE", Name: "Homicide"},
	{ID: "SUICIDE", Name: "Suicide"},
	{ID: "NATURAL", Name: "Natural"},
	{ID: "UNDETERMINED", Name: "Undetermined"},
	{ID: Other, Name: "Other"},
}

var (
	inquestTypeIDs = termIDs(InquestTypes)
	deathMannerIDs = termIDs(DeathManners)
)

func termIDs(terms []Term) mapset.Set[string] {
	ids := mapset.NewThreadUnsafeSet[string]()
	for _, t := range terms {
		if t.ID != Other {
			ids.Add(t.ID)
		}
	}
	return ids
}

const mandatoryPrefix = "Mandatory-"

// InquestTypeID maps an inquest type such as "Mandatory-Custody/Police" to
// CUSTODY_POLICE. An inquest is either discretionary or mandatory for a
// reason, so the "Mandatory-" prefix is dropped. Unknown values yield OTHER
// and false.
func InquestTypeID(value *string) (string, bool) {
	if canon.IsEmpty(value) {
		return Other, false
	}
	id := canon.FormatAsID(strings.TrimPrefix(strings.TrimSpace(*value), mandatoryPrefix))
	if !inquestTypeIDs.Contains(id) {
		return Other, false
	}
	return id, true
}

// DeathMannerID maps a manner of death to its identifier; unknown values yield
// OTHER and false.
func DeathMannerID(value *string) (string, bool) {
	if canon.IsEmpty(value) {
		return Other, false
	}
	id := canon.FormatAsID(*value)
	if !deathMannerIDs.Contains(id) {
		return Other, false
	}
	return id, true
}

// DefaultRank is used for sources whose rank field cannot be read; it sorts
// after every ranked source.
const DefaultRank = 99

// ParseRank reads the leading number of a rank field such as "1-Supreme Court".
func ParseRank(field *string) (int, bool) {
	if canon.IsEmpty(field) {
		return DefaultRank, false
	}
	head, _, _ := strings.Cut(strings.TrimSpace(*field), "-")
	rank, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return DefaultRank, false
	}
	return rank, true
}
