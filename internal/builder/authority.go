package builder

import (
	"regexp"
	"strings"

	"github.com/emrgen/inquests-migration/internal/canon"
	"github.com/emrgen/inquests-migration/internal/codes"
	"github.com/emrgen/inquests-migration/internal/model"
	"github.com/emrgen/inquests-migration/internal/sheet"
	"github.com/sirupsen/logrus"
)

const (
	inquestPrefix = "Inquest-"
	youth         = "YOUTH"
	unknownSex    = "?"
)

var mannerOfDeath = regexp.MustCompile(`Manner of Death: .*\s*([\s\S]*)`)

// Authority builds an authority from an authorities sheet row.
func Authority(row sheet.AuthorityRow) *model.Authority {
	return &model.Authority{
		IsPrimary: row.Primary,
		Name:      canon.FormatString(row.Name),
		Overview:  canon.NullableToString(row.Overview),
		Synopsis:  canon.NullableToString(row.Synopsis),
		Quotes:    canon.StringToNullable(row.Quotes),
		Notes:     canon.StringToNullable(row.Notes),
	}
}

// InquestName drops the redundant "Inquest-" prefix of inquest and inquest
// document names.
func InquestName(name *string) *string {
	if name == nil {
		return nil
	}
	s := strings.TrimPrefix(strings.TrimSpace(*name), inquestPrefix)
	return &s
}

// InquestSynopsis extracts the description following the "Manner of Death:"
// line of an inquest synopsis. Synopses without the marker are returned whole.
func InquestSynopsis(synopsis *string) *string {
	if synopsis == nil {
		return nil
	}
	if m := mannerOfDeath.FindStringSubmatch(*synopsis); m != nil {
		return canon.FormatString(&m[1])
	}
	return canon.FormatString(synopsis)
}

// Inquest builds an inquest from an authorities sheet row. Start and end
// dates that cannot be parsed fail the build.
func Inquest(row sheet.AuthorityRow) (*model.Inquest, error) {
	start, err := canon.ParseDate(row.Start)
	if err != nil {
		return nil, err
	}
	end, err := canon.ParseDate(row.End)
	if err != nil {
		return nil, err
	}

	jurisdictionID, ok := codes.JurisdictionID(canon.NullableToString(row.Jurisdiction))
	if !ok {
		logrus.WithFields(logrus.Fields{"kind": "inquest", "serial": row.Serial}).
			Warnf("Invalid jurisdiction %q referenced by inquest %s. Defaulting to %q.",
				canon.NullableToString(row.Jurisdiction), row.Serial, codes.Other)
	}

	return &model.Inquest{
		JurisdictionID:   jurisdictionID,
		IsPrimary:        row.Primary,
		Name:             canon.NullableToString(InquestName(row.Name)),
		Synopsis:         InquestSynopsis(row.Synopsis),
		Notes:            canon.StringToNullable(row.Notes),
		PresidingOfficer: canon.NullableToString(row.PresidingOfficer),
		Start:            start,
		End:              end,
	}, nil
}

// Deceased builds the deceased person of an inquest.
func Deceased(row sheet.AuthorityRow, inquestID uint) (*model.Deceased, error) {
	deathDate, err := canon.ParseDate(row.DeathDate)
	if err != nil {
		return nil, err
	}

	log := logrus.WithFields(logrus.Fields{"kind": "inquest", "serial": row.Serial})

	inquestType, ok := codes.InquestTypeID(row.InquestType)
	if !ok {
		log.Warnf("Invalid inquest type: %s referenced by inquest %s. Defaulting to %q.",
			canon.NullableToString(row.InquestType), row.Serial, codes.Other)
	}
	deathManner, ok := codes.DeathMannerID(row.DeathManner)
	if !ok {
		log.Warnf("Invalid manner of death %s referenced by inquest %s. Defaulting to %q.",
			canon.NullableToString(row.DeathManner), row.Serial, codes.Other)
	}

	lastName, givenNames := deceasedNames(row.LastName, row.GivenNames)

	var sex *string
	if s := canon.StringToNullable(row.Sex); s != nil && *s != unknownSex {
		sex = s
	}

	return &model.Deceased{
		InquestID:     inquestID,
		InquestTypeID: inquestType,
		DeathMannerID: deathManner,
		DeathCause:    canon.FormatString(row.DeathCause),
		DeathDate:     deathDate,
		LastName:      lastName,
		GivenNames:    givenNames,
		Age:           row.Age,
		Sex:           sex,
	}, nil
}

// deceasedNames withholds the names of youths, which are recorded as the
// YOUTH sentinel with no given names.
func deceasedNames(last, given *string) (*string, *string) {
	if last != nil && strings.TrimSpace(*last) == youth && canon.IsEmpty(given) {
		return nil, nil
	}
	return canon.Title(last), canon.Title(given)
}
