package builder

import (
	"strings"

	"github.com/emrgen/inquests-migration/internal/canon"
	"github.com/emrgen/inquests-migration/internal/codes"
	"github.com/emrgen/inquests-migration/internal/model"
	"github.com/emrgen/inquests-migration/internal/sheet"
	"github.com/sirupsen/logrus"
)

// Source builds a source from a sources sheet row. Sources without a
// jurisdiction keep a nil jurisdiction; unknown jurisdictions fall back to
// OTHER.
func Source(row sheet.SourceRow) *model.Source {
	code := strings.TrimSpace(row.Code)
	log := logrus.WithFields(logrus.Fields{"kind": "source", "serial": code})

	var jurisdictionID *string
	if !canon.IsEmpty(row.Jurisdiction) {
		id, ok := codes.JurisdictionID(*row.Jurisdiction)
		if !ok {
			log.Warnf("Invalid jurisdiction %s referenced by source %s. Defaulting to %q.", *row.Jurisdiction, code, codes.Other)
		}
		jurisdictionID = &id
	}

	rank, ok := codes.ParseRank(row.Rank)
	if !ok {
		log.Warnf("Invalid rank %q for source %s. Defaulting to %d.", canon.NullableToString(row.Rank), code, rank)
	}

	name := canon.NullableToString(row.Name)
	if name == "" {
		name = code
	}

	return &model.Source{
		ID:             codes.SourceID(code, canon.NullableToString(jurisdictionID)),
		JurisdictionID: jurisdictionID,
		Name:           name,
		Code:           canon.StringToNullable(&code),
		Rank:           rank,
	}
}
