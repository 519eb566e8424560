package migration

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/emrgen/inquests-migration/internal/builder"
	"github.com/emrgen/inquests-migration/internal/canon"
	"github.com/emrgen/inquests-migration/internal/codes"
	"github.com/emrgen/inquests-migration/internal/model"
	"github.com/emrgen/inquests-migration/internal/resolve"
	"github.com/emrgen/inquests-migration/internal/sheet"
	"github.com/emrgen/inquests-migration/internal/store"
	"github.com/emrgen/inquests-migration/internal/validate"
	"github.com/sirupsen/logrus"
)

// run holds the state of one migration run. tables are written by the
// sources, keywords and records stages and only read afterwards.
type run struct {
	*Migrator
	tables     *resolve.Tables
	resolver   *resolve.Resolver
	documents  []*documentEdge
	violations []validate.Violation
}

func newRun(m *Migrator) *run {
	tables := resolve.NewTables()
	return &run{
		Migrator: m,
		tables:   tables,
		resolver: resolve.NewResolver(tables),
	}
}

func (r *run) stages() []stage {
	return []stage{
		{name: StageSources, run: r.populateSources},
		{name: StageKeywords, run: r.populateKeywords},
		{name: StageRecords, dependsOn: []string{StageSources, StageKeywords}, run: r.populateRecords},
		{name: StageRelationships, dependsOn: []string{StageRecords}, run: r.populateRelationships},
		{name: StageKeywordJoins, dependsOn: []string{StageRecords}, run: r.populateKeywordJoins},
		{name: StageDocuments, dependsOn: []string{StageRecords}, prepare: r.prepareDocuments, run: r.populateDocuments},
		{name: StageValidate, dependsOn: []string{StageRelationships, StageKeywordJoins, StageDocuments}, run: r.validate},
	}
}

// populateSources seeds the reference vocabularies and loads the sources sheet.
func (r *run) populateSources(ctx context.Context, tx store.Store) (int, error) {
	logrus.Info("Populating reference data and sources.")

	var records []any
	for _, s := range codes.Sovereignties {
		records = append(records, &model.Sovereignty{ID: s.ID, Name: s.Name})
	}
	for _, j := range codes.Jurisdictions() {
		records = append(records, &model.Jurisdiction{
			ID:            j.ID,
			SovereigntyID: j.SovereigntyID,
			Code:          j.Code,
			Name:          j.Name,
			IsFederal:     j.Federal,
		})
	}
	for _, t := range codes.InquestTypes {
		records = append(records, &model.InquestType{ID: t.ID, Name: t.Name})
	}
	for _, t := range codes.DeathManners {
		records = append(records, &model.DeathManner{ID: t.ID, Name: t.Name})
	}
	for _, record := range records {
		if err := tx.Create(ctx, record); err != nil {
			return 0, err
		}
	}
	count := len(records)

	rows, err := sheet.Read[sheet.SourceRow](r.reader, sheet.WorkbookSources)
	if err != nil {
		return 0, err
	}

	for _, row := range rows {
		if canon.IsEmpty(&row.Code) {
			logrus.WithField("kind", "source").Warnf("Skipping source without code: %s", canon.NullableToString(row.Name))
			continue
		}
		source := builder.Source(row)
		if err := r.tables.AddSource(*source.Code, source.ID); err != nil {
			logrus.WithFields(logrus.Fields{"kind": "source", "serial": row.Code}).Warnf("Skipping source: %v", err)
			continue
		}
		if err := tx.Create(ctx, source); err != nil {
			return 0, fmt.Errorf("source %s: %w", row.Code, err)
		}
		count++
	}

	return count, nil
}

// populateKeywords seeds the closed category sets and loads the keywords sheet.
func (r *run) populateKeywords(ctx context.Context, tx store.Store) (int, error) {
	logrus.Info("Populating keywords.")

	count := 0
	for _, kt := range []codes.KeywordType{codes.KeywordTypeAuthority, codes.KeywordTypeInquest} {
		for _, term := range codes.Categories(kt) {
			if err := tx.Create(ctx, builder.Category(kt, term)); err != nil {
				return 0, err
			}
			count++
		}
	}

	rows, err := sheet.Read[sheet.KeywordRow](r.reader, sheet.WorkbookKeywords)
	if err != nil {
		return 0, err
	}

	for _, row := range rows {
		keyword, ok := builder.NewKeyword(row)
		if !ok {
			continue
		}
		if err := r.tables.AddKeyword(keyword.Type, keyword.Text, keyword.ID); err != nil {
			logrus.WithFields(logrus.Fields{"kind": "keyword", "serial": keyword.Text}).Warnf("Skipping keyword: %v", err)
			continue
		}
		if err := tx.Create(ctx, keyword.Model()); err != nil {
			return 0, fmt.Errorf("keyword %s: %w", keyword.Text, err)
		}
		count++
	}

	return count, nil
}

// populateRecords loads authorities, then inquests, each in export ID order.
func (r *run) populateRecords(ctx context.Context, tx store.Store) (int, error) {
	logrus.Info("Populating authorities and inquests.")

	rows, err := sheet.Read[sheet.AuthorityRow](r.reader, sheet.WorkbookAuthorities)
	if err != nil {
		return 0, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ExportID < rows[j].ExportID
	})

	var authorities, inquests []sheet.AuthorityRow
	for _, row := range rows {
		row.Serial = strings.TrimSpace(row.Serial)
		kt, ok := codes.ParseKeywordType(row.Type)
		if !ok {
			logrus.WithFields(logrus.Fields{"kind": "authority", "serial": row.Serial}).
				Warnf("Unknown authority type: %s referenced by authority %s", row.Type, row.Serial)
			continue
		}
		if kt == codes.KeywordTypeInquest {
			inquests = append(inquests, row)
		} else {
			authorities = append(authorities, row)
		}
	}

	count := 0
	for _, row := range authorities {
		n, err := r.createAuthority(ctx, tx, row)
		if err != nil {
			return 0, err
		}
		count += n
	}
	for _, row := range inquests {
		n, err := r.createInquest(ctx, tx, row)
		if err != nil {
			return 0, err
		}
		count += n
	}

	return count, nil
}

func (r *run) createAuthority(ctx context.Context, tx store.Store, row sheet.AuthorityRow) (int, error) {
	authority := builder.Authority(row)
	if err := tx.Create(ctx, authority); err != nil {
		return 0, fmt.Errorf("authority %s: %w", row.Serial, err)
	}
	if err := checkExportID(row, authority.ID); err != nil {
		return 0, err
	}

	count := 1
	for _, tag := range builder.AuthorityTags(authority.ID, builder.Tags(row.Tags)) {
		if err := tx.Create(ctx, tag); err != nil {
			return 0, fmt.Errorf("authority %s tag %s: %w", row.Serial, tag.Tag, err)
		}
		count++
	}

	return count, r.tables.AddRecord(&resolve.Record{
		Serial:          row.Serial,
		ID:              authority.ID,
		Kind:            resolve.KindAuthority,
		Name:            canon.NullableToString(authority.Name),
		Keywords:        row.Keywords,
		PrimaryDocument: row.PrimaryDocument,
		Cited:           row.Cited,
		Related:         row.Related,
	})
}

func (r *run) createInquest(ctx context.Context, tx store.Store, row sheet.AuthorityRow) (int, error) {
	inquest, err := builder.Inquest(row)
	if err != nil {
		return 0, fmt.Errorf("inquest %s: %w", row.Serial, err)
	}
	if err := tx.Create(ctx, inquest); err != nil {
		return 0, fmt.Errorf("inquest %s: %w", row.Serial, err)
	}
	if err := checkExportID(row, inquest.ID); err != nil {
		return 0, err
	}

	deceased, err := builder.Deceased(row, inquest.ID)
	if err != nil {
		return 0, fmt.Errorf("inquest %s: %w", row.Serial, err)
	}
	if err := tx.Create(ctx, deceased); err != nil {
		return 0, fmt.Errorf("inquest %s deceased: %w", row.Serial, err)
	}

	count := 2
	for _, tag := range builder.InquestTags(inquest.ID, builder.Tags(row.Tags)) {
		if err := tx.Create(ctx, tag); err != nil {
			return 0, fmt.Errorf("inquest %s tag %s: %w", row.Serial, tag.Tag, err)
		}
		count++
	}

	return count, r.tables.AddRecord(&resolve.Record{
		Serial:   row.Serial,
		ID:       inquest.ID,
		Kind:     resolve.KindInquest,
		Name:     inquest.Name,
		Keywords: row.Keywords,
	})
}

// checkExportID fails the run when the store's autoincrement sequence has
// drifted from the export order; every later reference would be wrong.
func checkExportID(row sheet.AuthorityRow, id uint) error {
	if row.ExportID < 0 || uint(row.ExportID) != id {
		return fmt.Errorf("%w: %s %s was assigned ID %d, export ID is %d",
			ErrExportIDMismatch, row.Type, row.Serial, id, row.ExportID)
	}
	return nil
}

// populateRelationships writes citations and related-authority edges.
func (r *run) populateRelationships(ctx context.Context, tx store.Store) (int, error) {
	logrus.Info("Populating authority relationships.")

	count := 0
	for _, record := range r.tables.Records() {
		if record.Kind != resolve.KindAuthority {
			continue
		}

		for _, cited := range r.resolver.Citations(record) {
			if err := tx.Create(ctx, &model.AuthorityCitation{AuthorityID: record.ID, CitedAuthorityID: cited}); err != nil {
				return 0, fmt.Errorf("authority %s citation: %w", record.Serial, err)
			}
			count++
		}

		authorities, inquests := r.resolver.Related(record)
		for _, related := range authorities {
			if err := tx.Create(ctx, &model.AuthorityRelated{AuthorityID: record.ID, RelatedAuthorityID: related}); err != nil {
				return 0, fmt.Errorf("authority %s related authority: %w", record.Serial, err)
			}
			count++
		}
		for _, inquest := range inquests {
			if err := tx.Create(ctx, &model.AuthorityInquest{AuthorityID: record.ID, InquestID: inquest}); err != nil {
				return 0, fmt.Errorf("authority %s related inquest: %w", record.Serial, err)
			}
			count++
		}
	}

	return count, nil
}

// populateKeywordJoins links authorities and inquests to their keywords. A
// join rejected by the store is rolled back alone and the stage continues.
func (r *run) populateKeywordJoins(ctx context.Context, tx store.Store) (int, error) {
	logrus.Info("Populating authority and inquest keywords.")

	count := 0
	for _, record := range r.tables.Records() {
		for _, keywordID := range r.resolver.Keywords(record) {
			var join any
			if record.Kind == resolve.KindInquest {
				join = &model.InquestKeywords{InquestID: record.ID, InquestKeywordID: keywordID}
			} else {
				join = &model.AuthorityKeywords{AuthorityID: record.ID, AuthorityKeywordID: keywordID}
			}

			ok, err := tryCreate(ctx, tx, join, record.Kind, record.Serial)
			if err != nil {
				return 0, err
			}
			if ok {
				count++
			}
		}
	}

	return count, nil
}

// tryCreate inserts value in its own savepoint. It reports false, with a
// warning, when the store rejected the insert.
func tryCreate(ctx context.Context, tx store.Store, value any, kind any, serial string) (bool, error) {
	violation, err := tx.TryCreate(ctx, value)
	if err != nil {
		return false, fmt.Errorf("%v %s: %w", kind, serial, err)
	}
	if violation != nil {
		logrus.WithFields(logrus.Fields{"kind": kind, "serial": serial, "table": violation.Table}).
			Warnf("Skipped %s row of %s: %v", violation.Table, serial, violation.Err)
		return false, nil
	}
	return true, nil
}

func (r *run) validate(ctx context.Context, tx store.Store) (int, error) {
	violations, err := validate.NewValidator(tx, r.tables).Run(ctx)
	if err != nil {
		return 0, err
	}
	r.violations = violations
	return 0, nil
}
