package migration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emrgen/inquests-migration/internal/canon"
	"github.com/emrgen/inquests-migration/internal/compress"
	"github.com/emrgen/inquests-migration/internal/migration"
	"github.com/emrgen/inquests-migration/internal/model"
	"github.com/emrgen/inquests-migration/internal/resolve"
	"github.com/emrgen/inquests-migration/internal/sheet"
	"github.com/emrgen/inquests-migration/internal/storage"
	"github.com/emrgen/inquests-migration/internal/store"
	"github.com/emrgen/inquests-migration/internal/tester"
	"github.com/emrgen/inquests-migration/internal/validate"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	authority = "Authority"
	inquest   = "Inquest/Fatality Inquiry"
)

type env struct {
	db        *gorm.DB
	dataDir   string
	docsDir   string
	objects   *storage.FilesystemStore
	objectDir string
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		db:        tester.Setup(t),
		dataDir:   t.TempDir(),
		docsDir:   t.TempDir(),
		objectDir: t.TempDir(),
	}
	objects, err := storage.NewFilesystemStore(e.objectDir)
	require.NoError(t, err)
	e.objects = objects

	tester.WriteWorkbook(t, e.dataDir, sheet.WorkbookSources, 5,
		[]any{"ONCA", "Ontario Court of Appeal", "ON-Ontario", "", "1-Appellate"},
	)
	tester.WriteWorkbook(t, e.dataDir, sheet.WorkbookKeywords, 4,
		[]any{authority, "Cause-Fall from height", "", "Falls"},
		[]any{inquest, "Cause-Fall", "", ""},
		[]any{authority, "Jury-Selection", "", ""},
	)

	return e
}

func (e *env) writeAuthorities(t *testing.T, rows ...[]any) {
	tester.WriteWorkbook(t, e.dataDir, sheet.WorkbookAuthorities, 42, rows...)
}

func (e *env) writeDocuments(t *testing.T, rows ...[]any) {
	tester.WriteWorkbook(t, e.dataDir, sheet.WorkbookDocuments, 8, rows...)
}

func (e *env) migrator(upload bool) *migration.Migrator {
	return migration.NewMigrator(store.NewGormStore(e.db), e.objects, migration.Options{
		DataDir:       e.dataDir,
		DocumentsDir:  e.docsDir,
		Upload:        upload,
		UploadWorkers: 2,
	})
}

func (e *env) writeDocumentFile(t *testing.T, serial string) {
	dir := filepath.Join(e.docsDir, serial)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.pdf"), []byte("%PDF-1.4"), 0644))
}

func fullData(t *testing.T, e *env) {
	e.writeAuthorities(t,
		tester.Row(42, map[int]any{0: "I1", 1: "Inquest-Doe", 3: inquest, 5: "Cause-Fall", 15: "ON-Ontario", 25: "YOUTH", 29: "Discretionary", 33: "06/01/2019", 40: "Accident", 41: 1}),
		tester.Row(42, map[int]any{0: "A2", 1: "R v Jones", 3: authority, 5: "Cause-Fall from height,Cause-Fall", 41: 2}),
		tester.Row(42, map[int]any{0: "A1", 1: "R v Smith", 3: authority, 5: "Cause-Fall from height", 6: "costs, Costs", 9: true, 18: "2020 ONCA 1", 20: "A2\nI1", 21: "A2\nI1\nA404", 41: 1}),
		tester.Row(42, map[int]any{0: "X1", 3: "Legislation", 41: 3}),
	)
	e.writeDocuments(t,
		[]any{"A1", "D1", "Reasons", "2020 ONCA 1", "06/15/2020", "", "Inquests.ca", "ONCA"},
		[]any{"I1", "D2", "Inquest-Verdict", "", "2019-01-01", "https://example.com/verdict", "CanLII", ""},
		[]any{"A404", "D3", "Lost", "", "", "https://example.com/lost", "CanLII", ""},
	)
	e.writeDocumentFile(t, "D1")
}

func TestMigrator_Run(t *testing.T) {
	e := newEnv(t)
	fullData(t, e)

	hook := test.NewGlobal()
	defer hook.Reset()

	report, err := e.migrator(true).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Stages, 7)
	assert.Equal(t, migration.StageValidate, report.Stages[6].Name)

	var source model.Source
	require.NoError(t, e.db.First(&source, "id = ?", "CAD_ONCA").Error)
	require.NotNil(t, source.JurisdictionID)
	assert.Equal(t, "CAD_ON", *source.JurisdictionID)
	assert.Equal(t, 1, source.Rank)

	var keywords []model.AuthorityKeyword
	require.NoError(t, e.db.Find(&keywords).Error)
	require.Len(t, keywords, 1, "Jury is not an authority category")
	assert.Equal(t, "CAUSE_FALL_FROM_HEIGHT", keywords[0].ID)
	assert.Equal(t, "CAUSE", keywords[0].AuthorityCategoryID)
	assert.Equal(t, "Fall from height", keywords[0].Name)

	var a1 model.Authority
	require.NoError(t, e.db.First(&a1, 1).Error)
	assert.Equal(t, "R v Smith", *a1.Name)
	assert.True(t, a1.IsPrimary)

	var tags []model.AuthorityTag
	require.NoError(t, e.db.Find(&tags, "authority_id = ?", 1).Error)
	require.Len(t, tags, 1)
	assert.Equal(t, "Costs", tags[0].Tag)

	var deceased model.Deceased
	require.NoError(t, e.db.First(&deceased, "inquest_id = ?", 1).Error)
	assert.Nil(t, deceased.LastName)
	assert.Nil(t, deceased.GivenNames)
	assert.Equal(t, "DISCRETIONARY", deceased.InquestTypeID)
	assert.Equal(t, "ACCIDENT", deceased.DeathMannerID)

	var inq model.Inquest
	require.NoError(t, e.db.First(&inq, 1).Error)
	assert.Equal(t, "Doe", inq.Name)
	assert.Equal(t, "CAD_ON", inq.JurisdictionID)

	var citations []model.AuthorityCitation
	require.NoError(t, e.db.Find(&citations).Error)
	require.Len(t, citations, 1)
	assert.Equal(t, model.AuthorityCitation{AuthorityID: 1, CitedAuthorityID: 2}, citations[0])

	var related []model.AuthorityRelated
	require.NoError(t, e.db.Find(&related).Error)
	assert.Len(t, related, 1)
	var relatedInquests []model.AuthorityInquest
	require.NoError(t, e.db.Find(&relatedInquests).Error)
	assert.Len(t, relatedInquests, 1)

	var authorityKeywords []model.AuthorityKeywords
	require.NoError(t, e.db.Find(&authorityKeywords).Error)
	assert.Len(t, authorityKeywords, 2, "inquest keywords are not linked to authorities")

	var docs []model.AuthorityDocument
	require.NoError(t, e.db.Find(&docs).Error)
	require.Len(t, docs, 1)
	assert.True(t, docs[0].IsPrimary)
	require.NotNil(t, docs[0].SourceID)
	assert.Equal(t, "CAD_ONCA", *docs[0].SourceID)

	var link model.AuthorityDocumentLink
	require.NoError(t, e.db.First(&link, "authority_document_id = ?", docs[0].ID).Error)
	assert.Equal(t, "INQUESTS_CA", link.DocumentSourceID)
	key := "Documents/CAD-ONCA/2020/R-v-Smith/Reasons.pdf"
	assert.True(t, strings.HasSuffix(link.Link, key), link.Link)
	_, err = os.Stat(filepath.Join(e.objectDir, filepath.FromSlash(key)))
	assert.NoError(t, err, "document uploaded")

	var inquestDoc model.InquestDocument
	require.NoError(t, e.db.First(&inquestDoc).Error)
	assert.Equal(t, "Verdict", *inquestDoc.Name)
	var inquestLink model.InquestDocumentLink
	require.NoError(t, e.db.First(&inquestLink).Error)
	assert.Equal(t, "CANLII", inquestLink.DocumentSourceID)
	assert.Equal(t, "https://example.com/verdict", inquestLink.Link)

	require.Len(t, report.Violations, 1)
	assert.Equal(t, validate.CheckPrimaryDocument, report.Violations[0].Check)
	assert.Equal(t, "A2", report.Violations[0].Serial)

	warned := func(substr string) bool {
		for _, entry := range hook.AllEntries() {
			if entry.Level == logrus.WarnLevel && strings.Contains(entry.Message, substr) {
				return true
			}
		}
		return false
	}
	assert.True(t, warned("Invalid authority A404 related to authority A1"))
	assert.True(t, warned("Inquest I1 cited by authority A1"))
	assert.True(t, warned("Unknown authority type: Legislation"))
	assert.True(t, warned("Invalid keyword Cause-Fall referenced by A2"))
	assert.True(t, warned("Invalid authority A404 referenced by document D3"))
}

func TestMigrator_UploadDisabledStillLinks(t *testing.T) {
	e := newEnv(t)
	fullData(t, e)

	_, err := e.migrator(false).Run(context.Background())
	require.NoError(t, err)

	var link model.AuthorityDocumentLink
	require.NoError(t, e.db.First(&link).Error)
	assert.True(t, strings.HasSuffix(link.Link, "Documents/CAD-ONCA/2020/R-v-Smith/Reasons.pdf"))

	_, err = os.Stat(filepath.Join(e.objectDir, "Documents"))
	assert.True(t, os.IsNotExist(err), "nothing uploaded")
}

func TestMigrator_UnnamedAuthorityDocumentKey(t *testing.T) {
	e := newEnv(t)
	e.writeAuthorities(t,
		tester.Row(42, map[int]any{0: "A1", 3: authority, 41: 1}),
	)
	e.writeDocuments(t,
		[]any{"A1", "D1", "Reasons", "", "06/15/2020", "", "Inquests.ca", "ONCA"},
	)
	e.writeDocumentFile(t, "D1")

	_, err := e.migrator(true).Run(context.Background())
	require.NoError(t, err)

	var link model.AuthorityDocumentLink
	require.NoError(t, e.db.First(&link).Error)
	key := "Documents/CAD-ONCA/2020/MissingData/Reasons.pdf"
	assert.True(t, strings.HasSuffix(link.Link, key), link.Link)
	_, err = os.Stat(filepath.Join(e.objectDir, filepath.FromSlash(key)))
	assert.NoError(t, err)
}

func TestMigrator_SerialsAreTrimmed(t *testing.T) {
	e := newEnv(t)
	e.writeAuthorities(t,
		tester.Row(42, map[int]any{0: "A1 ", 1: "R v Smith", 3: authority, 41: 1}),
		tester.Row(42, map[int]any{0: "A2", 1: "R v Jones", 3: authority, 20: "A1", 41: 2}),
	)
	e.writeDocuments(t)

	report, err := e.migrator(false).Run(context.Background())
	require.NoError(t, err)

	var citations []model.AuthorityCitation
	require.NoError(t, e.db.Find(&citations).Error)
	require.Len(t, citations, 1)
	assert.Equal(t, model.AuthorityCitation{AuthorityID: 2, CitedAuthorityID: 1}, citations[0])

	serial, ok := report.Tables.Serial(resolve.KindAuthority, 1)
	require.True(t, ok)
	assert.Equal(t, "A1", serial)
}

func TestMigrator_ExportIDMismatch(t *testing.T) {
	e := newEnv(t)
	e.writeAuthorities(t,
		tester.Row(42, map[int]any{0: "A1", 1: "R v Smith", 3: authority, 41: 5}),
	)
	e.writeDocuments(t)

	report, err := e.migrator(false).Run(context.Background())
	require.ErrorIs(t, err, migration.ErrExportIDMismatch)
	assert.Contains(t, err.Error(), "A1")

	require.Len(t, report.Stages, 2, "only stages before the failure commit")

	var count int64
	require.NoError(t, e.db.Model(&model.Authority{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, e.db.Model(&model.AuthorityDocument{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMigrator_MalformedDateIsFatal(t *testing.T) {
	e := newEnv(t)
	e.writeAuthorities(t,
		tester.Row(42, map[int]any{0: "I1", 1: "Doe", 3: inquest, 33: "June 2019", 41: 1}),
	)
	e.writeDocuments(t)

	_, err := e.migrator(false).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "I1")
	assert.Contains(t, err.Error(), "malformed date")
}

func TestMigrator_NumericTextDateIsFatal(t *testing.T) {
	e := newEnv(t)
	e.writeAuthorities(t,
		tester.Row(42, map[int]any{0: "I1", 1: "Doe", 3: inquest, 33: "2019", 41: 1}),
	)
	e.writeDocuments(t)

	_, err := e.migrator(false).Run(context.Background())
	var malformed *canon.MalformedDateError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "2019", malformed.Value)
	assert.Contains(t, err.Error(), "I1")

	var inquests int64
	require.NoError(t, e.db.Model(&model.Inquest{}).Count(&inquests).Error)
	assert.Zero(t, inquests)
}

func TestMigrator_TargetNotEmpty(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.db.Create(&model.Authority{}).Error)

	_, err := e.migrator(false).Run(context.Background())
	assert.ErrorIs(t, err, migration.ErrTargetNotEmpty)
}

func TestMigrator_Canceled(t *testing.T) {
	e := newEnv(t)
	fullData(t, e)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.migrator(false).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestManifest(t *testing.T) {
	e := newEnv(t)
	fullData(t, e)

	report, err := e.migrator(false).Run(context.Background())
	require.NoError(t, err)

	path, err := migration.WriteManifest(t.TempDir(), compress.NewLZ4(), report.Manifest(3))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".json.lz4"))

	m, err := migration.ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, report.RunID, m.RunID)
	assert.Equal(t, int64(3), m.Warnings)
	assert.Equal(t, "lz4", m.Compression)
	assert.Equal(t, uint(2), m.Tables.Authorities["A2"])
	assert.Equal(t, uint(1), m.Tables.Inquests["I1"])
	require.Len(t, m.Violations, 1)

	violations, err := migration.Validate(context.Background(), store.NewGormStore(e.db), nil)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "#2", violations[0].Serial)
}
