package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/emrgen/inquests-migration/internal/resolve"
	"github.com/emrgen/inquests-migration/internal/sheet"
	"github.com/emrgen/inquests-migration/internal/storage"
	"github.com/emrgen/inquests-migration/internal/store"
	"github.com/emrgen/inquests-migration/internal/validate"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Options struct {
	DataDir       string
	DocumentsDir  string
	Upload        bool
	UploadWorkers int
	InitSchema    bool
}

// Migrator loads the spreadsheet exports into a fresh target store.
type Migrator struct {
	store   store.Store
	reader  *sheet.Reader
	objects storage.ObjectStore
	opts    Options
}

// NewMigrator returns a Migrator. objects may be nil, in which case stored
// documents get no link.
func NewMigrator(store store.Store, objects storage.ObjectStore, opts Options) *Migrator {
	if opts.UploadWorkers < 1 {
		opts.UploadWorkers = 1
	}
	return &Migrator{
		store:   store,
		reader:  sheet.NewReader(opts.DataDir),
		objects: objects,
		opts:    opts,
	}
}

// Run executes every stage in order. A fatal error in any stage stops the run
// before later stages start; stages already committed stay committed.
func (m *Migrator) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:   uuid.New(),
		Started: time.Now(),
	}
	logrus.Infof("Starting migration run %s.", report.RunID)

	if err := ctx.Err(); err != nil {
		return report, err
	}
	if err := m.prepareTarget(ctx); err != nil {
		return report, err
	}

	r := newRun(m)
	report.Tables = r.tables

	stages := r.stages()
	if err := checkOrder(stages); err != nil {
		return report, err
	}

	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		start := time.Now()
		if s.prepare != nil {
			if err := s.prepare(ctx); err != nil {
				return report, fmt.Errorf("stage %s: %w", s.name, err)
			}
		}

		var count int
		err := m.store.Transaction(ctx, func(tx store.Store) error {
			var err error
			count, err = s.run(ctx, tx)
			return err
		})
		if err != nil {
			return report, fmt.Errorf("stage %s: %w", s.name, err)
		}

		report.Stages = append(report.Stages, StageReport{Name: s.name, Records: count, Duration: time.Since(start)})
		logrus.Debugf("Stage %s wrote %d records.", s.name, count)
	}

	report.Violations = r.violations
	report.Finished = time.Now()
	logrus.Infof("Migration run %s finished in %s.", report.RunID, report.Finished.Sub(report.Started).Round(time.Millisecond))

	return report, nil
}

func (m *Migrator) prepareTarget(ctx context.Context) error {
	if m.opts.InitSchema {
		logrus.Info("Initialising target schema.")
		if err := m.store.Migrate(); err != nil {
			return fmt.Errorf("failed to initialise schema: %w", err)
		}
	}

	count, err := m.store.CountAuthorities(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect target store (is the schema initialised?): %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d authorities", ErrTargetNotEmpty, count)
	}
	return nil
}

// Validate runs only the post-load checks against an already loaded store.
// serials may be nil, in which case violations are reported by store ID.
func Validate(ctx context.Context, s store.Store, serials *resolve.Tables) ([]validate.Violation, error) {
	var lookup validate.SerialLookup
	if serials != nil {
		lookup = serials
	}
	return validate.NewValidator(s, lookup).Run(ctx)
}
