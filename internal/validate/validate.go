package validate

import (
	"context"
	"fmt"

	"github.com/emrgen/inquests-migration/internal/codes"
	"github.com/emrgen/inquests-migration/internal/resolve"
	"github.com/emrgen/inquests-migration/internal/store"
	"github.com/sirupsen/logrus"
)

// Check names one structural rule of the loaded store.
type Check string

const (
	CheckPrimaryDocument  Check = "authority-primary-document"
	CheckInquestDocument  Check = "inquest-document"
	CheckAuthorityKeyword Check = "authority-keyword"
	CheckInquestKeyword   Check = "inquest-keyword"
	CheckInquestCause     Check = "inquest-cause-keyword"
)

// Violation is one failed check, reported by serial.
type Violation struct {
	Check   Check  `json:"check"`
	Kind    string `json:"kind"`
	Serial  string `json:"serial"`
	ID      uint   `json:"id"`
	Count   *int64 `json:"count,omitempty"`
	Message string `json:"message"`
}

// SerialLookup maps store IDs back to the serials they were loaded from.
type SerialLookup interface {
	Serial(kind resolve.Kind, id uint) (string, bool)
}

// Validator runs the post-load checks. Violations are logged as warnings and
// returned; they never fail a run.
type Validator struct {
	store   store.ValidationStore
	serials SerialLookup
}

func NewValidator(store store.ValidationStore, serials SerialLookup) *Validator {
	return &Validator{store: store, serials: serials}
}

func (v *Validator) Run(ctx context.Context) ([]Violation, error) {
	logrus.Info("Running validation checks.")

	var violations []Violation

	counts, err := v.store.AuthorityPrimaryDocumentCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count primary documents: %w", err)
	}
	for _, c := range counts {
		count := c.Count
		serial := v.serial(resolve.KindAuthority, c.ID)
		violations = append(violations, v.report(Violation{
			Check:   CheckPrimaryDocument,
			Kind:    "authority",
			Serial:  serial,
			ID:      c.ID,
			Count:   &count,
			Message: fmt.Sprintf("Authority %s has %d primary documents.", serial, count),
		}))
	}

	checks := []struct {
		check   Check
		kind    resolve.Kind
		query   func(context.Context) ([]uint, error)
		message string
	}{
		{CheckInquestDocument, resolve.KindInquest, v.store.InquestsWithoutDocuments, "Inquest %s does not have any documents."},
		{CheckAuthorityKeyword, resolve.KindAuthority, v.store.AuthoritiesWithoutKeywords, "Authority %s does not have any keywords."},
		{CheckInquestKeyword, resolve.KindInquest, v.store.InquestsWithoutKeywords, "Inquest %s does not have any keywords."},
		{CheckInquestCause, resolve.KindInquest, func(ctx context.Context) ([]uint, error) {
			return v.store.InquestsWithoutCategory(ctx, codes.CategoryCause)
		}, "Inquest %s does not have any CAUSE keywords."},
	}

	for _, c := range checks {
		ids, err := c.query(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to run %s check: %w", c.check, err)
		}
		for _, id := range ids {
			serial := v.serial(c.kind, id)
			violations = append(violations, v.report(Violation{
				Check:   c.check,
				Kind:    kindName(c.kind),
				Serial:  serial,
				ID:      id,
				Message: fmt.Sprintf(c.message, serial),
			}))
		}
	}

	logrus.Infof("Validation found %d violations.", len(violations))
	return violations, nil
}

// serial falls back to the store ID when the entity was not loaded by this
// run, e.g. when validating without a manifest.
func (v *Validator) serial(kind resolve.Kind, id uint) string {
	if v.serials != nil {
		if serial, ok := v.serials.Serial(kind, id); ok {
			return serial
		}
	}
	return fmt.Sprintf("#%d", id)
}

func (v *Validator) report(violation Violation) Violation {
	logrus.WithFields(logrus.Fields{
		"kind":   violation.Kind,
		"serial": violation.Serial,
		"check":  violation.Check,
	}).Warn(violation.Message)
	return violation
}

func kindName(kind resolve.Kind) string {
	if kind == resolve.KindInquest {
		return "inquest"
	}
	return "authority"
}
