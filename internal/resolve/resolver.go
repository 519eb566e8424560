package resolve

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
)

// notYetClassified is the keyword placeholder for records awaiting review.
const notYetClassified = "zz_NotYetClassified"

// SplitSerials splits a newline or comma separated reference list. Empty
// segments, left behind by trailing separators, are dropped.
func SplitSerials(list *string) []string {
	if list == nil {
		return nil
	}
	fields := strings.FieldsFunc(*list, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Resolver turns serial reference lists into foreign-key edges against the
// entities already loaded in this run. Dangling and type-mismatched references
// are dropped with a warning; they never fail the run.
type Resolver struct {
	tables *Tables
}

func NewResolver(tables *Tables) *Resolver {
	return &Resolver{tables: tables}
}

// Citations resolves the authorities cited by owner. Citations may only point
// at authorities.
func (r *Resolver) Citations(owner *Record) []uint {
	var out []uint
	seen := mapset.NewThreadUnsafeSet[uint]()

	for _, serial := range SplitSerials(owner.Cited) {
		cited, ok := r.tables.Record(serial)
		if !ok {
			logrus.WithFields(logrus.Fields{"kind": owner.Kind, "serial": owner.Serial}).
				Warnf("Invalid authority %s cited by authority %s.", serial, owner.Serial)
			continue
		}
		if cited.Kind != KindAuthority {
			logrus.WithFields(logrus.Fields{"kind": owner.Kind, "serial": owner.Serial}).
				Warnf("Inquest %s cited by authority %s.", serial, owner.Serial)
			continue
		}
		if seen.Add(cited.ID) {
			out = append(out, cited.ID)
		}
	}

	return out
}

// Related resolves the related references of owner, routed by the type of the
// referenced entity.
func (r *Resolver) Related(owner *Record) (authorities, inquests []uint) {
	seenAuthorities := mapset.NewThreadUnsafeSet[uint]()
	seenInquests := mapset.NewThreadUnsafeSet[uint]()

	for _, serial := range SplitSerials(owner.Related) {
		related, ok := r.tables.Record(serial)
		if !ok {
			logrus.WithFields(logrus.Fields{"kind": owner.Kind, "serial": owner.Serial}).
				Warnf("Invalid authority %s related to authority %s.", serial, owner.Serial)
			continue
		}

		if related.Kind == KindInquest {
			if seenInquests.Add(related.ID) {
				inquests = append(inquests, related.ID)
			}
		} else if seenAuthorities.Add(related.ID) {
			authorities = append(authorities, related.ID)
		}
	}

	return authorities, inquests
}

// Keywords resolves owner's keyword list to keyword IDs of the matching type.
func (r *Resolver) Keywords(owner *Record) []string {
	var out []string
	seen := mapset.NewThreadUnsafeSet[string]()

	for _, keyword := range SplitSerials(owner.Keywords) {
		if keyword == notYetClassified {
			logrus.Debugf("Skipping unclassified keyword of %s.", owner.Serial)
			continue
		}

		id, ok := r.tables.KeywordID(owner.Kind, keyword)
		if !ok {
			logrus.WithFields(logrus.Fields{"kind": owner.Kind, "serial": owner.Serial}).
				Warnf("Invalid keyword %s referenced by %s.", keyword, owner.Serial)
			continue
		}
		if seen.Add(id) {
			out = append(out, id)
		}
	}

	return out
}

// DocumentOwners resolves the authorities and inquests a document belongs to.
func (r *Resolver) DocumentOwners(document string, list *string) []*Record {
	serials := SplitSerials(list)
	if len(serials) == 0 {
		logrus.WithFields(logrus.Fields{"kind": "document", "serial": document}).
			Warnf("Document %s does not reference any authorities.", document)
		return nil
	}

	var out []*Record
	seen := mapset.NewThreadUnsafeSet[string]()
	for _, serial := range serials {
		owner, ok := r.tables.Record(serial)
		if !ok {
			logrus.WithFields(logrus.Fields{"kind": "document", "serial": document}).
				Warnf("Invalid authority %s referenced by document %s.", serial, document)
			continue
		}
		if seen.Add(owner.Serial) {
			out = append(out, owner)
		}
	}

	return out
}

// SourceID resolves a document's source code against the sources loaded in
// this run.
func (r *Resolver) SourceID(document string, code *string) *string {
	if code == nil || strings.TrimSpace(*code) == "" {
		return nil
	}
	id, ok := r.tables.SourceID(strings.TrimSpace(*code))
	if !ok {
		logrus.WithFields(logrus.Fields{"kind": "document", "serial": document}).
			Warnf("Invalid source %s referenced by document %s.", *code, document)
		return nil
	}
	return &id
}
