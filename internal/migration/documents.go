package migration

import (
	"context"
	"errors"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/inquests-migration/internal/builder"
	"github.com/emrgen/inquests-migration/internal/canon"
	"github.com/emrgen/inquests-migration/internal/codes"
	"github.com/emrgen/inquests-migration/internal/resolve"
	"github.com/emrgen/inquests-migration/internal/sheet"
	"github.com/emrgen/inquests-migration/internal/storage"
	"github.com/emrgen/inquests-migration/internal/store"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// documentEdge is one document attached to one owner.
type documentEdge struct {
	doc      *builder.Document
	owner    *resolve.Record
	sourceID *string
	link     *string
}

type upload struct {
	path   string
	key    string
	serial string
}

// prepareDocuments reads the documents sheet, resolves owners and links, and
// uploads stored document files. It runs before the documents transaction
// opens so no store transaction is held across network calls.
func (r *run) prepareDocuments(ctx context.Context) error {
	rows, err := sheet.Read[sheet.DocumentRow](r.reader, sheet.WorkbookDocuments)
	if err != nil {
		return err
	}

	var uploads []upload
	keys := mapset.NewThreadUnsafeSet[string]()

	for _, row := range rows {
		doc, err := builder.NewDocument(row)
		if err != nil {
			return fmt.Errorf("document %s: %w", canon.NullableToString(row.Serial), err)
		}

		owners := r.resolver.DocumentOwners(doc.Serial, row.Authorities)
		if len(owners) == 0 {
			continue
		}
		sourceID := r.resolver.SourceID(doc.Serial, doc.Source)

		for _, owner := range owners {
			edge := &documentEdge{doc: doc, owner: owner, sourceID: sourceID}

			switch doc.LinkKind {
			case builder.LinkExternal:
				edge.link = doc.Link
			case builder.LinkStored:
				u, ok := r.storedLink(edge)
				if ok && r.opts.Upload && keys.Add(u.key) {
					uploads = append(uploads, u)
				}
			}

			r.documents = append(r.documents, edge)
		}
	}

	return r.upload(ctx, uploads)
}

// storedLink sets the object storage link of a stored document. The local
// file must exist even when uploads are disabled.
func (r *run) storedLink(edge *documentEdge) (upload, bool) {
	doc := edge.doc
	log := logrus.WithFields(logrus.Fields{"kind": "document", "serial": doc.Serial})

	if doc.Serial == "" {
		log.Warnf("No serial for document: %s", canon.NullableToString(doc.Name))
		return upload{}, false
	}
	if r.objects == nil {
		log.Debugf("No object store; document %s gets no link.", doc.Serial)
		return upload{}, false
	}

	path, err := storage.DocumentFile(r.opts.DocumentsDir, doc.Serial)
	if errors.Is(err, storage.ErrNoDocumentFile) || errors.Is(err, storage.ErrManyDocumentFiles) {
		log.Warnf("Document %s has invalid number of files: %v", doc.Serial, err)
		return upload{}, false
	}
	if err != nil {
		log.Warnf("Document %s file lookup failed: %v", doc.Serial, err)
		return upload{}, false
	}

	sourceID := edge.sourceID
	if sourceID == nil && doc.Source != nil {
		id := codes.SourceID(*doc.Source, "")
		sourceID = &id
	}
	name := edge.owner.Name
	key := storage.DocumentKey(sourceID, doc.Year, canon.StringToNullable(&name), doc.Name)

	link := r.objects.URLFor(key)
	edge.link = &link

	return upload{path: path, key: key, serial: doc.Serial}, true
}

// upload stores document files with bounded parallelism, skipping keys that
// already exist. Two documents racing on one key only cost bandwidth.
func (r *run) upload(ctx context.Context, uploads []upload) error {
	if len(uploads) == 0 {
		return nil
	}
	logrus.Infof("Uploading %d documents with %d workers.", len(uploads), r.opts.UploadWorkers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.UploadWorkers)

	for _, u := range uploads {
		u := u
		g.Go(func() error {
			exists, err := r.objects.Exists(ctx, u.key)
			if err != nil {
				return fmt.Errorf("document %s: %w", u.serial, err)
			}
			if exists {
				logrus.Debugf("Not uploading file since one already exists for document %s", u.serial)
				return nil
			}
			if err := r.objects.Upload(ctx, u.path, u.key); err != nil {
				return fmt.Errorf("document %s: %w", u.serial, err)
			}
			logrus.Debugf("Uploaded document %s to %s", u.serial, u.key)
			return nil
		})
	}

	return g.Wait()
}

// populateDocuments writes documents, their hosting locations and links. A
// document or link rejected by the store is rolled back alone.
func (r *run) populateDocuments(ctx context.Context, tx store.Store) (int, error) {
	logrus.Info("Populating authority and inquest documents.")

	count := 0
	sources := mapset.NewThreadUnsafeSet[string]()

	for _, edge := range r.documents {
		doc := edge.doc

		if source := doc.DocumentSource(); source != nil && sources.Add(source.ID) {
			if err := tx.Create(ctx, source); err != nil {
				return 0, fmt.Errorf("document source %s: %w", source.ID, err)
			}
			count++
		}

		var (
			document any
			link     func() any
		)
		if edge.owner.Kind == resolve.KindInquest {
			m := doc.InquestDocument(edge.owner.ID)
			document = m
			link = func() any { return doc.InquestDocumentLink(m.ID, *edge.link) }
		} else {
			m := doc.AuthorityDocument(edge.owner.ID, edge.owner.PrimaryDocument, edge.sourceID)
			document = m
			link = func() any { return doc.AuthorityDocumentLink(m.ID, *edge.link) }
		}

		ok, err := tryCreate(ctx, tx, document, "document", doc.Serial)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		count++

		if edge.link == nil || doc.DocumentSourceID == "" {
			continue
		}
		ok, err = tryCreate(ctx, tx, link(), "document", doc.Serial)
		if err != nil {
			return 0, err
		}
		if ok {
			count++
		}
	}

	return count, nil
}
