package builder

import (
	"time"

	"github.com/emrgen/inquests-migration/internal/canon"
	"github.com/emrgen/inquests-migration/internal/model"
	"github.com/emrgen/inquests-migration/internal/sheet"
	"github.com/sirupsen/logrus"
)

// Hosting locations with special link handling.
const (
	LinkTypeInquestsCa = "Inquests.ca"
	LinkTypeNoPublish  = "No Publish"
)

// LinkKind says where a document's link comes from.
type LinkKind int

const (
	// LinkNone documents get no link record.
	LinkNone LinkKind = iota
	// LinkStored documents are uploaded to object storage from the documents directory.
	LinkStored
	// LinkExternal documents keep the link given in the sheet.
	LinkExternal
)

// Document is a normalized documents sheet row.
type Document struct {
	Serial   string
	Name     *string
	Citation *string
	Created  *time.Time
	Year     *string
	Source   *string // source code as entered

	// DocumentSourceID is empty for documents that are not published.
	DocumentSourceID string
	LinkType         string
	LinkKind         LinkKind
	Link             *string
}

// NewDocument normalizes a documents sheet row. An unparseable date fails the
// build; link anomalies are warned about and resolved to LinkNone.
func NewDocument(row sheet.DocumentRow) (*Document, error) {
	serial := canon.NullableToString(row.Serial)

	created, err := canon.ParseDate(row.Date)
	if err != nil {
		return nil, err
	}
	year, err := canon.GetYearFromDate(row.Date)
	if err != nil {
		return nil, err
	}

	d := &Document{
		Serial:   serial,
		Name:     canon.FormatString(row.ShortName),
		Citation: canon.FormatString(row.Citation),
		Created:  created,
		Year:     year,
		Source:   canon.StringToNullable(row.Source),
		LinkType: canon.NullableToString(row.LinkType),
	}
	d.resolveLink(canon.StringToNullable(row.Link))

	return d, nil
}

func (d *Document) resolveLink(link *string) {
	log := logrus.WithFields(logrus.Fields{"kind": "document", "serial": d.Serial})

	switch d.LinkType {
	case "":
		log.Warnf("Document %s has no link type.", d.Serial)
	case LinkTypeNoPublish:
		if link != nil {
			log.Warnf("Document %s has flag No Publish and non-null link: %s", d.Serial, *link)
		} else {
			log.Debugf("Not uploading document with No Publish flag: %s", d.Serial)
		}
	case LinkTypeInquestsCa:
		if link != nil {
			log.Warnf("Document %s has source Inquests.ca and non-null link: %s", d.Serial, *link)
		}
		d.DocumentSourceID = canon.FormatAsID(d.LinkType)
		d.LinkKind = LinkStored
	default:
		d.DocumentSourceID = canon.FormatAsID(d.LinkType)
		if link == nil {
			log.Warnf("Document %s has null link.", d.Serial)
			return
		}
		d.LinkKind = LinkExternal
		d.Link = link
	}
}

// DocumentSource returns the hosting location record of d, or nil for
// documents that are not published.
func (d *Document) DocumentSource() *model.DocumentSource {
	if d.DocumentSourceID == "" {
		return nil
	}
	return &model.DocumentSource{ID: d.DocumentSourceID, Name: d.LinkType}
}

// AuthorityDocument builds d as a document of an authority. The document is
// primary when its citation is the authority's primary document.
func (d *Document) AuthorityDocument(authorityID uint, primaryDocument, sourceID *string) *model.AuthorityDocument {
	primary := d.Citation != nil && primaryDocument != nil && *d.Citation == *canon.FormatString(primaryDocument)
	return &model.AuthorityDocument{
		AuthorityID: authorityID,
		SourceID:    sourceID,
		IsPrimary:   primary,
		Name:        d.Name,
		Citation:    d.Citation,
		Created:     d.Created,
	}
}

func (d *Document) InquestDocument(inquestID uint) *model.InquestDocument {
	return &model.InquestDocument{
		InquestID: inquestID,
		Name:      InquestName(d.Name),
		Created:   d.Created,
	}
}

func (d *Document) AuthorityDocumentLink(documentID uint, link string) *model.AuthorityDocumentLink {
	return &model.AuthorityDocumentLink{
		AuthorityDocumentID: documentID,
		DocumentSourceID:    d.DocumentSourceID,
		Link:                link,
	}
}

func (d *Document) InquestDocumentLink(documentID uint, link string) *model.InquestDocumentLink {
	return &model.InquestDocumentLink{
		InquestDocumentID: documentID,
		DocumentSourceID:  d.DocumentSourceID,
		Link:              link,
	}
}
