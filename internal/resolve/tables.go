package resolve

import (
	"errors"
	"fmt"

	"github.com/emrgen/inquests-migration/internal/codes"
)

var (
	// ErrDuplicateSerial is returned when a serial is registered twice in one run.
	ErrDuplicateSerial = errors.New("duplicate serial")
	// ErrDuplicateKey is returned when a keyword or source code is registered twice.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Kind is the type of a loaded authority-sheet entity.
type Kind = codes.KeywordType

const (
	KindAuthority = codes.KeywordTypeAuthority
	KindInquest   = codes.KeywordTypeInquest
)

// Record is what later stages need to know about one loaded authority or
// inquest, keyed by its human-entered serial.
type Record struct {
	Serial          string
	ID              uint
	Kind            Kind
	Name            string
	Keywords        *string
	PrimaryDocument *string
	Cited           *string
	Related         *string
}

// Tables are the serial->ID mappings of one run. Every key is written once;
// once the producing stage completes the tables are only read.
type Tables struct {
	records  map[string]*Record
	order    []string
	byID     map[Kind]map[uint]string
	keywords map[Kind]map[string]string
	sources  map[string]string
}

func NewTables() *Tables {
	return &Tables{
		records: make(map[string]*Record),
		byID: map[Kind]map[uint]string{
			KindAuthority: {},
			KindInquest:   {},
		},
		keywords: map[Kind]map[string]string{
			KindAuthority: {},
			KindInquest:   {},
		},
		sources: make(map[string]string),
	}
}

// AddRecord registers a loaded authority or inquest.
func (t *Tables) AddRecord(r *Record) error {
	if _, ok := t.records[r.Serial]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSerial, r.Serial)
	}
	t.records[r.Serial] = r
	t.order = append(t.order, r.Serial)
	t.byID[r.Kind][r.ID] = r.Serial
	return nil
}

// Record looks up a loaded entity by serial.
func (t *Tables) Record(serial string) (*Record, bool) {
	r, ok := t.records[serial]
	return r, ok
}

// Records returns loaded entities in load order.
func (t *Tables) Records() []*Record {
	out := make([]*Record, 0, len(t.order))
	for _, serial := range t.order {
		out = append(out, t.records[serial])
	}
	return out
}

// Serial is the reverse lookup of a store-assigned ID.
func (t *Tables) Serial(kind Kind, id uint) (string, bool) {
	serial, ok := t.byID[kind][id]
	return serial, ok
}

// AddKeyword maps a keyword's source text to its identifier.
func (t *Tables) AddKeyword(kind Kind, text, id string) error {
	if _, ok := t.keywords[kind][text]; ok {
		return fmt.Errorf("%w: keyword %s", ErrDuplicateKey, text)
	}
	t.keywords[kind][text] = id
	return nil
}

func (t *Tables) KeywordID(kind Kind, text string) (string, bool) {
	id, ok := t.keywords[kind][text]
	return id, ok
}

// AddSource maps a source code to its canonical ID.
func (t *Tables) AddSource(code, id string) error {
	if _, ok := t.sources[code]; ok {
		return fmt.Errorf("%w: source %s", ErrDuplicateKey, code)
	}
	t.sources[code] = id
	return nil
}

func (t *Tables) SourceID(code string) (string, bool) {
	id, ok := t.sources[code]
	return id, ok
}

// Snapshot is a serialisable copy of the serial tables.
type Snapshot struct {
	Authorities map[string]uint   `json:"authorities"`
	Inquests    map[string]uint   `json:"inquests"`
	Sources     map[string]string `json:"sources"`
}

func (t *Tables) Snapshot() Snapshot {
	s := Snapshot{
		Authorities: make(map[string]uint),
		Inquests:    make(map[string]uint),
		Sources:     make(map[string]string, len(t.sources)),
	}
	for _, r := range t.records {
		if r.Kind == KindInquest {
			s.Inquests[r.Serial] = r.ID
		} else {
			s.Authorities[r.Serial] = r.ID
		}
	}
	for code, id := range t.sources {
		s.Sources[code] = id
	}
	return s
}

// TablesFromSnapshot restores the reverse lookups of an earlier run.
func TablesFromSnapshot(s Snapshot) *Tables {
	t := NewTables()
	for serial, id := range s.Authorities {
		_ = t.AddRecord(&Record{Serial: serial, ID: id, Kind: KindAuthority})
	}
	for serial, id := range s.Inquests {
		_ = t.AddRecord(&Record{Serial: serial, ID: id, Kind: KindInquest})
	}
	for code, id := range s.Sources {
		_ = t.AddSource(code, id)
	}
	return t
}
