package builder

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/inquests-migration/internal/canon"
	"github.com/emrgen/inquests-migration/internal/model"
)

// Tag is a free-text tag; Key is its case-folded form.
type Tag struct {
	Key  string
	Name string
}

// Tags splits a comma or newline separated tag list. Tags are capitalised and
// deduplicated case-insensitively, keeping the first spelling.
func Tags(list *string) []Tag {
	if list == nil {
		return nil
	}

	var out []Tag
	seen := mapset.NewThreadUnsafeSet[string]()
	for _, field := range strings.FieldsFunc(*list, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	}) {
		name := canon.FormatAsKeyword(field)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen.Add(key) {
			out = append(out, Tag{Key: key, Name: name})
		}
	}
	return out
}

func AuthorityTags(authorityID uint, tags []Tag) []*model.AuthorityTag {
	out := make([]*model.AuthorityTag, 0, len(tags))
	for _, t := range tags {
		out = append(out, &model.AuthorityTag{AuthorityID: authorityID, TagKey: t.Key, Tag: t.Name})
	}
	return out
}

func InquestTags(inquestID uint, tags []Tag) []*model.InquestTag {
	out := make([]*model.InquestTag, 0, len(tags))
	for _, t := range tags {
		out = append(out, &model.InquestTag{InquestID: inquestID, TagKey: t.Key, Tag: t.Name})
	}
	return out
}
