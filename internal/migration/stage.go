package migration

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/inquests-migration/internal/store"
)

// Stage names, in run order.
const (
	StageSources       = "sources"
	StageKeywords      = "keywords"
	StageRecords       = "authorities-and-inquests"
	StageRelationships = "relationships"
	StageKeywordJoins  = "keyword-joins"
	StageDocuments     = "documents"
	StageValidate      = "validate"
)

// stage is one step of a run. prepare runs outside any transaction; run
// executes in the stage's own transaction and returns the number of records
// written.
type stage struct {
	name      string
	dependsOn []string
	prepare   func(ctx context.Context) error
	run       func(ctx context.Context, tx store.Store) (int, error)
}

// checkOrder verifies every stage comes after all of its dependencies.
func checkOrder(stages []stage) error {
	done := mapset.NewThreadUnsafeSet[string]()
	for _, s := range stages {
		for _, dep := range s.dependsOn {
			if !done.Contains(dep) {
				return fmt.Errorf("%w: %s requires %s", ErrStageDependency, s.name, dep)
			}
		}
		done.Add(s.name)
	}
	return nil
}
