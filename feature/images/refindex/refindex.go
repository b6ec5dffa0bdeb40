package refindex

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Checker answers whether a collection references an asset through any of its
// image-bearing fields. Each entity type brings its own checker, so adding a
// fifth collection means registering one more checker, not editing the index.
type Checker interface {
	// Entity returns the entity type name (e.g. "restaurant").
	Entity() string

	// Folder returns the logical asset folder this entity's images live in.
	Folder() string

	// ExistsByImageField reports whether any record references publicID.
	ExistsByImageField(ctx context.Context, publicID string) (bool, error)

	// ReferencedSet returns the subset of publicIDs referenced by this
	// collection. Implementations should resolve the whole batch with a
	// constant number of queries.
	ReferencedSet(ctx context.Context, publicIDs []string) (map[string]struct{}, error)
}

// Index is the read-only reference query layer over all registered checkers.
//
// By default it is fail-safe: a checker error marks every asset in the batch
// as referenced for that collection (deleting on a partial view loses data,
// skipping does not). Strict mode surfaces the error instead; the cleanup
// path always runs strict.
type Index struct {
	checkers []Checker
	logger   *zap.Logger
	strict   bool
}

// New creates an index over the given checkers.
func New(logger *zap.Logger, strict bool, checkers ...Checker) *Index {
	return &Index{checkers: checkers, logger: logger, strict: strict}
}

// Strict returns a view of the index that surfaces checker errors instead of
// assuming referenced.
func (ix *Index) Strict() *Index {
	return &Index{checkers: ix.checkers, logger: ix.logger, strict: true}
}

// Checkers returns the registered checkers.
func (ix *Index) Checkers() []Checker { return ix.checkers }

// IsReferenced reports whether any collection references publicID.
func (ix *Index) IsReferenced(ctx context.Context, publicID string) (bool, error) {
	refs, err := ix.IsReferencedBatch(ctx, []string{publicID})
	if err != nil {
		return false, err
	}
	return refs[publicID], nil
}

// IsReferencedBatch resolves a batch of public ids against every collection
// in parallel (one goroutine per checker, constant fan-out width) and
// OR-reduces the answers.
func (ix *Index) IsReferencedBatch(ctx context.Context, publicIDs []string) (map[string]bool, error) {
	refs := make(map[string]bool, len(publicIDs))
	for _, id := range publicIDs {
		refs[id] = false
	}
	if len(publicIDs) == 0 {
		return refs, nil
	}

	// An index without checkers cannot prove anything unreferenced.
	if len(ix.checkers) == 0 {
		if ix.strict {
			return nil, fmt.Errorf("no reference checkers registered")
		}
		ix.logger.Warn("No reference checkers registered, treating all assets as referenced")
		for _, id := range publicIDs {
			refs[id] = true
		}
		return refs, nil
	}

	sets := make([]map[string]struct{}, len(ix.checkers))
	errs := make([]error, len(ix.checkers))

	var wg sync.WaitGroup
	wg.Add(len(ix.checkers))
	for i, checker := range ix.checkers {
		go func(i int, checker Checker) {
			defer wg.Done()
			sets[i], errs[i] = checker.ReferencedSet(ctx, publicIDs)
		}(i, checker)
	}
	wg.Wait()

	for i, checker := range ix.checkers {
		if errs[i] != nil {
			if ix.strict {
				return nil, fmt.Errorf("%s reference check: %w", checker.Entity(), errs[i])
			}
			// Fail-safe: an unreachable collection counts as referencing everything.
			ix.logger.Warn("Reference check failed, assuming referenced",
				zap.String("entity", checker.Entity()),
				zap.Error(errs[i]),
			)
			for _, id := range publicIDs {
				refs[id] = true
			}
			continue
		}
		for id := range sets[i] {
			refs[id] = true
		}
	}

	return refs, nil
}

// Counter is implemented by checkers that can report how many image
// references their collection currently holds. Used by the stats report.
type Counter interface {
	CountReferences(ctx context.Context) (int64, error)
}

// ReferenceCounts returns the number of image references per logical folder.
// Checkers that do not implement Counter are skipped; an erroring checker is
// reported as zero under fail-safe (counts are informational, not a basis
// for deletion) and surfaces the error under strict mode.
func (ix *Index) ReferenceCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(ix.checkers))

	for _, checker := range ix.checkers {
		counter, ok := checker.(Counter)
		if !ok {
			continue
		}
		n, err := counter.CountReferences(ctx)
		if err != nil {
			if ix.strict {
				return nil, fmt.Errorf("%s reference count: %w", checker.Entity(), err)
			}
			ix.logger.Warn("Reference count failed",
				zap.String("entity", checker.Entity()),
				zap.Error(err),
			)
			continue
		}
		counts[checker.Folder()] += n
	}

	return counts, nil
}

// References returns the entity type names that currently reference publicID,
// sorted for stable output. Under fail-safe, an erroring collection is
// included (it may reference the asset, we cannot prove otherwise).
func (ix *Index) References(ctx context.Context, publicID string) ([]string, error) {
	if len(ix.checkers) == 0 {
		return []string{}, nil
	}

	found := make([]bool, len(ix.checkers))
	errs := make([]error, len(ix.checkers))

	var wg sync.WaitGroup
	wg.Add(len(ix.checkers))
	for i, checker := range ix.checkers {
		go func(i int, checker Checker) {
			defer wg.Done()
			found[i], errs[i] = checker.ExistsByImageField(ctx, publicID)
		}(i, checker)
	}
	wg.Wait()

	entities := []string{}
	for i, checker := range ix.checkers {
		if errs[i] != nil {
			if ix.strict {
				return nil, fmt.Errorf("%s reference check: %w", checker.Entity(), errs[i])
			}
			ix.logger.Warn("Reference lookup failed, assuming referenced",
				zap.String("entity", checker.Entity()),
				zap.String("public_id", publicID),
				zap.Error(errs[i]),
			)
			entities = append(entities, checker.Entity())
			continue
		}
		if found[i] {
			entities = append(entities, checker.Entity())
		}
	}

	sort.Strings(entities)
	return entities, nil
}
