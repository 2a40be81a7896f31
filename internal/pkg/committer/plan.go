// Package committer applies the mutations a use case collected as one atomic
// Spanner write.
//
// Repositories never write. They return *spanner.Mutation values, the use case
// adds them to a CommitPlan together with the outbox mutations for the domain
// events it raised, and a Committer applies the whole plan at the end:
//
//	plan := committer.NewPlan()
//	plan.AddMultiple(repo.InsertMuts(promo))
//	plan.Add(outboxRepo.InsertMut(enrichedEvent))
//	return committer.Apply(ctx, plan)
//
// Either every mutation in the plan is written or none is.
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

var (
	// ErrOptimisticLockConflict is returned when the row changed after it was read.
	ErrOptimisticLockConflict = errors.New("optimistic lock conflict: row was modified concurrently")

	// ErrRowNotFound is returned when the guarded row no longer exists.
	ErrRowNotFound = errors.New("guarded row not found")
)

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan. Nil mutations are ignored.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// VersionCheck names the row and column guarding an optimistic update.
type VersionCheck struct {
	Table    string
	Key      spanner.Key
	Column   string
	Expected int64
}

// Applier applies commit plans. Use cases depend on this interface so tests
// can capture plans without a database.
type Applier interface {
	Apply(ctx context.Context, plan *CommitPlan) error
	ApplyWithVersionCheck(ctx context.Context, check VersionCheck, plan *CommitPlan) error
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

var _ Applier = (*Committer)(nil)

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}

// ApplyWithVersionCheck reads check.Column of the guarded row inside a
// read-write transaction and buffers the plan only when it still equals
// check.Expected. A mismatch returns ErrOptimisticLockConflict and a missing row
// returns ErrRowNotFound.
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, check VersionCheck, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, check.Table, check.Key, []string{check.Column})
		if err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return fmt.Errorf("%w: %s %v", ErrRowNotFound, check.Table, check.Key)
			}
			return fmt.Errorf("failed to read %s.%s: %w", check.Table, check.Column, err)
		}

		var current int64
		if err := row.Column(0, &current); err != nil {
			return fmt.Errorf("failed to parse %s: %w", check.Column, err)
		}

		if current != check.Expected {
			return fmt.Errorf("%w: expected %s %d, got %d", ErrOptimisticLockConflict, check.Column, check.Expected, current)
		}

		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		if errors.Is(err, ErrOptimisticLockConflict) || errors.Is(err, ErrRowNotFound) {
			return err
		}
		return fmt.Errorf("failed to apply commit plan with version check: %w", err)
	}
	return nil
}
