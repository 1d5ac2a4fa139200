// Package archive implements settle-and-archive: snapshot the live expenses
// into a Settlement, then delete them.
//
// The two phases are not atomic. When the settlement is written but some
// deletes fail, the caller gets the settlement back together with a
// *PartialFailureError naming the expenses that are still live, and can
// retry just those with DeleteAll.
package archive

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// Store is the subset of storage.Store the archiver writes to.
type Store interface {
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	DeleteExpense(ctx context.Context, id string) error
}

// Archiver runs settle-and-archive against a Store.
type Archiver struct {
	store Store
	now   func() time.Time
}

// New creates an Archiver.
func New(store Store) *Archiver {
	return &Archiver{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// DeleteFailure is a single expense that could not be deleted.
type DeleteFailure struct {
	ExpenseID string
	Err       error
}

// PartialFailureError is returned when the settlement was written but one
// or more of the archived expenses are still live.
type PartialFailureError struct {
	SettlementID string
	Failures     []DeleteFailure
}

func (e *PartialFailureError) Error() string {
	ids := e.FailedIDs()
	if e.SettlementID == "" {
		return fmt.Sprintf("failed to delete %d expense(s): %s", len(ids), strings.Join(ids, ", "))
	}
	return fmt.Sprintf("settlement %s archived but %d expense(s) were not deleted: %s",
		e.SettlementID, len(ids), strings.Join(ids, ", "))
}

// FailedIDs returns the IDs of the expenses that were not deleted.
func (e *PartialFailureError) FailedIDs() []string {
	ids := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		ids[i] = f.ExpenseID
	}
	return ids
}

// Unwrap exposes every delete error to errors.Is and errors.As.
func (e *PartialFailureError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// SettleAndArchive archives expenses under note and then deletes them.
// roster is recorded on the settlement so its split can be recomputed later
// exactly as it stood.
//
// The note is trimmed and must not be empty. Only the given expenses are
// touched; anything created after the caller read them stays live.
//
// On a partial failure the returned settlement is non-nil and err is a
// *PartialFailureError.
func (a *Archiver) SettleAndArchive(ctx context.Context, expenses []models.Expense, roster models.Roster, note string) (*models.Settlement, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, models.Invalid("note", "is required")
	}

	snapshot := models.CloneExpenses(expenses)
	settlement := &models.Settlement{
		Date:         a.now(),
		Note:         note,
		TotalAmount:  models.SumAmounts(snapshot),
		Participants: roster.Names(),
		Expenses:     snapshot,
	}
	if err := a.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, fmt.Errorf("failed to archive settlement: %w", err)
	}

	ids := make([]string, len(snapshot))
	for i, e := range snapshot {
		ids[i] = e.ID
	}

	if failures := a.deleteAll(ctx, ids); len(failures) > 0 {
		return settlement, &PartialFailureError{SettlementID: settlement.ID, Failures: failures}
	}
	return settlement, nil
}

// DeleteAll deletes the given expenses concurrently. It is the retry path
// after a partial failure. Every failure is reported, not just the first.
// An expense that is already gone counts as deleted.
func (a *Archiver) DeleteAll(ctx context.Context, ids []string) error {
	if failures := a.deleteAll(ctx, ids); len(failures) > 0 {
		return &PartialFailureError{Failures: failures}
	}
	return nil
}

func (a *Archiver) deleteAll(ctx context.Context, ids []string) []DeleteFailure {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []DeleteFailure
	)

	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			err := a.store.DeleteExpense(ctx, id)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				mu.Lock()
				failures = append(failures, DeleteFailure{ExpenseID: id, Err: err})
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	// Goroutines finish in any order.
	sort.Slice(failures, func(i, j int) bool {
		return failures[i].ExpenseID < failures[j].ExpenseID
	})
	return failures
}
