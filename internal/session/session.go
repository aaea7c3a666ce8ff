// Package session owns the budget state of one running app: a memoized,
// immutable snapshot of the four tables, and the write operations that
// validate input, update the record store and reload what changed.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/theirongolddev/budgetboard/internal/model"
	"github.com/theirongolddev/budgetboard/internal/pipeline"
	"github.com/theirongolddev/budgetboard/internal/store"
)

// DefaultTTL is how long a loaded snapshot is reused without a write.
const DefaultTTL = time.Hour

// Snapshot is one consistent view of the stored tables. It is never
// modified after the controller publishes it.
type Snapshot struct {
	Transactions []model.Transaction
	Fixed        []model.FixedExpense
	Goals        []model.SavingGoal
	Plans        []model.PlanItem
	LoadedAt     time.Time
}

func (s *Snapshot) clone() *Snapshot {
	if s == nil {
		return &Snapshot{}
	}
	c := *s
	return &c
}

// ValidationError reports bad user input. No store call is made when one
// is returned.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func invalidErr(field string, err error) error {
	return &ValidationError{Field: field, Reason: err.Error(), Err: err}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Change describes a completed write.
type Change struct {
	Table  string
	Action string
	Detail string
	At     time.Time
}

// Options configures a Controller.
type Options struct {
	TTL    time.Duration
	Payday int
	Now    func() time.Time
	Logger zerolog.Logger
}

// Controller serializes every read and write of the budget state.
type Controller struct {
	store  store.RecordStore
	ttl    time.Duration
	payday int
	now    func() time.Time
	log    zerolog.Logger

	mu       sync.Mutex
	snap     *Snapshot
	loadedAt time.Time
	onChange []func(Change)
}

// New returns a controller over rs. Nothing is loaded until first use.
func New(rs store.RecordStore, opts Options) *Controller {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Payday <= 0 {
		opts.Payday = pipeline.DefaultPayday
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Controller{
		store:  rs,
		ttl:    opts.TTL,
		payday: opts.Payday,
		now:    opts.Now,
		log:    opts.Logger,
	}
}

// Payday returns the configured payday.
func (c *Controller) Payday() int { return c.payday }

// Today returns the controller's current date.
func (c *Controller) Today() time.Time { return c.now() }

// OnChange registers fn to be called after every successful write.
func (c *Controller) OnChange(fn func(Change)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = append(c.onChange, fn)
}

// Snapshot returns the memoized snapshot, loading it when missing or older
// than the TTL. When loading fails the previous snapshot, or an empty one,
// is returned alongside the error.
func (c *Controller) Snapshot(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(ctx)
}

func (c *Controller) snapshotLocked(ctx context.Context) (*Snapshot, error) {
	if c.snap != nil && c.now().Sub(c.loadedAt) < c.ttl {
		return c.snap, nil
	}
	if err := c.reloadLocked(ctx, store.Tables...); err != nil {
		if c.snap != nil {
			return c.snap, err
		}
		return &Snapshot{}, err
	}
	return c.snap, nil
}

// Invalidate drops the memoized snapshot.
func (c *Controller) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = nil
}

// Reload forces a full reload.
func (c *Controller) Reload(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.reloadLocked(ctx, store.Tables...); err != nil {
		return c.snap, err
	}
	return c.snap, nil
}

// reloadLocked reads the given tables and publishes a new snapshot that
// shares the untouched tables with the previous one. On error nothing is
// published.
func (c *Controller) reloadLocked(ctx context.Context, tables ...store.Table) error {
	next := c.snap.clone()
	if c.snap == nil {
		tables = store.Tables
	}
	for _, t := range tables {
		rows, err := c.store.ReadAll(ctx, t)
		if err != nil {
			c.log.Error().Err(err).Str("table", t.Name).Msg("load failed")
			return fmt.Errorf("loading %s: %w", t.Name, err)
		}
		switch t.Name {
		case store.Transactions.Name:
			next.Transactions = store.DecodeTransactions(rows)
		case store.FixedExpenses.Name:
			next.Fixed = store.DecodeFixedExpenses(rows)
		case store.SavingGoals.Name:
			next.Goals = store.DecodeSavingGoals(rows)
		case store.MonthlyPlans.Name:
			next.Plans = store.DecodePlanItems(rows)
		}
		c.log.Debug().Str("table", t.Name).Int("rows", len(rows)).Msg("loaded")
	}
	next.LoadedAt = c.now()
	c.snap = next
	c.loadedAt = next.LoadedAt
	return nil
}

// write runs fn against the current snapshot. fn returns the tables it
// wrote and whether a write may have landed before a later one failed; on
// success those tables are reloaded, on partial failure the cache is
// dropped so the next read sees the store.
func (c *Controller) write(ctx context.Context, action string, fn func(s *Snapshot) (written []store.Table, partial bool, err error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.snapshotLocked(ctx)
	if err != nil {
		return err
	}
	written, partial, err := fn(s)
	if err != nil {
		if partial {
			c.snap = nil
		}
		if !IsValidation(err) {
			c.log.Error().Err(err).Str("action", action).Msg("write failed")
		}
		return err
	}
	if len(written) == 0 {
		return nil
	}
	if err := c.reloadLocked(ctx, written...); err != nil {
		c.snap = nil
		return err
	}

	at := c.now()
	for _, t := range written {
		ch := Change{Table: t.Name, Action: action, At: at}
		for _, fn := range c.onChange {
			fn(ch)
		}
	}
	c.log.Info().Str("action", action).Int("tables", len(written)).Msg("write applied")
	return nil
}
