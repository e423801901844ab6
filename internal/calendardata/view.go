package calendardata

import (
	"context"
	"errors"
	"sync"
	"time"

	"trainercal/internal/calendar"
	"trainercal/internal/events"
	"trainercal/internal/logger"
	"trainercal/internal/metrics"
)

var (
	ErrSuperseded    = errors.New("calendar load superseded by a newer one")
	ErrInvalidFilter = errors.New("invalid calendar filter")
)

type State string

const (
	StateLoading State = "loading"
	StateError   State = "error"
	StateReady   State = "ready"
)

// View holds the calendar currently displayed for one trainer. Every load
// takes a sequence number and only the most recent load may change the
// view; results of older loads are dropped.
type View struct {
	ctx         context.Context
	loader      *Loader
	trainerID   int
	unsubscribe func()
	inflight    sync.WaitGroup

	mu       sync.Mutex
	closed   bool
	seq      uint64
	year     int
	month    time.Month
	filter   string
	state    State
	snapshot *Snapshot
	err      error
}

// NewView creates a view on the given month. When bus is non-nil the view
// refetches whenever the trainer's calendar changes; ctx bounds those
// refetches. Nothing is loaded until Navigate, Retry or a change event.
func NewView(ctx context.Context, loader *Loader, bus *events.Bus, trainerID, year int, month time.Month) *View {
	v := &View{
		ctx:       ctx,
		loader:    loader,
		trainerID: trainerID,
		year:      year,
		month:     month,
		filter:    calendar.FilterAll,
		state:     StateLoading,
	}

	if bus != nil {
		v.unsubscribe = events.Subscribe(bus, v.onChange)
	}

	return v
}

// onChange refetches when the view's trainer changed. Bus handlers may
// still run after unsubscribing, so a closed view ignores them.
func (v *View) onChange(e events.CalendarChanged) {
	if e.TrainerID != v.trainerID {
		return
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.inflight.Add(1)
	v.mu.Unlock()

	logger.Debug("Calendar changed, refetching", "trainer_id", e.TrainerID, "reason", e.Reason)
	go func() {
		defer v.inflight.Done()
		_ = v.load(v.ctx)
	}()
}

// Navigate switches the view to another month and loads it.
func (v *View) Navigate(ctx context.Context, year int, month time.Month) error {
	v.mu.Lock()
	v.year, v.month = year, month
	v.snapshot = nil
	v.mu.Unlock()

	return v.load(ctx)
}

// Retry refetches every resource of the current month.
func (v *View) Retry(ctx context.Context) error {
	return v.load(ctx)
}

// Filter narrows Days to one status, or every day for "all".
func (v *View) Filter(filter string) error {
	if !calendar.ValidFilter(filter) {
		return ErrInvalidFilter
	}
	if filter == "" {
		filter = calendar.FilterAll
	}

	v.mu.Lock()
	v.filter = filter
	v.mu.Unlock()
	return nil
}

func (v *View) load(ctx context.Context) error {
	v.mu.Lock()
	v.seq++
	seq := v.seq
	year, month := v.year, v.month
	v.state = StateLoading
	v.err = nil
	v.mu.Unlock()

	snapshot, err := v.loader.Load(ctx, v.trainerID, year, month)

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq != v.seq {
		metrics.RecordStaleLoadDropped()
		logger.Debug("Dropped stale calendar load", "trainer_id", v.trainerID, "seq", seq, "latest", v.seq)
		return ErrSuperseded
	}

	if err != nil {
		v.state = StateError
		v.err = err
		v.snapshot = nil
		return err
	}

	v.state = StateReady
	v.snapshot = snapshot
	return nil
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *View) Month() (int, time.Month) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.year, v.month
}

func (v *View) CurrentFilter() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// Snapshot returns the loaded month with the active filter applied, or
// nil while nothing is ready.
func (v *View) Snapshot() *Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.snapshot == nil {
		return nil
	}
	filtered := v.snapshot.Filtered(v.filter)
	return &filtered
}

// Close stops listening for change events and waits for refetches they
// started. A change delivered concurrently with Close starts no refetch.
func (v *View) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()

	if v.unsubscribe != nil {
		v.unsubscribe()
	}
	v.inflight.Wait()
}
