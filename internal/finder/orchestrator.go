package finder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/pkg/errors"
)

// State of an Orchestrator
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Source returns the current water point records.
type Source func(ctx context.Context) ([]domain.WaterPoint, error)

// RunObserver receives the outcome of every completed pipeline run.
type RunObserver interface {
	ObservePipelineRun(outcome string, duration time.Duration, results int)
}

// Options tune an Orchestrator. Zero delays run the pipeline synchronously.
type Options struct {
	// InitialLoadDelay precedes fetching records (mount, retry).
	InitialLoadDelay time.Duration
	// ApplyDelay precedes re-applying filters to already loaded records.
	ApplyDelay time.Duration
	// SearchDebounce is the quiet period before search text is committed.
	SearchDebounce time.Duration
	// ViewportWidth seeds the page size; 0 means the largest page size.
	ViewportWidth int
	TimeZone      *time.Location
	Clock         func() time.Time
	Logger        *zap.Logger
	Observer      RunObserver
}

// Snapshot - what the rendering surface shows at a point in time
type Snapshot struct {
	State         State
	Error         string
	Filter        domain.FilterState
	Search        string
	PendingSearch string
	Origin        Origin
	Page          Page[AnnotatedPoint]
	// Empty is set when the last run succeeded without matches.
	Empty     bool
	UpdatedAt time.Time
}

type customLocationClearer interface {
	ClearCustomLocation()
}

// Orchestrator re-runs the pipeline whenever filters, search text, location
// or source data change. Results of superseded runs are discarded.
type Orchestrator struct {
	mu       sync.Mutex
	source   Source
	location LocationProvider
	opts     Options
	logger   *zap.Logger

	ctx         context.Context
	cancel      context.CancelFunc
	unsubscribe func()
	debouncer   *Debouncer
	timer       *time.Timer
	gen         uint64

	state         State
	errMsg        string
	filter        domain.FilterState
	search        string
	pendingSearch string
	records       []domain.WaterPoint
	loaded        bool
	reloadPending bool
	result        Result
	page          int
	perPage       int
	mounted       bool
	closed        bool
	updatedAt     time.Time
}

// NewOrchestrator creates an idle orchestrator. Call Mount to start loading.
func NewOrchestrator(source Source, location LocationProvider, opts Options) *Orchestrator {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.TimeZone == nil {
		opts.TimeZone = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	perPage := largePageSize
	if opts.ViewportWidth > 0 {
		perPage = ItemsPerPage(opts.ViewportWidth)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		source:    source,
		location:  location,
		opts:      opts,
		logger:    opts.Logger,
		ctx:       ctx,
		cancel:    cancel,
		debouncer: NewDebouncer(opts.SearchDebounce),
		state:     StateIdle,
		filter:    domain.DefaultFilterState(),
		page:      1,
		perPage:   perPage,
	}
}

// Mount subscribes to location changes and starts the initial load.
func (o *Orchestrator) Mount() {
	o.mu.Lock()
	if o.mounted || o.closed {
		o.mu.Unlock()
		return
	}
	o.mounted = true
	o.unsubscribe = o.location.OnChange(o.onLocationChange)
	run := o.scheduleLocked(o.opts.InitialLoadDelay, true)
	o.mu.Unlock()

	run()
}

// Retry re-fetches the source and re-applies the pipeline.
func (o *Orchestrator) Retry() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	if !o.mounted {
		o.mu.Unlock()
		o.Mount()
		return
	}
	run := o.scheduleLocked(o.opts.InitialLoadDelay, true)
	o.mu.Unlock()

	run()
}

func (o *Orchestrator) SetMaxDistance(km int) {
	o.mutate(func(f *domain.FilterState) { f.SetMaxDistance(km) })
}

func (o *Orchestrator) SetAvailableNow(on bool) {
	o.mutate(func(f *domain.FilterState) { f.AvailableNow = on })
}

// SetArea selects an area and clears the sub-area.
func (o *Orchestrator) SetArea(area *string) {
	o.mutate(func(f *domain.FilterState) { f.SetArea(area) })
}

func (o *Orchestrator) SetSubArea(subArea *string) {
	o.mutate(func(f *domain.FilterState) { f.SetSubArea(subArea) })
}

func (o *Orchestrator) ToggleDay(day int) {
	o.mutate(func(f *domain.FilterState) { f.ToggleDay(day) })
}

func (o *Orchestrator) SetTimeSlot(slot *domain.TimeSlot) {
	o.mutate(func(f *domain.FilterState) { f.TimeSlot = slot })
}

// SetSearch records search text and commits it after the debounce period.
func (o *Orchestrator) SetSearch(text string) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.pendingSearch = text
	o.mu.Unlock()

	o.debouncer.Trigger(func() { o.commitSearch(text) })
}

// ResetFilters restores default filters, clears search text and the custom location.
func (o *Orchestrator) ResetFilters() {
	o.debouncer.Cancel()

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.filter = domain.DefaultFilterState()
	o.search = ""
	o.pendingSearch = ""
	o.page = 1
	if o.state == StateError {
		o.reloadPending = true
	}
	o.mu.Unlock()

	if c, ok := o.location.(customLocationClearer); ok {
		c.ClearCustomLocation()
	}

	o.mu.Lock()
	run := o.refreshLocked()
	o.mu.Unlock()
	run()
}

// SetViewportWidth updates the page size; a new size resets to page 1.
func (o *Orchestrator) SetViewportWidth(width int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if per := ItemsPerPage(width); per != o.perPage {
		o.perPage = per
		o.page = 1
	}
}

// GotoPage moves to page n. Pages outside [1, TotalPages] are ignored.
func (o *Orchestrator) GotoPage(n int) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if n < 1 || n > TotalPages(len(o.result.Points), o.perPage) {
		return false
	}
	o.page = n
	return true
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Snapshot returns the current page of the last successful result together
// with the lifecycle state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	filter := o.filter.Clone()
	filter.CustomLocation = o.location.CustomLocation()

	return Snapshot{
		State:         o.state,
		Error:         o.errMsg,
		Filter:        filter,
		Search:        o.search,
		PendingSearch: o.pendingSearch,
		Origin:        o.result.Origin,
		Page:          Paginate(o.result.Points, o.page, o.perPage),
		Empty:         o.state == StateReady && len(o.result.Points) == 0,
		UpdatedAt:     o.updatedAt,
	}
}

// Close stops pending timers and detaches from the location provider.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	o.cancel()
	unsubscribe := o.unsubscribe
	o.unsubscribe = nil
	o.mu.Unlock()

	o.debouncer.Cancel()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (o *Orchestrator) mutate(fn func(f *domain.FilterState)) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	fn(&o.filter)
	o.page = 1
	run := o.refreshLocked()
	o.mu.Unlock()

	run()
}

func (o *Orchestrator) commitSearch(text string) {
	o.mu.Lock()
	if o.closed || text == o.search {
		o.mu.Unlock()
		return
	}
	o.search = text
	o.page = 1
	run := o.refreshLocked()
	o.mu.Unlock()

	run()
}

func (o *Orchestrator) onLocationChange() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.page = 1
	run := o.refreshLocked()
	o.mu.Unlock()

	run()
}

// refreshLocked re-applies the pipeline; before Mount inputs are only stored.
func (o *Orchestrator) refreshLocked() func() {
	if !o.mounted {
		return func() {}
	}
	return o.scheduleLocked(o.opts.ApplyDelay, false)
}

// scheduleLocked supersedes any pending run and returns a func the caller
// must invoke after releasing the lock.
func (o *Orchestrator) scheduleLocked(delay time.Duration, reload bool) func() {
	o.gen++
	gen := o.gen
	o.state = StateLoading
	o.reloadPending = o.reloadPending || reload

	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}

	if delay <= 0 {
		return func() { o.run(gen) }
	}
	o.timer = time.AfterFunc(delay, func() { o.run(gen) })
	return func() {}
}

func (o *Orchestrator) run(gen uint64) {
	o.mu.Lock()
	if o.closed || gen != o.gen {
		o.mu.Unlock()
		return
	}
	reload := o.reloadPending || !o.loaded
	records := o.records
	q := Query{
		Filter:       o.filter.Clone(),
		Search:       o.search,
		UserLocation: o.location.UserLocation(),
		Now:          o.now(),
	}
	q.Filter.CustomLocation = o.location.CustomLocation()
	ctx := o.ctx
	o.mu.Unlock()

	start := time.Now()
	res, loaded, err := o.execute(ctx, reload, records, q)
	elapsed := time.Since(start)

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || gen != o.gen {
		return
	}
	o.updatedAt = o.now()

	if err != nil {
		o.state = StateError
		o.errMsg = errors.ErrPipelineFailed.Message
		o.logger.Error("Water point pipeline failed",
			zap.Bool("reload", reload),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		o.observe("error", elapsed, len(o.result.Points))
		return
	}

	if reload {
		o.records = loaded
		o.loaded = true
		o.reloadPending = false
	}
	o.result = res
	o.state = StateReady
	o.errMsg = ""

	if pages := TotalPages(len(res.Points), o.perPage); o.page > pages {
		o.page = max(1, pages)
	}

	o.logger.Debug("Water point pipeline applied",
		zap.Int("source", len(loaded)),
		zap.Int("results", len(res.Points)),
		zap.String("origin", res.Origin.Kind.String()),
		zap.Duration("elapsed", elapsed))
	o.observe("ok", elapsed, len(res.Points))
}

// execute converts panics from malformed data into errors so they never
// reach the caller.
func (o *Orchestrator) execute(
	ctx context.Context,
	reload bool,
	records []domain.WaterPoint,
	q Query,
) (res Result, out []domain.WaterPoint, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()

	out = records
	if reload {
		out, err = o.source(ctx)
		if err != nil {
			return Result{}, nil, fmt.Errorf("load water points: %w", err)
		}
	}

	return Run(out, q), out, nil
}

func (o *Orchestrator) now() time.Time {
	return o.opts.Clock().In(o.opts.TimeZone)
}

func (o *Orchestrator) observe(outcome string, d time.Duration, results int) {
	if o.opts.Observer != nil {
		o.opts.Observer.ObservePipelineRun(outcome, d, results)
	}
}
