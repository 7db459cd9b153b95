package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/finder"
	"github.com/together-as-one/internal/pkg/errors"
	"github.com/together-as-one/internal/usecase/dto"
)

// SessionGauge receives the number of live sessions (metrics).
type SessionGauge interface {
	SetActiveSessions(n int)
}

// SessionOptions tune the orchestrators created for sessions.
type SessionOptions struct {
	InitialLoadDelay time.Duration
	ApplyDelay       time.Duration
	SearchDebounce   time.Duration
	// TTL - сессия без обращений дольше TTL удаляется
	TTL      time.Duration
	TimeZone *time.Location
	Observer finder.RunObserver
	Gauge    SessionGauge
}

type session struct {
	id       uuid.UUID
	orch     *finder.Orchestrator
	location *finder.LocationService

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SessionUseCase keeps one reactive finder per client session
type SessionUseCase struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session

	loader *SourceLoader
	opts   SessionOptions
	clock  func() time.Time
	logger *zap.Logger
}

// NewSessionUseCase создает новый экземпляр SessionUseCase
func NewSessionUseCase(loader *SourceLoader, opts SessionOptions, logger *zap.Logger) *SessionUseCase {
	if opts.TimeZone == nil {
		opts.TimeZone = time.Local
	}
	return &SessionUseCase{
		sessions: make(map[uuid.UUID]*session),
		loader:   loader,
		opts:     opts,
		clock:    time.Now,
		logger:   logger,
	}
}

// WithClock replaces the time source used for idle tracking and "available now".
func (uc *SessionUseCase) WithClock(clock func() time.Time) *SessionUseCase {
	uc.clock = clock
	return uc
}

// Create starts a session and mounts its orchestrator.
func (uc *SessionUseCase) Create(ctx context.Context, req dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	location := finder.NewLocationService()
	if req.Location != nil {
		if !location.SetUserLocation(*toCoordinates(req.Location)) {
			return nil, errors.ErrInvalidCoordinates
		}
	}

	id := uuid.New()
	orch := finder.NewOrchestrator(uc.loader.Load, location, finder.Options{
		InitialLoadDelay: uc.opts.InitialLoadDelay,
		ApplyDelay:       uc.opts.ApplyDelay,
		SearchDebounce:   uc.opts.SearchDebounce,
		ViewportWidth:    req.ViewportWidth,
		TimeZone:         uc.opts.TimeZone,
		Clock:            uc.clock,
		Logger:           uc.logger.With(zap.String("session_id", id.String())),
		Observer:         uc.opts.Observer,
	})

	s := &session{id: id, orch: orch, location: location, lastSeen: uc.clock()}

	uc.mu.Lock()
	uc.sessions[id] = s
	count := len(uc.sessions)
	uc.mu.Unlock()
	uc.reportCount(count)

	orch.Mount()

	uc.logger.Info("Finder session created", zap.String("session_id", id.String()))
	return uc.snapshot(s), nil
}

// Get returns the session snapshot, moving to page first when page > 0.
// Pages outside the result range leave the current page unchanged.
func (uc *SessionUseCase) Get(ctx context.Context, id string, page int) (*dto.SessionResponse, error) {
	s, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}
	if page > 0 {
		s.orch.GotoPage(page)
	}
	return uc.snapshot(s), nil
}

func (uc *SessionUseCase) UpdateFilters(ctx context.Context, id string, req dto.UpdateFiltersRequest) (*dto.SessionResponse, error) {
	s, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}

	var slot *domain.TimeSlot
	if req.TimeSlot != nil {
		parsed, ok := domain.ParseTimeSlot(*req.TimeSlot)
		if !ok {
			return nil, errors.ErrInvalidFilter.WithDetails(map[string]interface{}{"time_slot": *req.TimeSlot})
		}
		slot = parsed
	}
	if req.ToggleDay != nil && (*req.ToggleDay < 0 || *req.ToggleDay > 6) {
		return nil, errors.ErrInvalidFilter.WithDetails(map[string]interface{}{"toggle_day": *req.ToggleDay})
	}

	if req.MaxDistance != nil {
		s.orch.SetMaxDistance(*req.MaxDistance)
	}
	if req.AvailableNow != nil {
		s.orch.SetAvailableNow(*req.AvailableNow)
	}
	if req.Area != nil {
		s.orch.SetArea(req.Area)
	}
	if req.SubArea != nil {
		s.orch.SetSubArea(req.SubArea)
	}
	if req.ToggleDay != nil {
		s.orch.ToggleDay(*req.ToggleDay)
	}
	if req.TimeSlot != nil {
		s.orch.SetTimeSlot(slot)
	}

	return uc.snapshot(s), nil
}

func (uc *SessionUseCase) SetSearch(ctx context.Context, id string, req dto.SearchRequest) (*dto.SessionResponse, error) {
	s, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}
	s.orch.SetSearch(req.Query)
	return uc.snapshot(s), nil
}

// SetLocation records the detected location, or the reason detection failed.
func (uc *SessionUseCase) SetLocation(ctx context.Context, id string, req dto.LocationRequest) (*dto.SessionResponse, error) {
	s, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}

	if req.Location != nil {
		if !s.location.SetUserLocation(*toCoordinates(req.Location)) {
			return nil, errors.ErrInvalidCoordinates
		}
	} else {
		failure := domain.GeolocationFailure(req.Error)
		if !failure.Known() {
			return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"error": req.Error})
		}
		s.location.ReportGeolocationFailure(failure)
	}

	return uc.snapshot(s), nil
}

func (uc *SessionUseCase) SetCustomLocation(ctx context.Context, id string, req dto.CoordinatesDTO) (*dto.SessionResponse, error) {
	s, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}
	if !s.location.SetCustomLocation(*toCoordinates(&req)) {
		return nil, errors.ErrInvalidCoordinates
	}
	return uc.snapshot(s), nil
}

func (uc *SessionUseCase) ClearCustomLocation(ctx context.Context, id string) (*dto.SessionResponse, error) {
	s, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}
	s.location.ClearCustomLocation()
	return uc.snapshot(s), nil
}

func (uc *SessionUseCase) SetViewport(ctx context.Context, id string, req dto.ViewportRequest) (*dto.SessionResponse, error) {
	s, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}
	s.orch.SetViewportWidth(req.Width)
	return uc.snapshot(s), nil
}

// Reset restores default filters, clears search and the custom location.
func (uc *SessionUseCase) Reset(ctx context.Context, id string) (*dto.SessionResponse, error) {
	s, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}
	s.orch.ResetFilters()
	return uc.snapshot(s), nil
}

func (uc *SessionUseCase) Retry(ctx context.Context, id string) (*dto.SessionResponse, error) {
	s, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}
	s.orch.Retry()
	return uc.snapshot(s), nil
}

// Delete tears the session down, cancelling pending timers.
func (uc *SessionUseCase) Delete(ctx context.Context, id string) error {
	sid, err := uuid.Parse(id)
	if err != nil {
		return errors.ErrSessionNotFound
	}

	uc.mu.Lock()
	s, ok := uc.sessions[sid]
	delete(uc.sessions, sid)
	count := len(uc.sessions)
	uc.mu.Unlock()

	if !ok {
		return errors.ErrSessionNotFound
	}
	s.orch.Close()
	uc.reportCount(count)

	uc.logger.Info("Finder session closed", zap.String("session_id", id))
	return nil
}

// EvictIdle closes sessions not accessed within the TTL and returns how many were removed.
func (uc *SessionUseCase) EvictIdle(now time.Time) int {
	if uc.opts.TTL <= 0 {
		return 0
	}
	cutoff := now.Add(-uc.opts.TTL)

	var expired []*session
	uc.mu.Lock()
	for id, s := range uc.sessions {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, s)
			delete(uc.sessions, id)
		}
	}
	count := len(uc.sessions)
	uc.mu.Unlock()

	for _, s := range expired {
		s.orch.Close()
	}
	if len(expired) > 0 {
		uc.reportCount(count)
		uc.logger.Info("Idle finder sessions evicted", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Count returns the number of live sessions.
func (uc *SessionUseCase) Count() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return len(uc.sessions)
}

// Shutdown closes every session.
func (uc *SessionUseCase) Shutdown() {
	uc.mu.Lock()
	all := uc.sessions
	uc.sessions = make(map[uuid.UUID]*session)
	uc.mu.Unlock()

	for _, s := range all {
		s.orch.Close()
	}
	uc.reportCount(0)
}

func (uc *SessionUseCase) lookup(id string) (*session, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.ErrSessionNotFound
	}

	uc.mu.RLock()
	s, ok := uc.sessions[sid]
	uc.mu.RUnlock()
	if !ok {
		return nil, errors.ErrSessionNotFound
	}

	s.touch(uc.clock())
	return s, nil
}

func (uc *SessionUseCase) snapshot(s *session) *dto.SessionResponse {
	snap := s.orch.Snapshot()

	resp := &dto.SessionResponse{
		ID:            s.id.String(),
		State:         string(snap.State),
		Error:         snap.Error,
		Filters:       toFiltersDTO(snap.Filter),
		Search:        snap.Search,
		PendingSearch: snap.PendingSearch,
		Origin:        toOriginDTO(snap.Origin),
		Items:         toItems(snap.Page.Items),
		Empty:         snap.Empty,
		Page:          snap.Page.Number,
		TotalPages:    snap.Page.TotalPages,
		Total:         snap.Page.Total,
		ItemsPerPage:  snap.Page.ItemsPerPage,
	}
	if s.location.UserLocation() == nil {
		resp.Guidance = s.location.GeolocationFailure().Guidance()
	}
	if !snap.UpdatedAt.IsZero() {
		t := snap.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}

func (uc *SessionUseCase) reportCount(n int) {
	if uc.opts.Gauge != nil {
		uc.opts.Gauge.SetActiveSessions(n)
	}
}
