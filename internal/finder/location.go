package finder

import (
	"sync"

	"github.com/together-as-one/internal/domain"
)

// LocationProvider supplies the origins distances are measured from.
type LocationProvider interface {
	// UserLocation returns the device-detected location, nil when unknown.
	UserLocation() *domain.Coordinates
	// CustomLocation returns the map-picked location, nil when not set.
	CustomLocation() *domain.Coordinates
	// OnChange registers fn to run after either location changes and
	// returns a function removing the registration.
	OnChange(fn func()) (unsubscribe func())
}

// LocationService - in-memory LocationProvider owned by one finder session
type LocationService struct {
	mu        sync.Mutex
	user      *domain.Coordinates
	custom    *domain.Coordinates
	failure   domain.GeolocationFailure
	listeners map[int]func()
	nextID    int
}

var _ LocationProvider = (*LocationService)(nil)

func NewLocationService() *LocationService {
	return &LocationService{listeners: make(map[int]func())}
}

func (s *LocationService) UserLocation() *domain.Coordinates {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCoordinates(s.user)
}

func (s *LocationService) CustomLocation() *domain.Coordinates {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCoordinates(s.custom)
}

// GeolocationFailure returns the last reported detection failure, empty if none.
func (s *LocationService) GeolocationFailure() domain.GeolocationFailure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

// SetUserLocation stores a detected location. Unusable coordinates are rejected.
func (s *LocationService) SetUserLocation(c domain.Coordinates) bool {
	if !c.Valid() {
		return false
	}
	s.mu.Lock()
	s.user = &c
	s.failure = ""
	s.mu.Unlock()

	s.notify()
	return true
}

// ReportGeolocationFailure records why detection failed. The location stays unset.
func (s *LocationService) ReportGeolocationFailure(reason domain.GeolocationFailure) {
	s.mu.Lock()
	s.failure = reason
	s.mu.Unlock()
}

// SetCustomLocation stores a map-picked location. Unusable coordinates are rejected.
func (s *LocationService) SetCustomLocation(c domain.Coordinates) bool {
	if !c.Valid() {
		return false
	}
	s.mu.Lock()
	s.custom = &c
	s.mu.Unlock()

	s.notify()
	return true
}

func (s *LocationService) ClearCustomLocation() {
	s.mu.Lock()
	had := s.custom != nil
	s.custom = nil
	s.mu.Unlock()

	if had {
		s.notify()
	}
}

func (s *LocationService) OnChange(fn func()) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// notify runs listeners without holding the lock so they may read locations back.
func (s *LocationService) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func copyCoordinates(c *domain.Coordinates) *domain.Coordinates {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
