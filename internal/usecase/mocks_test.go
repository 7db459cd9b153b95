package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/together-as-one/internal/domain"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetWaterPoints(ctx context.Context) ([]domain.WaterPoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WaterPoint), args.Error(1)
}

func (m *MockCacheRepository) SetWaterPoints(ctx context.Context, points []domain.WaterPoint, ttl time.Duration) error {
	args := m.Called(ctx, points, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) InvalidateWaterPoints(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockWaterPointRepository is a mock of WaterPointRepository
type MockWaterPointRepository struct {
	mock.Mock
}

func (m *MockWaterPointRepository) List(ctx context.Context) ([]domain.WaterPoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WaterPoint), args.Error(1)
}

func (m *MockWaterPointRepository) GetByID(ctx context.Context, id string) (*domain.WaterPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaterPoint), args.Error(1)
}

func (m *MockWaterPointRepository) Create(ctx context.Context, point *domain.WaterPoint) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) (string, error) {
	args := m.Called(ctx, stream, data)
	return args.String(0), args.Error(1)
}

// MockSubscriptionRepository is a mock of SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

// fixtures

var vanderbijlpark = domain.Coordinates{Latitude: -26.7113, Longitude: 27.8378}

func samplePoints() []domain.WaterPoint {
	return []domain.WaterPoint{
		{
			ID: "far", Name: "Arcon Park Tank", Area: "Vereeniging", SubArea: "Arcon Park",
			Location:     &domain.Coordinates{Latitude: -26.6452, Longitude: 27.9317},
			Availability: []domain.AvailabilityWindow{{Day: 1, StartHour: 7, EndHour: 19}},
		},
		{
			ID: "unknown", Name: "Clinic Borehole", Area: "Sebokeng", SubArea: "Zone 12",
			Availability: []domain.AvailabilityWindow{{Day: 2, StartHour: 8, EndHour: 12}},
		},
		{
			ID: "near", Name: "Pascal Street Borehole", Area: "Vanderbijlpark", SubArea: "CW1",
			Location:     &domain.Coordinates{Latitude: -26.7120, Longitude: 27.8390},
			Availability: []domain.AvailabilityWindow{{Day: 1, StartHour: 8, EndHour: 10}},
		},
	}
}

type recorder struct {
	loads     []string
	published int
	processed []string
	sessions  []int
}

func (r *recorder) RecordSourceLoad(origin string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.loads = append(r.loads, origin+":"+result)
}

func (r *recorder) RecordRegistrationPublished() {
	r.published++
}

func (r *recorder) RecordRegistrationProcessed(result string) {
	r.processed = append(r.processed, result)
}

func (r *recorder) SetActiveSessions(n int) {
	r.sessions = append(r.sessions, n)
}
