package registration_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/pkg/errors"
	"github.com/together-as-one/internal/worker/registration"
)

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

// MockProcessor is a mock of Processor
type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) Process(ctx context.Context, event *domain.RegistrationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func eventMessage(t *testing.T, id, name string) (domain.StreamMessage, uuid.UUID) {
	t.Helper()
	eventID := uuid.New()
	data, err := json.Marshal(domain.RegistrationEvent{
		EventID: eventID,
		Name:    name,
		Type:    domain.WaterPointBorehole,
		Area:    "Sebokeng",
		Availability: []domain.AvailabilityWindow{
			{Day: 2, StartHour: 6, EndHour: 8},
		},
	})
	require.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(data)}, eventID
}

func newWorker(stream *MockStreamRepository, proc *MockProcessor, retries int) *registration.Worker {
	return registration.NewWorker(stream, proc, "test-group", 10, retries, zap.NewNop()).
		WithRetryBackoff(0)
}

func TestWorker_Name(t *testing.T) {
	w := newWorker(&MockStreamRepository{}, &MockProcessor{}, 3)
	assert.Equal(t, "waterpoint-registration", w.Name())
	assert.Equal(t, "test-group", w.ConsumerGroup())
}

func TestWorker_Stop(t *testing.T) {
	w := newWorker(&MockStreamRepository{}, &MockProcessor{}, 3)

	assert.False(t, w.IsStopped())
	assert.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())
	// повторный Stop безопасен
	assert.NoError(t, w.Stop())
}

func TestWorker_ProcessBatch_Empty(t *testing.T) {
	stream := &MockStreamRepository{}
	stream.On("ConsumeBatch", mock.Anything, domain.StreamWaterPointRegister, "test-group", mock.AnythingOfType("string"), int64(10)).
		Return([]domain.StreamMessage{}, nil)

	n, err := newWorker(stream, &MockProcessor{}, 3).ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	stream.AssertNotCalled(t, "AckMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorker_ProcessBatch_StoresAndAcks(t *testing.T) {
	stream := &MockStreamRepository{}
	proc := &MockProcessor{}

	first, firstID := eventMessage(t, "1-0", "Mokoena Yard Borehole")
	second, secondID := eventMessage(t, "2-0", "Zone 3 Tank")
	broken := domain.StreamMessage{ID: "3-0", Data: "{not json"}
	missing := domain.StreamMessage{ID: "4-0"}

	stream.On("ConsumeBatch", mock.Anything, domain.StreamWaterPointRegister, "test-group", mock.AnythingOfType("string"), int64(10)).
		Return([]domain.StreamMessage{first, second, broken, missing}, nil)
	stream.On("AckMessages", mock.Anything, domain.StreamWaterPointRegister, "test-group", []string{"1-0", "2-0", "3-0", "4-0"}).
		Return(nil)

	proc.On("Process", mock.Anything, mock.MatchedBy(func(e *domain.RegistrationEvent) bool { return e.EventID == firstID })).
		Return(nil).Once()
	proc.On("Process", mock.Anything, mock.MatchedBy(func(e *domain.RegistrationEvent) bool { return e.EventID == secondID })).
		Return(nil).Once()

	n, err := newWorker(stream, proc, 3).ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	stream.AssertExpectations(t)
	proc.AssertExpectations(t)
}

func TestWorker_ProcessBatch_RetriesTransientErrors(t *testing.T) {
	stream := &MockStreamRepository{}
	proc := &MockProcessor{}

	msg, _ := eventMessage(t, "1-0", "Mokoena Yard Borehole")
	stream.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{msg}, nil)
	stream.On("AckMessages", mock.Anything, domain.StreamWaterPointRegister, "test-group", []string{"1-0"}).
		Return(nil)

	proc.On("Process", mock.Anything, mock.Anything).Return(errors.ErrDatabaseError).Twice()
	proc.On("Process", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := newWorker(stream, proc, 3).ProcessBatch(context.Background())
	require.NoError(t, err)
	proc.AssertNumberOfCalls(t, "Process", 3)
}

func TestWorker_ProcessBatch_InvalidEventNotRetried(t *testing.T) {
	stream := &MockStreamRepository{}
	proc := &MockProcessor{}

	msg, _ := eventMessage(t, "1-0", "")
	stream.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{msg}, nil)
	stream.On("AckMessages", mock.Anything, mock.Anything, mock.Anything, []string{"1-0"}).Return(nil)

	proc.On("Process", mock.Anything, mock.Anything).
		Return(errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"name": "required"}))

	_, err := newWorker(stream, proc, 5).ProcessBatch(context.Background())
	require.NoError(t, err)
	proc.AssertNumberOfCalls(t, "Process", 1)
	stream.AssertExpectations(t)
}

func TestWorker_ProcessBatch_ConsumeError(t *testing.T) {
	stream := &MockStreamRepository{}
	stream.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, stderrors.New("connection reset"))

	_, err := newWorker(stream, &MockProcessor{}, 3).ProcessBatch(context.Background())
	assert.Error(t, err)
}

func TestWorker_Start_ConsumerGroupFailure(t *testing.T) {
	stream := &MockStreamRepository{}
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamWaterPointRegister, "test-group").
		Return(stderrors.New("NOAUTH"))

	err := newWorker(stream, &MockProcessor{}, 3).Start(context.Background())
	assert.Error(t, err)
}

func TestWorker_Start_ContextCancellation(t *testing.T) {
	stream := &MockStreamRepository{}
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamWaterPointRegister, "test-group").Return(nil)
	stream.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)

	w := newWorker(stream, &MockProcessor{}, 3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}
