package registration

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/domain/repository"
	"github.com/together-as-one/internal/pkg/errors"
	"github.com/together-as-one/internal/worker"
)

const (
	defaultBatchSize = 20
	emptyQueueSleep  = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep       = time.Second
)

// Processor stores one registration event.
type Processor interface {
	Process(ctx context.Context, event *domain.RegistrationEvent) error
}

// Worker turns queued registrations into listed water points
type Worker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	processor    Processor
	consumerName string
	batchSize    int64
	maxRetries   int
	retryBackoff time.Duration
}

// NewWorker создает воркер регистраций
func NewWorker(
	streamRepo repository.StreamRepository,
	processor Processor,
	consumerGroup string,
	batchSize int64,
	maxRetries int,
	logger *zap.Logger,
) *Worker {
	hostname, _ := os.Hostname()
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &Worker{
		BaseWorker:   worker.NewBaseWorker("waterpoint-registration", consumerGroup, logger),
		streamRepo:   streamRepo,
		processor:    processor,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		batchSize:    batchSize,
		maxRetries:   maxRetries,
		retryBackoff: 500 * time.Millisecond,
	}
}

// WithRetryBackoff sets the pause between attempts (tests use 0).
func (w *Worker) WithRetryBackoff(d time.Duration) *Worker {
	w.retryBackoff = d
	return w
}

// Start запускает воркер
func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting registration worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int64("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamWaterPointRegister, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.ProcessBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				w.Pause(ctx, errorSleep)
				continue
			}

			if processed == 0 {
				w.Pause(ctx, emptyQueueSleep)
			}
		}
	}
}

// ProcessBatch читает и обрабатывает одну пачку сообщений.
// Возвращает количество прочитанных сообщений
func (w *Worker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamWaterPointRegister,
		w.ConsumerGroup(),
		w.consumerName,
		w.batchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing registration batch", zap.Int("message_count", len(messages)))

	ackIDs := make([]string, 0, len(messages))
	stored := 0
	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			// ACK битое сообщение чтобы не застревало
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			ackIDs = append(ackIDs, msg.ID)
			continue
		}

		if err := w.processWithRetry(ctx, event); err != nil {
			logger.Error("Registration dropped",
				zap.String("message_id", msg.ID),
				zap.String("event_id", event.EventID.String()),
				zap.Error(err))
		} else {
			stored++
		}
		ackIDs = append(ackIDs, msg.ID)
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamWaterPointRegister, w.ConsumerGroup(), ackIDs); err != nil {
		// не критично - повторная запись идемпотентна
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Info("Registration batch processed",
		zap.Int("messages", len(messages)),
		zap.Int("stored", stored))

	return len(messages), nil
}

// processWithRetry retries transient failures; invalid events fail at once.
func (w *Worker) processWithRetry(ctx context.Context, event *domain.RegistrationEvent) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		err = w.processor.Process(ctx, event)
		if err == nil {
			return nil
		}

		var appErr *errors.AppError
		if stderrors.As(err, &appErr) && appErr.Code == errors.ErrInvalidRequest.Code {
			return err
		}

		if attempt < w.maxRetries {
			w.Logger().Warn("Registration attempt failed, retrying",
				zap.String("event_id", event.EventID.String()),
				zap.Int("attempt", attempt),
				zap.Error(err))
			if !w.Pause(ctx, w.retryBackoff) {
				return err
			}
		}
	}
	return err
}

func parseMessage(msg domain.StreamMessage) (*domain.RegistrationEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("message has no data field")
	}

	var event domain.RegistrationEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}
