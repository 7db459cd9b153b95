package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/domain/repository"
	"github.com/together-as-one/internal/pkg/errors"
	"github.com/together-as-one/internal/usecase/dto"
)

// RegistrationRecorder receives registration outcomes (metrics).
type RegistrationRecorder interface {
	RecordRegistrationPublished()
	RecordRegistrationProcessed(result string)
}

// RegistrationUseCase queues homeowner registrations and turns queued
// registrations into listed water points
type RegistrationUseCase struct {
	streamRepo repository.StreamRepository
	pointRepo  repository.WaterPointRepository
	loader     *SourceLoader
	recorder   RegistrationRecorder
	clock      func() time.Time
	logger     *zap.Logger
}

// NewRegistrationUseCase создает новый экземпляр RegistrationUseCase.
// pointRepo и loader нужны только воркеру; API передаёт nil.
func NewRegistrationUseCase(
	streamRepo repository.StreamRepository,
	pointRepo repository.WaterPointRepository,
	loader *SourceLoader,
	recorder RegistrationRecorder,
	logger *zap.Logger,
) *RegistrationUseCase {
	return &RegistrationUseCase{
		streamRepo: streamRepo,
		pointRepo:  pointRepo,
		loader:     loader,
		recorder:   recorder,
		clock:      time.Now,
		logger:     logger,
	}
}

// Submit publishes the registration to the registration stream.
func (uc *RegistrationUseCase) Submit(ctx context.Context, req dto.RegistrationRequest) (*dto.RegistrationResponse, error) {
	location := toCoordinates(req.Location)
	if location != nil && !location.Valid() {
		return nil, errors.ErrInvalidCoordinates
	}

	event := &domain.RegistrationEvent{
		EventID:      uuid.New(),
		OwnerName:    strings.TrimSpace(req.OwnerName),
		Phone:        strings.TrimSpace(req.Phone),
		Email:        strings.TrimSpace(req.Email),
		Name:         strings.TrimSpace(req.Name),
		Type:         domain.WaterPointType(req.Type),
		Area:         strings.TrimSpace(req.Area),
		SubArea:      strings.TrimSpace(req.SubArea),
		Address:      strings.TrimSpace(req.Address),
		Description:  strings.TrimSpace(req.Description),
		Location:     location,
		Availability: toWindows(req.Availability),
		SubmittedAt:  uc.clock().UTC(),
	}

	streamID, err := uc.streamRepo.PublishToStream(ctx, domain.StreamWaterPointRegister, event)
	if err != nil {
		uc.logger.Error("Failed to publish registration",
			zap.String("event_id", event.EventID.String()),
			zap.Error(err))
		return nil, errors.ErrRegistrationRejected
	}

	if uc.recorder != nil {
		uc.recorder.RecordRegistrationPublished()
	}
	uc.logger.Info("Registration queued",
		zap.String("event_id", event.EventID.String()),
		zap.String("stream_id", streamID),
		zap.String("area", event.Area))

	return &dto.RegistrationResponse{
		EventID:  event.EventID.String(),
		StreamID: streamID,
		Status:   "pending",
	}, nil
}

// Process stores a queued registration as a water point and drops the
// cached listing so new searches include it.
func (uc *RegistrationUseCase) Process(ctx context.Context, event *domain.RegistrationEvent) error {
	if event.EventID == uuid.Nil || event.Name == "" || event.Area == "" {
		uc.record("invalid")
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"event_id": event.EventID.String(),
		})
	}

	point := event.ToWaterPoint()
	if err := uc.pointRepo.Create(ctx, point); err != nil {
		uc.record("error")
		return err
	}

	if uc.loader != nil {
		if err := uc.loader.Invalidate(ctx); err != nil {
			// listing catches up when the cache entry expires
			uc.logger.Warn("Failed to invalidate water point cache", zap.Error(err))
		}
	}

	uc.record("stored")
	uc.logger.Info("Registration stored",
		zap.String("event_id", event.EventID.String()),
		zap.String("area", point.Area))
	return nil
}

func (uc *RegistrationUseCase) record(result string) {
	if uc.recorder != nil {
		uc.recorder.RecordRegistrationProcessed(result)
	}
}
