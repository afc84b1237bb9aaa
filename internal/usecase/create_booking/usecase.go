package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonAgenda/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonAgenda/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonAgenda/pkg/metrics"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	txManager   TransactionManager
	calendar    Calendar
	cache       OccupancyCache
	notifier    Notifier
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	calendar Calendar,
	cache OccupancyCache,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		txManager:   txManager,
		calendar:    calendar,
		cache:       cache,
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции
// под блокировкой строки мастера. Если проверка не увидела параллельную бронь,
// фиксацию второй из пересекающихся броней отклоняет повтор по 40001 или
// ограничение bookings_no_overlap, оба исхода возвращаются как ErrSlotConflict.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.IncBookingOutcome(outcome(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	start := uc.calendar.Normalize(req.Start)
	uc.logger.Info("CreateBooking: professional=%d, service=%d, start=%s",
		req.ProfessionalID, req.ServiceID, start.Format(time.RFC3339))

	// 2. Проверяем мастера и услугу до начала транзакции
	if _, err := uc.catalogRepo.GetProfessionalByID(ctx, req.ProfessionalID); err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("CreateBooking: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreateBooking: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %w", ErrInternal, err)
	}

	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	if !service.HasValidDuration() {
		uc.logger.Error("CreateBooking: service id=%d has invalid duration %d", service.ID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration must be positive", ErrInvalidInput)
	}

	// 3. end = start + длительность услуги
	interval := domain.NewInterval(start, service.DurationMinutes)

	var result *domain.Booking

	// 4. Блокировка, повторная проверка и вставка в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.LockProfessional(txCtx, req.ProfessionalID); err != nil {
			if errors.Is(err, bookingRepo.ErrProfessionalNotFound) {
				return ErrProfessionalNotFound
			}
			return fmt.Errorf("%w: failed to lock professional: %w", ErrInternal, err)
		}

		overlapping, err := uc.bookingRepo.ListOverlapping(txCtx, req.ProfessionalID, interval.Start, interval.End)
		if err != nil {
			return fmt.Errorf("%w: failed to list bookings: %w", ErrInternal, err)
		}

		for _, other := range overlapping {
			if interval.Overlaps(other) {
				uc.logger.Warn("CreateBooking: interval %s-%s overlaps %s-%s for professional=%d",
					interval.Start.Format(domain.TimeFormat), interval.End.Format(domain.TimeFormat),
					uc.calendar.Normalize(other.Start).Format(domain.TimeFormat),
					uc.calendar.Normalize(other.End).Format(domain.TimeFormat),
					req.ProfessionalID)
				return ErrSlotConflict
			}
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ProfessionalID: req.ProfessionalID,
			ServiceID:      service.ID,
			ClientName:     req.ClientName,
			ClientPhone:    req.ClientPhone,
			StartTime:      interval.Start,
			EndTime:        interval.End,
		})
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrOverlap):
				return ErrSlotConflict
			case errors.Is(err, bookingRepo.ErrProfessionalNotFound):
				return fmt.Errorf("%w: %w", ErrProfessionalNotFound, err)
			case errors.Is(err, bookingRepo.ErrServiceNotFound):
				return fmt.Errorf("%w: %w", ErrServiceNotFound, err)
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if isClassified(err) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 5. После фиксации: сброс кэша и уведомления. Ошибки здесь бронирование не отменяют.
	for _, day := range daysTouched(uc.calendar, interval) {
		if err := uc.cache.Invalidate(ctx, req.ProfessionalID, day); err != nil {
			uc.logger.Warn("CreateBooking: failed to invalidate occupancy cache for %s: %v", day.Format(domain.DateFormat), err)
		}
	}
	for _, role := range []string{domain.RecipientClient, domain.RecipientProfessional} {
		if err := uc.notifier.Notify(ctx, result.ID, role); err != nil {
			uc.logger.Warn("CreateBooking: failed to notify %s about booking id=%d: %v", role, result.ID, err)
		}
	}

	return &Response{
		ID:             result.ID,
		ProfessionalID: result.ProfessionalID,
		ServiceID:      result.ServiceID,
		ServiceName:    service.Name,
		Start:          uc.calendar.Normalize(result.StartTime),
		End:            uc.calendar.Normalize(result.EndTime),
		ClientName:     result.ClientName,
		ClientPhone:    result.ClientPhone,
		CreatedAt:      result.CreatedAt,
	}, nil
}

func isClassified(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrProfessionalNotFound) ||
		errors.Is(err, ErrServiceNotFound) ||
		errors.Is(err, ErrSlotConflict) ||
		errors.Is(err, ErrInternal)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.BookingOutcomeOK
	case errors.Is(err, ErrSlotConflict):
		return metrics.BookingOutcomeConflict
	case errors.Is(err, ErrInvalidInput):
		return metrics.BookingOutcomeInvalid
	case errors.Is(err, ErrProfessionalNotFound), errors.Is(err, ErrServiceNotFound):
		return metrics.BookingOutcomeNotFound
	default:
		return metrics.BookingOutcomeError
	}
}
