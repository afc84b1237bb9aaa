package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
	"github.com/m04kA/SMC-SalonAgenda/internal/infra/cache/occupancy"
	catalogRepo "github.com/m04kA/SMC-SalonAgenda/internal/infra/storage/catalog"
)

// UseCase use case для получения слотов дня
type UseCase struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	calculator  SlotCalculator
	cache       OccupancyCache
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	calculator SlotCalculator,
	cache OccupancyCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		calculator:  calculator,
		cache:       cache,
		logger:      logger,
	}
}

// Execute выполняет use case получения слотов.
// Чтение без блокировок: устаревшие данные допустимы, окончательную проверку
// выполняет создание бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: professional=%d, service=%d, day=%q",
		req.ProfessionalID, req.ServiceID, req.Day)

	// 1. Валидация входных данных
	day, err := validateRequest(req, uc.calculator.Location())
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Мастер и услуга
	if _, err := uc.catalogRepo.GetProfessionalByID(ctx, req.ProfessionalID); err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %w", ErrInternal, err)
	}

	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	if !service.HasValidDuration() {
		uc.logger.Error("GetAvailableSlots: service id=%d has invalid duration %d", service.ID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration must be positive", ErrInvalidInput)
	}

	// 3. Занятые интервалы дня
	occupied, err := uc.occupied(ctx, req.ProfessionalID, day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to load bookings: %w", ErrInternal, err)
	}

	// 4. Расчёт слотов
	computed, err := uc.calculator.ComputeSlots(day, service.DurationMinutes, occupied)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %w", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(computed))
	for _, s := range computed {
		slots = append(slots, Slot{Start: s.Start, End: s.End, Available: s.Available})
	}

	uc.logger.Info("GetAvailableSlots: %d slots for %s, %d occupied intervals",
		len(slots), day.Format(domain.DateFormat), len(occupied))

	return &Response{
		Date:            day,
		ServiceID:       service.ID,
		ProfessionalID:  req.ProfessionalID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}

// occupied читает занятость дня через кэш, при промахе или ошибке кэша идёт в БД.
// Поколение дня читается до запроса в БД: если бронирование закоммитят
// между чтением и заполнением, Set вернёт ErrStaleFill и кэш останется пустым.
func (uc *UseCase) occupied(ctx context.Context, professionalID int64, day time.Time) ([]domain.Interval, error) {
	cached, err := uc.cache.Get(ctx, professionalID, day)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, occupancy.ErrCacheMiss) {
		uc.logger.Warn("GetAvailableSlots: occupancy cache unavailable: %v", err)
	}

	generation, genErr := uc.cache.Generation(ctx, professionalID, day)
	if genErr != nil {
		uc.logger.Warn("GetAvailableSlots: failed to read cache generation: %v", genErr)
	}

	from, to := uc.calculator.DayBounds(day)
	intervals, err := uc.bookingRepo.ListOverlapping(ctx, professionalID, from, to)
	if err != nil {
		return nil, err
	}

	if genErr != nil {
		return intervals, nil
	}

	err = uc.cache.Set(ctx, professionalID, day, generation, intervals)
	switch {
	case err == nil:
	case errors.Is(err, occupancy.ErrStaleFill):
		uc.logger.Info("GetAvailableSlots: day invalidated during read, cache fill skipped: professional_id=%d, day=%s",
			professionalID, day.Format(domain.DateFormat))
	default:
		uc.logger.Warn("GetAvailableSlots: failed to fill occupancy cache: %v", err)
	}

	return intervals, nil
}
