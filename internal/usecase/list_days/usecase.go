package list_days

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonAgenda/internal/infra/storage/catalog"
)

// UseCase use case календаря на ближайшие дни
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	calendar     Calendar
	days         int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// days <= 0 означает domain.DefaultCalendarDays.
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	calendar Calendar,
	days int,
	logger Logger,
) *UseCase {
	if days <= 0 {
		days = domain.DefaultCalendarDays
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		calendar:     calendar,
		days:         days,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает мастера, список услуг и дни начиная с сегодняшнего
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ProfessionalID != nil && *req.ProfessionalID <= 0 {
		return nil, fmt.Errorf("%w: professional_id must be positive", ErrInvalidInput)
	}

	professional, err := uc.professional(ctx, req.ProfessionalID)
	if err != nil {
		return nil, err
	}

	services, err := uc.catalogRepo.ListServices(ctx)
	if err != nil {
		uc.logger.Error("ListDays: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: failed to list services: %w", ErrInternal, err)
	}

	today := uc.calendar.CivilDay(uc.timeProvider.Now())
	dates := make([]Day, 0, uc.days)
	for i := 0; i < uc.days; i++ {
		date := uc.calendar.CivilDay(today.AddDate(0, 0, i))
		dates = append(dates, Day{Date: date, Open: uc.calendar.IsOpen(date)})
	}
	until := uc.calendar.CivilDay(today.AddDate(0, 0, uc.days))

	counts, err := uc.bookingRepo.CountByDay(ctx, professional.ID, today, until, uc.calendar.Location().String())
	if err != nil {
		uc.logger.Error("ListDays: failed to count bookings for professional=%d: %v", professional.ID, err)
		return nil, fmt.Errorf("%w: failed to count bookings: %w", ErrInternal, err)
	}

	byDate := make(map[string]int, len(counts))
	for _, c := range counts {
		byDate[c.Date.Format(domain.DateFormat)] = c.Count
	}
	for i := range dates {
		dates[i].BookingCount = byDate[dates[i].Date.Format(domain.DateFormat)]
	}

	uc.logger.Info("ListDays: professional=%d, from=%s, days=%d, services=%d",
		professional.ID, today.Format(domain.DateFormat), len(dates), len(services))

	return &Response{
		Professional: professional,
		Services:     services,
		Days:         dates,
	}, nil
}

func (uc *UseCase) professional(ctx context.Context, id *int64) (*domain.Professional, error) {
	var (
		p   *domain.Professional
		err error
	)
	if id != nil {
		p, err = uc.catalogRepo.GetProfessionalByID(ctx, *id)
	} else {
		p, err = uc.catalogRepo.GetFirstProfessional(ctx)
	}

	if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
		uc.logger.Warn("ListDays: professional not found")
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		uc.logger.Error("ListDays: failed to get professional: %v", err)
		return nil, fmt.Errorf("%w: failed to get professional: %w", ErrInternal, err)
	}
	return p, nil
}
