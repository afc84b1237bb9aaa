package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonAgenda/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonAgenda/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonAgenda/pkg/dateparse"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	loc         *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// loc зона салона: в ней разбираются даты фильтра и выводится время.
func NewService(bookingRepo BookingRepository, loc *time.Location, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		loc:         loc,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainBooking(booking, s.loc), nil
}

// List получает бронирования для административного списка.
// Даты from и to включительно, по календарю салона.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: professional=%v, service=%v, from=%v, to=%v",
		req.ProfessionalID, req.ServiceID, req.From, req.To)

	filter, err := s.toDomainFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: found %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, s.loc), nil
}

func (s *Service) toDomainFilter(req *models.ListBookingsRequest) (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Limit:          req.Limit,
	}

	if req.Limit < 0 {
		return filter, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}

	if req.From != nil {
		from, err := dateparse.Parse(*req.From, s.loc)
		if err != nil {
			return filter, fmt.Errorf("%w: from: %w", ErrInvalidInput, err)
		}
		filter.From = &from
	}

	if req.To != nil {
		to, err := dateparse.Parse(*req.To, s.loc)
		if err != nil {
			return filter, fmt.Errorf("%w: to: %w", ErrInvalidInput, err)
		}
		// to включительно: берём полночь следующего дня
		next := to.AddDate(0, 0, 1)
		filter.To = &next
	}

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return filter, ErrInvalidTimeRange
	}

	if req.Search != nil {
		if q := strings.TrimSpace(*req.Search); q != "" {
			filter.Search = &q
		}
	}

	return filter, nil
}
