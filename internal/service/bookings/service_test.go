package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonAgenda/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonAgenda/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonAgenda/pkg/logger"
	"github.com/m04kA/SMC-SalonAgenda/pkg/ptr"
)

type stubRepo struct {
	booking   *domain.Booking
	err       error
	gotFilter domain.BookingsFilter
}

func (r *stubRepo) GetByID(context.Context, int64) (*domain.Booking, error) {
	return r.booking, r.err
}

func (r *stubRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.gotFilter = filter
	if r.err != nil {
		return nil, r.err
	}
	if r.booking == nil {
		return nil, nil
	}
	return []*domain.Booking{r.booking}, nil
}

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func TestGetByID_RendersInSalonZone(t *testing.T) {
	loc := saoPaulo(t)
	start := time.Date(2025, 11, 3, 13, 0, 0, 0, time.UTC)
	repo := &stubRepo{booking: &domain.Booking{
		ID: 5, ServiceName: "Corte", StartTime: start, EndTime: start.Add(time.Hour),
		ClientName: "Ana", ClientPhone: "123",
	}}
	svc := NewService(repo, loc, logger.NewNop())

	got, err := svc.GetByID(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, "2025-11-03T10:00:00-03:00", got.StartISO)
	assert.Equal(t, "2025-11-03T11:00:00-03:00", got.EndISO)
	assert.Equal(t, "Corte", got.ServiceName)
}

func TestGetByID_Errors(t *testing.T) {
	loc := saoPaulo(t)

	_, err := NewService(&stubRepo{err: bookingRepo.ErrBookingNotFound}, loc, logger.NewNop()).GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = NewService(&stubRepo{err: errors.New("boom")}, loc, logger.NewNop()).GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = NewService(&stubRepo{}, loc, logger.NewNop()).GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_BuildsFilter(t *testing.T) {
	loc := saoPaulo(t)
	repo := &stubRepo{}
	svc := NewService(repo, loc, logger.NewNop())

	got, err := svc.List(context.Background(), &models.ListBookingsRequest{
		ProfessionalID: ptr.Ptr(int64(1)),
		From:           ptr.Ptr("2025-11-03"),
		To:             ptr.Ptr("5 de novembro de 2025"),
		Search:         ptr.Ptr("  ana "),
	})

	require.NoError(t, err)
	assert.NotNil(t, got.Bookings)
	assert.Empty(t, got.Bookings)

	f := repo.gotFilter
	assert.Equal(t, int64(1), *f.ProfessionalID)
	assert.True(t, f.From.Equal(time.Date(2025, 11, 3, 0, 0, 0, 0, loc)))
	assert.True(t, f.To.Equal(time.Date(2025, 11, 6, 0, 0, 0, 0, loc)))
	assert.Equal(t, "ana", *f.Search)
}

func TestList_InvalidFilter(t *testing.T) {
	svc := NewService(&stubRepo{}, saoPaulo(t), logger.NewNop())

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{From: ptr.Ptr("ontem")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{
		From: ptr.Ptr("2025-11-05"),
		To:   ptr.Ptr("2025-11-03"),
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}
