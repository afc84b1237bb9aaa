package list_days

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonAgenda/internal/availability"
	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonAgenda/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonAgenda/pkg/logger"
	"github.com/m04kA/SMC-SalonAgenda/pkg/ptr"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeRepo struct {
	professionals []*domain.Professional
	counts        []domain.DayBookingCount
	countErr      error

	gotFrom, gotTo time.Time
	gotTZ          string
}

func (r *fakeRepo) GetProfessionalByID(_ context.Context, id int64) (*domain.Professional, error) {
	for _, p := range r.professionals {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, catalogRepo.ErrProfessionalNotFound
}

func (r *fakeRepo) GetFirstProfessional(context.Context) (*domain.Professional, error) {
	if len(r.professionals) == 0 {
		return nil, catalogRepo.ErrProfessionalNotFound
	}
	return r.professionals[0], nil
}

func (r *fakeRepo) ListServices(context.Context) ([]*domain.Service, error) {
	return []*domain.Service{{ID: 10, Name: "Corte", DurationMinutes: 60}}, nil
}

func (r *fakeRepo) CountByDay(_ context.Context, _ int64, from, to time.Time, tz string) ([]domain.DayBookingCount, error) {
	r.gotFrom, r.gotTo, r.gotTZ = from, to, tz
	return r.counts, r.countErr
}

func newUseCase(t *testing.T, repo *fakeRepo, now time.Time) *UseCase {
	t.Helper()
	loc := now.Location()
	table := domain.DefaultWorkingHoursTable()
	delete(table, time.Sunday)
	calc, err := availability.NewCalculator(table, 15, loc)
	require.NoError(t, err)

	uc := NewUseCase(repo, repo, calc, 0, logger.NewNop())
	uc.timeProvider = fixedClock{now: now}
	return uc
}

func TestExecute_FourteenDaysFromToday(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	// 2025-11-03 23:30 в Сан-Паулу, в UTC уже 4 ноября
	now := time.Date(2025, 11, 3, 23, 30, 0, 0, loc)
	today := time.Date(2025, 11, 3, 0, 0, 0, 0, loc)

	repo := &fakeRepo{
		professionals: []*domain.Professional{{ID: 1, Name: "Beatriz"}, {ID: 2, Name: "Carla"}},
		counts: []domain.DayBookingCount{
			{Date: today, Count: 3},
			{Date: today.AddDate(0, 0, 2), Count: 1},
		},
	}
	uc := newUseCase(t, repo, now)

	resp, err := uc.Execute(context.Background(), &Request{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Professional.ID)
	assert.Len(t, resp.Services, 1)
	require.Len(t, resp.Days, domain.DefaultCalendarDays)

	assert.True(t, resp.Days[0].Date.Equal(today))
	assert.Equal(t, 3, resp.Days[0].BookingCount)
	assert.Equal(t, 0, resp.Days[1].BookingCount)
	assert.Equal(t, 1, resp.Days[2].BookingCount)
	assert.True(t, resp.Days[13].Date.Equal(today.AddDate(0, 0, 13)))

	// 2025-11-09 воскресенье
	assert.False(t, resp.Days[6].Open)
	assert.True(t, resp.Days[5].Open)

	assert.True(t, repo.gotFrom.Equal(today))
	assert.True(t, repo.gotTo.Equal(today.AddDate(0, 0, 14)))
	assert.Equal(t, "America/Sao_Paulo", repo.gotTZ)
}

func TestExecute_ExplicitProfessional(t *testing.T) {
	repo := &fakeRepo{professionals: []*domain.Professional{{ID: 1}, {ID: 2, Name: "Carla"}}}
	uc := newUseCase(t, repo, time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: ptr.Ptr(int64(2))})

	require.NoError(t, err)
	assert.Equal(t, "Carla", resp.Professional.Name)
}

func TestExecute_Errors(t *testing.T) {
	now := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)

	_, err := newUseCase(t, &fakeRepo{}, now).Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)

	_, err = newUseCase(t, &fakeRepo{}, now).Execute(context.Background(), &Request{ProfessionalID: ptr.Ptr(int64(-1))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo := &fakeRepo{professionals: []*domain.Professional{{ID: 1}}, countErr: errors.New("timeout")}
	_, err = newUseCase(t, repo, now).Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInternal)
}
