package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonAgenda/internal/availability"
	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonAgenda/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonAgenda/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonAgenda/pkg/logger"
	"github.com/m04kA/SMC-SalonAgenda/pkg/metrics"
)

// fakeStore хранит мастеров, услуги и бронирования в памяти
type fakeStore struct {
	mu            sync.Mutex
	professionals map[int64]*domain.Professional
	services      map[int64]*domain.Service
	bookings      []domain.Booking
	createErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		professionals: map[int64]*domain.Professional{1: {ID: 1, Name: "Beatriz"}},
		services: map[int64]*domain.Service{
			10: {ID: 10, Name: "Corte", DurationMinutes: 60},
			11: {ID: 11, Name: "Escova", DurationMinutes: 30},
		},
	}
}

func (s *fakeStore) GetProfessionalByID(_ context.Context, id int64) (*domain.Professional, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.professionals[id]; ok {
		return p, nil
	}
	return nil, catalogRepo.ErrProfessionalNotFound
}

func (s *fakeStore) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if svc, ok := s.services[id]; ok {
		return svc, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (s *fakeStore) LockProfessional(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.professionals[id]; !ok {
		return bookingRepo.ErrProfessionalNotFound
	}
	return nil
}

func (s *fakeStore) ListOverlapping(_ context.Context, professionalID int64, from, to time.Time) ([]domain.Interval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	window := domain.Interval{Start: from, End: to}
	out := make([]domain.Interval, 0)
	for _, b := range s.bookings {
		if b.ProfessionalID == professionalID && b.Interval().Overlaps(window) {
			out = append(out, b.Interval())
		}
	}
	return out, nil
}

func (s *fakeStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	b.ID = int64(len(s.bookings) + 1)
	b.CreatedAt = time.Now()
	s.bookings = append(s.bookings, *b)
	return b, nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

// serialTx выполняет транзакции строго по одной внутри процесса.
// Тесты с ним проверяют только логику проверки пересечений в транзакции.
// В PostgreSQL отсутствие пересечений обеспечивают LockProfessional,
// повтор SERIALIZABLE по 40001 и ограничение bookings_no_overlap
// (см. usecase_integration_test.go).
type serialTx struct {
	mu  sync.Mutex
	err error
}

func (tx *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.err != nil {
		return tx.err
	}
	return fn(ctx)
}

type fakeCache struct {
	mu          sync.Mutex
	invalidated []string
	err         error
}

func (c *fakeCache) Invalidate(_ context.Context, professionalID int64, day time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, day.Format(domain.DateFormat))
	return c.err
}

type fakeNotifier struct {
	mu    sync.Mutex
	roles []string
}

func (n *fakeNotifier) Notify(_ context.Context, _ int64, role string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.roles = append(n.roles, role)
	return errors.New("whatsapp down")
}

type fakeMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *fakeMetrics) IncBookingOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

type fixture struct {
	uc       *UseCase
	store    *fakeStore
	tx       *serialTx
	cache    *fakeCache
	notifier *fakeNotifier
	metrics  *fakeMetrics
	loc      *time.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	calc, err := availability.NewCalculator(domain.DefaultWorkingHoursTable(), 15, loc)
	require.NoError(t, err)

	f := &fixture{
		store:    newFakeStore(),
		tx:       &serialTx{},
		cache:    &fakeCache{},
		notifier: &fakeNotifier{},
		metrics:  &fakeMetrics{},
		loc:      loc,
	}
	f.uc = NewUseCase(f.store, f.store, f.tx, calc, f.cache, f.notifier, f.metrics, logger.NewNop())
	return f
}

func (f *fixture) at(h, m int) time.Time {
	return time.Date(2025, 11, 3, h, m, 0, 0, f.loc)
}

func request(start time.Time, serviceID int64) *Request {
	return &Request{
		ProfessionalID: 1,
		ServiceID:      serviceID,
		Start:          start,
		ClientName:     "  Ana Souza ",
		ClientPhone:    "+55 11 99999-0000",
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), request(f.at(10, 0).UTC(), 10))

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Corte", resp.ServiceName)
	assert.Equal(t, "Ana Souza", resp.ClientName)
	assert.True(t, resp.Start.Equal(f.at(10, 0)))
	assert.True(t, resp.End.Equal(f.at(11, 0)))
	assert.Equal(t, f.loc, resp.Start.Location())

	assert.Equal(t, []string{"2025-11-03"}, f.cache.invalidated)
	assert.Equal(t, []string{domain.RecipientClient, domain.RecipientProfessional}, f.notifier.roles)
	assert.Equal(t, []string{metrics.BookingOutcomeOK}, f.metrics.outcomes)
}

func TestExecute_ConflictOnOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request(f.at(10, 0), 10))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request(f.at(10, 30), 11))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// 11:00 начинается ровно там, где закончилось первое бронирование
	_, err = f.uc.Execute(ctx, request(f.at(11, 0), 11))
	assert.NoError(t, err)

	// 09:30-10:00 заканчивается там, где начинается первое
	_, err = f.uc.Execute(ctx, request(f.at(9, 30), 11))
	assert.NoError(t, err)

	assert.Equal(t, 3, f.store.count())
	assert.Equal(t, []string{
		metrics.BookingOutcomeOK,
		metrics.BookingOutcomeConflict,
		metrics.BookingOutcomeOK,
		metrics.BookingOutcomeOK,
	}, f.metrics.outcomes)
}

func TestExecute_ConcurrentOverlappingRequests(t *testing.T) {
	f := newFixture(t)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	start := make(chan struct{})

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			// пересекающиеся интервалы: 10:00, 10:15, 10:30 ...
			_, err := f.uc.Execute(context.Background(), request(f.at(10, 0).Add(time.Duration(i%4)*15*time.Minute), 10))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, f.store.count())
}

func TestExecute_NoOverlapAfterSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for minute := 0; minute < 8*60; minute += 20 {
		serviceID := int64(10)
		if minute%40 == 0 {
			serviceID = 11
		}
		_, _ = f.uc.Execute(ctx, request(f.at(9, 0).Add(time.Duration(minute)*time.Minute), serviceID))
	}

	bookings := f.store.bookings
	require.NotEmpty(t, bookings)
	for i := range bookings {
		for j := i + 1; j < len(bookings); j++ {
			assert.False(t, bookings[i].Interval().Overlaps(bookings[j].Interval()),
				"booking %d overlaps %d", bookings[i].ID, bookings[j].ID)
		}
	}
}

func TestExecute_UnknownServiceInsertsNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), request(f.at(10, 0), 999))

	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Zero(t, f.store.count())
	assert.Empty(t, f.notifier.roles)
	assert.Equal(t, []string{metrics.BookingOutcomeNotFound}, f.metrics.outcomes)
}

func TestExecute_UnknownProfessional(t *testing.T) {
	f := newFixture(t)
	req := request(f.at(10, 0), 10)
	req.ProfessionalID = 77

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrProfessionalNotFound)
	assert.Zero(t, f.store.count())
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "no professional", mutate: func(r *Request) { r.ProfessionalID = 0 }},
		{name: "no service", mutate: func(r *Request) { r.ServiceID = -1 }},
		{name: "no start", mutate: func(r *Request) { r.Start = time.Time{} }},
		{name: "blank name", mutate: func(r *Request) { r.ClientName = "   " }},
		{name: "blank phone", mutate: func(r *Request) { r.ClientPhone = "" }},
		{name: "long phone", mutate: func(r *Request) { r.ClientPhone = "+55 11 99999-0000 99999-0000 99999" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(f.at(10, 0), 10)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Zero(t, f.store.count())
}

func TestExecute_ExclusionViolationIsConflict(t *testing.T) {
	f := newFixture(t)
	f.store.createErr = bookingRepo.ErrOverlap

	_, err := f.uc.Execute(context.Background(), request(f.at(10, 0), 10))

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_ReferenceRemovedDuringInsert(t *testing.T) {
	tests := []struct {
		name      string
		createErr error
		want      error
	}{
		{
			name:      "professional removed",
			createErr: fmt.Errorf("%w: %w", bookingRepo.ErrReferenceNotFound, bookingRepo.ErrProfessionalNotFound),
			want:      ErrProfessionalNotFound,
		},
		{
			name:      "service removed",
			createErr: fmt.Errorf("%w: %w", bookingRepo.ErrReferenceNotFound, bookingRepo.ErrServiceNotFound),
			want:      ErrServiceNotFound,
		},
		{
			name:      "unknown constraint",
			createErr: fmt.Errorf("%w: bookings_other_fkey", bookingRepo.ErrReferenceNotFound),
			want:      ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.store.createErr = tt.createErr

			_, err := f.uc.Execute(context.Background(), request(f.at(10, 0), 10))

			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, f.store.count())
			assert.Empty(t, f.cache.invalidated)
		})
	}
}

func TestExecute_StorageFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	f.tx.err = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), request(f.at(10, 0), 10))

	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, f.store.count())
	assert.Empty(t, f.cache.invalidated)
	assert.Equal(t, []string{metrics.BookingOutcomeError}, f.metrics.outcomes)
}

func TestExecute_CacheFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture(t)
	f.cache.err = errors.New("redis down")

	resp, err := f.uc.Execute(context.Background(), request(f.at(18, 0), 10))

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}
