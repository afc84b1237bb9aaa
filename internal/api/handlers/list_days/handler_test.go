package list_days

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonAgenda/internal/api/handlers"
	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
	listDays "github.com/m04kA/SMC-SalonAgenda/internal/usecase/list_days"
	"github.com/m04kA/SMC-SalonAgenda/pkg/logger"
)

type stubUseCase struct {
	got  *listDays.Request
	resp *listDays.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *listDays.Request) (*listDays.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc *stubUseCase, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	monday := time.Date(2025, 11, 3, 0, 0, 0, 0, loc)
	uc := &stubUseCase{resp: &listDays.Response{
		Professional: &domain.Professional{ID: 2, Name: "Beatriz"},
		Services:     []*domain.Service{{ID: 10, Name: "Corte", DurationMinutes: 60}},
		Days: []listDays.Day{
			{Date: monday, BookingCount: 3, Open: true},
			{Date: monday.AddDate(0, 0, 6), Open: false},
		},
	}}

	rec := serve(uc, "/api/v1/days?professional_id=2")

	require.Equal(t, http.StatusOK, rec.Code)
	var body DaysResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Professional.ID)
	require.Len(t, body.Services, 1)
	require.Len(t, body.Days, 2)
	assert.Equal(t, DayResponse{Date: "2025-11-03", Weekday: "Monday", BookingCount: 3, Open: true}, body.Days[0])
	assert.Equal(t, "Sunday", body.Days[1].Weekday)
	assert.False(t, body.Days[1].Open)

	require.NotNil(t, uc.got.ProfessionalID)
	assert.Equal(t, int64(2), *uc.got.ProfessionalID)
}

func TestHandle_DefaultProfessional(t *testing.T) {
	uc := &stubUseCase{resp: &listDays.Response{Professional: &domain.Professional{ID: 1}}}

	rec := serve(uc, "/api/v1/days")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.got.ProfessionalID)
}

func TestHandle_InvalidProfessionalID(t *testing.T) {
	uc := &stubUseCase{}

	rec := serve(uc, "/api/v1/days?professional_id=abc")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "no professional", err: listDays.ErrProfessionalNotFound, status: http.StatusNotFound, code: handlers.CodeNotFound},
		{name: "invalid", err: listDays.ErrInvalidInput, status: http.StatusBadRequest, code: handlers.CodeInvalidInput},
		{name: "internal", err: errors.Join(listDays.ErrInternal, errors.New("timeout")), status: http.StatusInternalServerError, code: handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, "/api/v1/days")

			require.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}
