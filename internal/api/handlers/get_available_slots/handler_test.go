package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-SalonAgenda/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonAgenda/pkg/logger"
)

type stubUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	loc, _ := time.LoadLocation("America/Sao_Paulo")
	day := time.Date(2025, 11, 3, 0, 0, 0, 0, loc)
	return &getAvailableSlots.Response{
		Date:            day,
		ServiceID:       req.ServiceID,
		ProfessionalID:  req.ProfessionalID,
		DurationMinutes: 60,
		Slots: []getAvailableSlots.Slot{
			{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour), Available: true},
			{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour), Available: false},
		},
	}, nil
}

func TestHandle_OK(t *testing.T) {
	uc := &stubUseCase{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots?day=3+de+Novembro+de+2025&service_id=2&professional_id=1", nil)

	NewHandler(uc, logger.NewNop()).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3 de Novembro de 2025", uc.got.Day)

	var body SlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-11-03", body.Date)
	assert.Equal(t, 60, body.DurationMinutes)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, "2025-11-03T09:00:00-03:00", body.Slots[0].StartTime)
	assert.True(t, body.Slots[0].Available)
	assert.False(t, body.Slots[1].Available)
}

func TestHandle_BadParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing day", query: "service_id=2&professional_id=1"},
		{name: "bad service", query: "day=2025-11-03&service_id=x&professional_id=1"},
		{name: "missing professional", query: "day=2025-11-03&service_id=2"},
		{name: "negative professional", query: "day=2025-11-03&service_id=2&professional_id=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots?"+tt.query, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: getAvailableSlots.ErrInvalidInput, status: http.StatusBadRequest},
		{err: getAvailableSlots.ErrServiceNotFound, status: http.StatusNotFound},
		{err: getAvailableSlots.ErrProfessionalNotFound, status: http.StatusNotFound},
		{err: getAvailableSlots.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/slots?day=2025-11-03&service_id=2&professional_id=1", nil)
			NewHandler(&stubUseCase{err: tt.err}, logger.NewNop()).Handle(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
