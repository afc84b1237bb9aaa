package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ProfessionalID int64  `json:"professional_id"`
	ClientName     string `json:"client_name"`
}

func TestDecodeBody_JSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"professional_id":3,"client_name":"Ana"}`))
	r.Header.Set("Content-Type", "application/json")

	var got payload
	require.NoError(t, DecodeBody(r, &got))
	assert.Equal(t, payload{ProfessionalID: 3, ClientName: "Ana"}, got)
}

func TestDecodeBody_Form(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("professional_id=3&client_name=Ana+Souza&csrf=x"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")

	var got payload
	require.NoError(t, DecodeBody(r, &got))
	assert.Equal(t, payload{ProfessionalID: 3, ClientName: "Ana Souza"}, got)
}

func TestDecodeBody_Invalid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("professional_id=abc"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.ErrorIs(t, DecodeBody(r, &payload{}), ErrInvalidBody)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	assert.ErrorIs(t, DecodeBody(r, &payload{}), ErrInvalidBody)
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()

	RespondConflict(w, "horário já reservado")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"code":"conflict","message":"horário já reservado"}`, w.Body.String())
}
