package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/gorilla/schema"
)

// MaxBodyBytes предел размера тела запроса
const MaxBodyBytes = 1 << 20

// ErrInvalidBody тело запроса не удалось разобрать
var ErrInvalidBody = errors.New("handlers: invalid request body")

// formDecoder читает формы по тем же тегам json, что и JSON тело
var formDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("json")
	d.IgnoreUnknownKeys(true)
	return d
}()

// DecodeJSON разбирает JSON тело запроса в dst
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidBody)
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return nil
}

// DecodeForm разбирает application/x-www-form-urlencoded или multipart тело в dst
func DecodeForm(r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxBodyBytes)

	var err error
	if mediaType(r) == "multipart/form-data" {
		err = r.ParseMultipartForm(MaxBodyBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	if err := formDecoder.Decode(dst, r.PostForm); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return nil
}

// DecodeBody выбирает разбор по Content-Type: форма или JSON
func DecodeBody(r *http.Request, dst interface{}) error {
	switch mediaType(r) {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return DecodeForm(r, dst)
	default:
		return DecodeJSON(r, dst)
	}
}

func mediaType(r *http.Request) string {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mt
}
