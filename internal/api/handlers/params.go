package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidID идентификатор не является положительным целым
var ErrInvalidID = errors.New("handlers: invalid id")

// ParseID разбирает обязательный положительный идентификатор
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// ParseOptionalID разбирает необязательный идентификатор, пустая строка даёт nil
func ParseOptionalID(s string) (*int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	id, err := ParseID(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// OptionalString возвращает nil для пустой строки
func OptionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
