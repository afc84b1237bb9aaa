// Package dateparse разбирает дату дня календаря из ISO формата
// или из локализованного вида "3 de Novembro de 2025".
package dateparse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidDate возвращается, когда строку не удалось однозначно разобрать
var ErrInvalidDate = errors.New("dateparse: invalid date")

const isoDate = "2006-01-02"

var months = map[string]time.Month{
	"janeiro":   time.January,
	"fevereiro": time.February,
	"marco":     time.March,
	"abril":     time.April,
	"maio":      time.May,
	"junho":     time.June,
	"julho":     time.July,
	"agosto":    time.August,
	"setembro":  time.September,
	"outubro":   time.October,
	"novembro":  time.November,
	"dezembro":  time.December,
}

// Parse возвращает полночь указанного дня в зоне loc.
//
// Поддерживаемые форматы:
//   - 2025-11-03
//   - 2025-11-03T10:00:00-03:00 (берётся календарный день в loc)
//   - 3 de Novembro de 2025, 3 novembro 2025, 03 de março de 2025
//
// Локализованный формат разбирается строго: ровно один день (1-2 цифры),
// одно название месяца и один год (4 цифры), других токенов кроме "de" нет.
func Parse(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}

	if d, err := time.ParseInLocation(isoDate, s, loc); err == nil {
		return d, nil
	}

	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := ts.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	}

	return parseLocalized(s, loc)
}

func parseLocalized(s string, loc *time.Location) (time.Time, error) {
	var (
		day, year int
		month     time.Month
	)

	for _, token := range strings.Fields(fold(s)) {
		token = strings.Trim(token, ",.")
		switch {
		case token == "" || token == "de":
			continue
		case isDigits(token) && len(token) <= 2:
			if day != 0 {
				return time.Time{}, fmt.Errorf("%w: ambiguous day in %q", ErrInvalidDate, s)
			}
			day, _ = strconv.Atoi(token)
		case isDigits(token) && len(token) == 4:
			if year != 0 {
				return time.Time{}, fmt.Errorf("%w: ambiguous year in %q", ErrInvalidDate, s)
			}
			year, _ = strconv.Atoi(token)
		default:
			m, ok := months[token]
			if !ok || month != 0 {
				return time.Time{}, fmt.Errorf("%w: unexpected token %q", ErrInvalidDate, token)
			}
			month = m
		}
	}

	if day == 0 || month == 0 || year == 0 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	d := time.Date(year, month, day, 0, 0, 0, 0, loc)
	// 31 de fevereiro нормализуется time.Date в март, это ошибка ввода
	if d.Day() != day || d.Month() != month {
		return time.Time{}, fmt.Errorf("%w: day out of range in %q", ErrInvalidDate, s)
	}

	return d, nil
}

// fold приводит строку к нижнему регистру и убирает диакритику (março -> marco)
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
