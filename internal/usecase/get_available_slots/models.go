package get_available_slots

import "time"

// Request модель запроса на получение слотов дня
type Request struct {
	Day            string // 2025-11-03 или "3 de Novembro de 2025"
	ServiceID      int64
	ProfessionalID int64
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time // полночь дня в зоне салона
	ServiceID       int64
	ProfessionalID  int64
	DurationMinutes int
	Slots           []Slot // упорядочены по Start, пустой список для выходного дня
}

// Slot кандидат на начало бронирования
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
}
