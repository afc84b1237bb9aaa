package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	ProfessionalID int64     // ID мастера
	ServiceID      int64     // ID услуги
	Start          time.Time // Начало интервала, в любой зоне
	ClientName     string    // Имя клиента
	ClientPhone    string    // Телефон клиента
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64
	ProfessionalID int64
	ServiceID      int64
	ServiceName    string
	Start          time.Time // в зоне салона
	End            time.Time // Start + длительность услуги
	ClientName     string
	ClientPhone    string
	CreatedAt      time.Time
}
