package notify_whatsapp

// NotifyRequest HTTP запрос на отправку уведомления
type NotifyRequest struct {
	BookingID     int64  `json:"booking_id"`
	RecipientRole string `json:"recipient_role"` // client | professional
}

// NotifyResponse HTTP ответ
type NotifyResponse struct {
	Status string `json:"status"`
}
