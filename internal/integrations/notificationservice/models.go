package notificationservice

// NotificationRequest тело запроса на создание уведомления
type NotificationRequest struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}
