package dto

import "time"

// NotificationResponse is the public view of a notification.
type NotificationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// MarkAllReadResponse is returned by PATCH /notifications/read-all.
type MarkAllReadResponse struct {
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}
