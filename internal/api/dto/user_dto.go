package dto

import "time"

// UserSummary is the short form of a user embedded in other payloads.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// NotificationPrefs mirrors the user's delivery preferences.
type NotificationPrefs struct {
	Email bool `json:"email"`
	InApp bool `json:"inApp"`
}

// UserResponse is the full public view of a user.
type UserResponse struct {
	ID                  string            `json:"id"`
	Username            string            `json:"username"`
	Email               string            `json:"email"`
	Role                string            `json:"role"`
	Skills              []string          `json:"skills"`
	Status              string            `json:"status"`
	WeeklyCapacityHours float64           `json:"weeklyCapacityHours"`
	NotificationPrefs   NotificationPrefs `json:"notificationPrefs"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// MemberStats are per-user task counters.
type MemberStats struct {
	ActiveTasks    int `json:"activeTasks"`
	CompletedTasks int `json:"completedTasks"`
	Efficiency     int `json:"efficiency"`
}

// TeamResponse is returned by GET /users.
type TeamResponse struct {
	Users []UserResponse         `json:"users"`
	Stats map[string]MemberStats `json:"stats"`
}

// UpdateUserRequest is a partial profile update. Skills is a pointer so an
// explicit empty list clears the skills.
type UpdateUserRequest struct {
	Username            *string            `json:"username"`
	Skills              *[]string          `json:"skills"`
	Status              *string            `json:"status" validate:"omitempty,oneof=available busy"`
	WeeklyCapacityHours *float64           `json:"weeklyCapacityHours" validate:"omitempty,gt=0"`
	NotificationPrefs   *NotificationPrefs `json:"notificationPrefs"`
	Role                *string            `json:"role" validate:"omitempty,oneof=employee lead"`
}
