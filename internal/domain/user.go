package domain

import "time"

// UserRole separates team leads from the employees they assign work to.
type UserRole string

const (
	UserRoleEmployee UserRole = "employee"
	UserRoleLead     UserRole = "lead"
)

// UserStatus is the advisory availability flag shown on the team page.
type UserStatus string

const (
	UserStatusAvailable UserStatus = "available"
	UserStatusBusy      UserStatus = "busy"
)

// DefaultWeeklyCapacityHours applies when a user has no capacity configured.
const DefaultWeeklyCapacityHours float64 = 40

// NotificationPrefs selects the channels a user receives notifications on.
type NotificationPrefs struct {
	Email bool `json:"email"`
	InApp bool `json:"inApp"`
}

// User is a team member, either an employee or a lead.
type User struct {
	ID                  string
	Username            string
	Email               string
	PasswordHash        string
	Role                UserRole
	Skills              []string
	Status              UserStatus
	WeeklyCapacityHours float64
	NotificationPrefs   NotificationPrefs
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsLead reports whether the user may manage tasks.
func (u *User) IsLead() bool {
	return u != nil && u.Role == UserRoleLead
}

// Capacity returns the configured weekly hours or the default.
func (u *User) Capacity() float64 {
	if u.WeeklyCapacityHours <= 0 {
		return DefaultWeeklyCapacityHours
	}
	return u.WeeklyCapacityHours
}

// UserSummary is the reduced user view embedded in task responses.
type UserSummary struct {
	ID       string
	Username string
	Email    string
	Role     UserRole
}
