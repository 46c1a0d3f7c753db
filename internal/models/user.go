package models

import "time"

// User represents the users table
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null;size:150" json:"username"`
	Email        string     `gorm:"size:254;index" json:"email"`
	FirstName    string     `gorm:"size:150" json:"first_name"`
	LastName     string     `gorm:"size:150" json:"last_name"`
	PasswordHash string     `gorm:"not null;size:255" json:"-"`
	IsActive     bool       `json:"is_active"`
	IsStaff      bool       `json:"is_staff"`
	IsSuperuser  bool       `json:"is_superuser"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"date_joined"`
	UpdatedAt    time.Time  `json:"-"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// Session represents the sessions table
// Only the SHA-256 hash of the cookie token is stored
type Session struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	TokenHash  string    `gorm:"not null;size:64;uniqueIndex" json:"-"`
	ClientIP   string    `gorm:"size:45" json:"client_ip"`
	UserAgent  string    `gorm:"size:255" json:"user_agent"`
	ExpiresAt  time.Time `gorm:"not null;index" json:"expires_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
	CreatedAt  time.Time `json:"created_at"`
	Revoked    bool      `json:"revoked"`
	User       User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Session model
func (Session) TableName() string {
	return "sessions"
}
