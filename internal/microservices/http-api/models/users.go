package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Roles lists every assignable role in the order they are documented.
var Roles = []string{RoleUser, RoleModerator, RoleAdmin}

type User struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username    string     `gorm:"size:150;not null;uniqueIndex:idx_users_username;uniqueIndex:idx_users_email_username,priority:2" json:"username"`
	Email       string     `gorm:"size:254;not null;uniqueIndex:idx_users_email;uniqueIndex:idx_users_email_username,priority:1" json:"email"`
	FirstName   string     `gorm:"size:150;not null;default:''" json:"first_name"`
	LastName    string     `gorm:"size:150;not null;default:''" json:"last_name"`
	Bio         string     `gorm:"type:text;not null;default:''" json:"bio"`
	Role        string     `gorm:"size:16;not null;default:'user';index:role_idx" json:"role"`
	IsSuperuser bool       `gorm:"not null;default:false" json:"-"`
	LastLogin   *time.Time `json:"-"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`
}

// BeforeCreate hook to set UUID and default role before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may administer the catalogue and accounts.
func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin || user.IsSuperuser
}

// IsModerator reports whether the user may edit content written by others.
func (user *User) IsModerator() bool {
	return user.Role == RoleModerator
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}
