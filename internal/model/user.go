package model

import (
	"time"

	"gorm.io/gorm"
)

// Role is the access level assigned to a user.
type Role string

const (
	RoleAdministrator         Role = "ADMINISTRATOR"
	RoleRegistrationAssistant Role = "REGISTRATION_ASSISTANT"
)

// User represents an operator of the registry: either an administrator or a
// registration assistant. Users are referenced by the merchants and
// establishments they register or update and are never deleted with them.
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name,omitempty" gorm:"type:varchar(100);not null"`
	Email     string         `json:"email,omitempty" gorm:"type:varchar(100);uniqueIndex"`
	Password  string         `json:"-" gorm:"type:varchar(255)"`
	Role      Role           `json:"role,omitempty" gorm:"type:varchar(30);not null"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
