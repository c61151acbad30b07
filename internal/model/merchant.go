package model

import (
	"time"

	"gorm.io/gorm"
)

// Status is the registration state of a merchant.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Merchant represents a registered business entity. Every mutation stamps
// UpdatedByID with the acting user.
type Merchant struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Name             string         `json:"name" gorm:"type:varchar(100);not null"`
	Municipality     string         `json:"municipality" gorm:"type:varchar(100);not null;index"`
	Phone            *string        `json:"phone" gorm:"type:varchar(30)"`
	Email            *string        `json:"email" gorm:"type:varchar(100)"`
	RegistrationDate time.Time      `json:"registrationDate" gorm:"type:date;not null"`
	Status           Status         `json:"status" gorm:"type:varchar(10);not null;default:'ACTIVE';index"`
	RegisteredByID   uint           `json:"registeredById" gorm:"index;not null"`
	UpdatedByID      uint           `json:"updatedById" gorm:"index;not null"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	RegisteredBy   *User           `json:"registeredBy,omitempty" gorm:"foreignKey:RegisteredByID"`
	UpdatedBy      *User           `json:"updatedBy,omitempty" gorm:"foreignKey:UpdatedByID"`
	Establishments []Establishment `json:"establishments,omitempty" gorm:"foreignKey:OwnerID"`
}
