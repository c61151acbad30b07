package model

import (
	"time"

	"gorm.io/gorm"
)

// Establishment is a physical or operating unit owned by a merchant, carrying
// its revenue and employee metrics. A merchant may own zero or more.
type Establishment struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Revenue        float64        `json:"revenue" gorm:"type:decimal(15,2);not null;default:0"`
	EmployeeCount  int            `json:"employeeCount" gorm:"not null;default:0"`
	OwnerID        uint           `json:"ownerId" gorm:"index;not null"`
	RegisteredByID uint           `json:"registeredById" gorm:"index;not null"`
	UpdatedByID    uint           `json:"updatedById" gorm:"index;not null"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Owner *Merchant `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}
