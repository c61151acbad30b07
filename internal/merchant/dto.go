package merchant

import "merchant-registry/internal/model"

// CreateMerchantRequest is the payload for registering a new merchant. When
// both employeeCount and revenue are provided, a companion establishment is
// created alongside the merchant.
type CreateMerchantRequest struct {
	Name             string       `json:"name" validate:"required"`
	Municipality     string       `json:"municipality" validate:"required"`
	Phone            *string      `json:"phone"`
	Email            *string      `json:"email" validate:"omitempty,email"`
	RegistrationDate string       `json:"registrationDate" validate:"required,datetime=2006-01-02"`
	Status           model.Status `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
	EmployeeCount    *int         `json:"employeeCount" validate:"omitempty,min=0"`
	Revenue          *float64     `json:"revenue" validate:"omitempty,min=0"`
}

// UpdateMerchantRequest carries the mutable merchant fields. Nil fields are
// left untouched. EmployeeCount and revenue drive establishment
// reconciliation, not the merchant row itself.
type UpdateMerchantRequest struct {
	Name          *string       `json:"name"`
	Municipality  *string       `json:"municipality"`
	Phone         *string       `json:"phone"`
	Email         *string       `json:"email" validate:"omitempty,email"`
	Status        *model.Status `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	EmployeeCount *int          `json:"employeeCount" validate:"omitempty,min=0"`
	Revenue       *float64      `json:"revenue" validate:"omitempty,min=0"`
}

// UpdateStatusRequest toggles a merchant between ACTIVE and INACTIVE.
type UpdateStatusRequest struct {
	Status model.Status `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}

// ListQuery are the optional listing filters plus pagination. Absent filter
// fields impose no constraint.
type ListQuery struct {
	Name             string `query:"name"`
	RegistrationDate string `query:"registrationDate" validate:"omitempty,datetime=2006-01-02"`
	Status           string `query:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	Page             int    `query:"page" validate:"omitempty,min=1"`
	Limit            int    `query:"limit" validate:"omitempty,min=1"`
}

// Meta is the pagination envelope returned with every listing.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// ListResult is a page of merchants with its pagination metadata.
type ListResult struct {
	Data []model.Merchant `json:"data"`
	Meta Meta             `json:"meta"`
}
