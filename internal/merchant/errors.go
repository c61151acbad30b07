package merchant

import "errors"

var (
	ErrMerchantNotFound = errors.New("merchant not found")
	ErrNotAdministrator = errors.New("only administrators can perform this action")
)
