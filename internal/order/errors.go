package order

import "errors"

var (
	ErrEmptyCart  = errors.New("cart is empty")
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("order not found")
)
