package domain

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrNameRequired        = errors.New("product name is required")
	ErrDescriptionRequired = errors.New("product description is required")
	ErrInvalidPrice        = errors.New("price must be greater than zero")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrInvoiceRequired     = errors.New("invoice number is required")
	ErrInsufficientStock   = errors.New("insufficient stock")
)
