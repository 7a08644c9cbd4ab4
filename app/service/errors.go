package service

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrPackageNotFound = errors.New("package not found")
	ErrPackageUnpriced = errors.New("package has no active price")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrPayerMissing    = errors.New("capture response contains no payer identity")
)
