package services

import "errors"

// Service-level failures. Handlers map these onto HTTP status codes.
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrRewardNotFound     = errors.New("reward not found")
	ErrOrderNotFound      = errors.New("invalid QR Code")
	ErrProductNotFound    = errors.New("product not found")
	ErrHeroNotFound       = errors.New("hero slide not found")
	ErrLookNotFound       = errors.New("saved look not found")
	ErrNotOwner           = errors.New("this order does not belong to you")
	ErrAlreadyScanned     = errors.New("QR Code already scanned")
	ErrAlreadyClaimed     = errors.New("bonus already claimed")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
