package client

import "errors"

var (
	ErrServicesNotConfigured = errors.New("client services are not configured")
	ErrUINotConfigured       = errors.New("client ui is not configured")
)
