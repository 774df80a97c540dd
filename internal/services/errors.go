package services

import "errors"

// ErrInvalidInput is returned for malformed client input. It is always
// reported before any store or cache access.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidCredentials is returned for failed logins. It is deliberately
// identical for unknown usernames and wrong passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")
