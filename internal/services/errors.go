package services

import "errors"

var (
	ErrUsernameTaken       = errors.New("username has already been taken")
	ErrEmailTaken          = errors.New("email has already been taken")
	ErrInvalidCredentials  = errors.New("incorrect password")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrInvalidReferralCode = errors.New("refer code not valid")
	// ErrAlreadyLinked reports that the user already sits in some parent's
	// children list. A normal outcome, not a failure.
	ErrAlreadyLinked = errors.New("already added in child array")
)
