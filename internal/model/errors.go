package model

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned on registration with an already used email.
	ErrEmailTaken = errors.New("email is already taken")
	// ErrInvalidCredentials is returned when email or password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSelfChat is returned when both sides of a private chat are the same user.
	ErrSelfChat = errors.New("cannot open a private chat with yourself")
)
