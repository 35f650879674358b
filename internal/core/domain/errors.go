package domain

import "errors"

var ErrHeroNotFound = errors.New("hero not found")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("username already taken")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrValidation = errors.New("validation failed")
var ErrForbidden = errors.New("access forbidden")
