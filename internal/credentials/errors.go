package credentials

import "errors"

var (
	ErrNoToken    = errors.New("no token stored")
	ErrEmptyToken = errors.New("token must not be empty")
)
