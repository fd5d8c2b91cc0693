package history

import "errors"

var ErrNotFound = errors.New("commit record not found")
