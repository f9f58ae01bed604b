package repository

import "errors"

// ErrDuplicate indicates a unique constraint rejected the write.
var ErrDuplicate = errors.New("repository: duplicate key")
