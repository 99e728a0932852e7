package memory

import "errors"

var (
	ErrIDRequired = errors.New("record id required")
)
