package staff

import "errors"

var (
	ErrDuplicateID = errors.New("employee id already exists")
	ErrInvalidSeed = errors.New("invalid employee seed data")
)
