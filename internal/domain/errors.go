package domain

import "errors"

var (
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrItemNotFound        = errors.New("item not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrJobNotFound         = errors.New("job not found")
)
