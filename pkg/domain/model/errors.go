package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain validation
var (
	ErrInvalidDueFormat = goerr.New("due time must be `YYYY-MM-DD HH:mm` (24h)")
	ErrEmptyTitle       = goerr.New("title must not be empty")
	ErrEmptyText        = goerr.New("text must not be empty")
	ErrInvalidScope     = goerr.New("scope must be one of today, week, all")
)
