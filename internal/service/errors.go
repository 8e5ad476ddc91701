package service

import "errors"

var (
	ErrInvalidPeriod    = errors.New("wrong timespan parameter (supported: day, week, month, year)")
	ErrInvalidParam     = errors.New("invalid parameter")
	ErrUnknownLookupKey = errors.New("no data for the requested key")
	ErrUpstreamStore    = errors.New("analytics store failure")
)
