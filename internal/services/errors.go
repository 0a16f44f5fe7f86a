package services

import "errors"

// Dashboard service errors
var (
	ErrSnapshotUnavailable = errors.New("no snapshot has been computed yet")
	ErrInvalidDateRange    = errors.New("start date is after end date")
)
