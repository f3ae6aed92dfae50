package srs

import "time"

// Service defines the scheduling policy used by card operations.
type Service interface {
	// NextReview computes the next review time for a card rated difficulty.
	NextReview(difficulty *float64, override *time.Time, now time.Time) time.Time
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters.
// A nil params falls back to the defaults.
func NewServiceWithParams(params *Params) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	return &defaultService{
		params: params,
	}
}

// NextReview implements the Service interface.
func (s *defaultService) NextReview(difficulty *float64, override *time.Time, now time.Time) time.Time {
	return calculateNextReview(difficulty, override, now, s.params)
}
