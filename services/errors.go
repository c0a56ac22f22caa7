package services

import (
	"errors"
	"fmt"
)

// Expected business-rule failures. Controllers map these to 400-class JSON
// responses; anything else is treated as an infrastructure error.
var (
	ErrRewardNotFound      = errors.New("reward not found")
	ErrMissionNotFound     = errors.New("mission not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrPostNotFound        = errors.New("post not found")
	ErrOutOfStock          = errors.New("reward is currently out of stock")
	ErrDuplicateSubmission = errors.New("you already have a submission for this mission")
	ErrInvalidState        = errors.New("submission has already been reviewed")
)

// InsufficientPointsError reports the exact shortfall so callers can render
// actionable feedback.
type InsufficientPointsError struct {
	Required int
	Balance  int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: you need %d more points", e.Shortfall())
}

// Shortfall is how many points the user is missing.
func (e *InsufficientPointsError) Shortfall() int {
	return e.Required - e.Balance
}

// LevelTooLowError reports the level gate that blocked a redemption.
type LevelTooLowError struct {
	Required int
	Level    int
}

func (e *LevelTooLowError) Error() string {
	return fmt.Sprintf("you need to reach level %d to redeem this reward", e.Required)
}

// ValidationError marks a missing or malformed request field.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func errValidation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
