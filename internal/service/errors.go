package service

import (
	"errors"
	"fmt"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrSurveyNotFound     = errors.New("survey not found")
	// ErrNotPsychosocial is returned when a submission's survey is not of
	// the psychosocial category. Analysis fails fast with no partial work.
	ErrNotPsychosocial = errors.New("submission does not belong to a psychosocial survey")
)

// PartialPersistenceError reports that the risk record was created but one
// of its measures failed to persist. Already-created records are not
// rolled back; the caller gets the partial result alongside the cause.
type PartialPersistenceError struct {
	RiskID          string
	CreatedMeasures []string
	Err             error
}

func (e *PartialPersistenceError) Error() string {
	return fmt.Sprintf("risk %s created with %d of its measures, remaining failed: %v",
		e.RiskID, len(e.CreatedMeasures), e.Err)
}

func (e *PartialPersistenceError) Unwrap() error {
	return e.Err
}
