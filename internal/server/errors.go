// Package server provides the HTTP REST API for the audit engine.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/hr-audit/internal/registry"
	"github.com/jonathan/hr-audit/internal/store"
)

// ErrRunNotFound indicates the requested run id was never created
type ErrRunNotFound struct {
	RunID string
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("run not found: %s", e.RunID)
}

// ErrStageNotFound indicates the requested stage id is not part of the pipeline
type ErrStageNotFound struct {
	StageID string
}

func (e *ErrStageNotFound) Error() string {
	return fmt.Sprintf("stage not found: %s", e.StageID)
}

// ErrArtifactNotFound indicates the requested artifact was not (yet) written
type ErrArtifactNotFound struct {
	RunID string
	Name  string
}

func (e *ErrArtifactNotFound) Error() string {
	return fmt.Sprintf("artifact not found: %s/%s", e.RunID, e.Name)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		runNotFound      *ErrRunNotFound
		stageNotFound    *ErrStageNotFound
		artifactNotFound *ErrArtifactNotFound
		validation       *ErrValidation
	)
	switch {
	case errors.As(err, &runNotFound),
		errors.As(err, &stageNotFound),
		errors.As(err, &artifactNotFound),
		errors.Is(err, registry.ErrRunNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
