package errors

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	"github.com/matzehuels/cityforest/pkg/edgeheap"
	"github.com/matzehuels/cityforest/pkg/forest"
	"github.com/matzehuels/cityforest/pkg/graph"
	"github.com/matzehuels/cityforest/pkg/loader"
)

var sentinels = []struct {
	target error
	code   Code
}{
	{forest.ErrUnknownEntity, ErrCodeUnknownEntity},
	{forest.ErrEmptyGraph, ErrCodeEmptyGraph},
	{edgeheap.ErrEmpty, ErrCodeEmptyStructure},
	{loader.ErrMalformedRecord, ErrCodeInvalidInput},
	{graph.ErrInvalidName, ErrCodeInvalidInput},
	{graph.ErrDuplicateName, ErrCodeInvalidInput},
	{fs.ErrNotExist, ErrCodeFileNotFound},
	{context.Canceled, ErrCodeCanceled},
}

// Classify returns err as a coded *Error. Errors that already carry a code
// are returned unchanged; known sentinels get their matching code; anything
// else becomes ErrCodeInternal. Classify(nil) returns nil.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	for _, s := range sentinels {
		if errors.Is(err, s.target) {
			return &Error{Code: s.code, Message: err.Error(), Cause: err}
		}
	}
	return &Error{Code: ErrCodeInternal, Message: err.Error(), Cause: err}
}

// HTTPStatus maps an error to the status code the server responds with.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch Classify(err).Code {
	case ErrCodeUnknownEntity, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidInput, ErrCodeInvalidConfig, ErrCodeInvalidFormat, ErrCodeInvalidPath:
		return http.StatusBadRequest
	case ErrCodeEmptyGraph, ErrCodeEmptyStructure:
		return http.StatusUnprocessableEntity
	case ErrCodeCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
