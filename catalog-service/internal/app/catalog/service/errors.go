package service

import (
	"errors"
	"fmt"
)

// Виды ошибок бизнес-логики, проверяются через errors.Is в handlers
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrStoreFailure = errors.New("store failure")
)

// CatalogError несёт вид ошибки, читаемое сообщение и исходную причину
type CatalogError struct {
	Kind    error
	Message string
	Err     error
}

func (e *CatalogError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *CatalogError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, cause error, format string, args ...interface{}) *CatalogError {
	return &CatalogError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

func storeFailure(cause error, format string, args ...interface{}) *CatalogError {
	return newError(ErrStoreFailure, cause, format, args...)
}
