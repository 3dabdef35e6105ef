package service

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrValidation input broke a business rule
	ErrValidation = errors.New("validation failed")
	// ErrNotFound the addressed record does not exist
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized credentials were rejected
	ErrUnauthorized = errors.New("unauthorized")
)

// reject logs and returns a validation error carrying msg.
func reject(format string, args ...interface{}) error {
	err := errors.Wrapf(ErrValidation, format, args...)
	zap.L().Warn("request rejected", zap.String("reason", err.Error()))
	return err
}

func notFound(kind string, id int64) error {
	return errors.Wrapf(ErrNotFound, "%s %d", kind, id)
}
