package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/aquaflow/internal/auth"
	"github.com/mmynk/aquaflow/internal/calculator"
	"github.com/mmynk/aquaflow/internal/middleware"
	"github.com/mmynk/aquaflow/internal/models"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// toConnectError maps domain errors onto Connect codes.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, ErrCustomerNotFound), errors.Is(err, calculator.ErrReadingNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, calculator.ErrInvalidReading),
		errors.Is(err, calculator.ErrReadingNotIncreasing),
		errors.Is(err, models.ErrUnknownAlertFilter):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// operatorID returns the signed-in operator from the context.
func operatorID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}
