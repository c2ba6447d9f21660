package apperror

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// HTTPError is the flattened form handlers feed into response.Error.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP maps any service error to its HTTP rendering. Unknown errors are
// masked as internal so driver rates and pay amounts never leak via raw
// database errors.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return HTTPError{
			Status:  http.StatusNotFound,
			Code:    CodeNotFound,
			Message: ErrNotFound.Message,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: ErrInternal.Message,
	}
}
