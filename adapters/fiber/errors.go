package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/sorenlabs/soren"
)

// statusFor maps sentinel errors to HTTP status codes. Unknown errors are
// internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, soren.ErrDuplicateAccount):
		return http.StatusConflict
	case errors.Is(err, soren.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, soren.ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, soren.ErrMalformedToken),
		errors.Is(err, soren.ErrUnknownProvider),
		errors.Is(err, soren.ErrNameRequired),
		errors.Is(err, soren.ErrEmailRequired),
		errors.Is(err, soren.ErrPasswordRequired),
		errors.Is(err, soren.ErrPasswordTooShort),
		errors.Is(err, soren.ErrUnsupportedFileType):
		return http.StatusBadRequest
	case errors.Is(err, soren.ErrNoActiveVideo):
		return http.StatusConflict
	case errors.Is(err, soren.ErrUploadRejected),
		errors.Is(err, soren.ErrContextUnavailable),
		errors.Is(err, soren.ErrAnswerFailed),
		errors.Is(err, soren.ErrBackendUnreachable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func fail(c fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
