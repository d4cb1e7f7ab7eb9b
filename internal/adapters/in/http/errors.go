package http

import (
	"errors"
	"net/http"

	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const unforeseenError = "Unforeseen error"

func isValidationError(err error) bool {
	return errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}

// notFoundOf reports whether err is a missing entity looked up by param.
func notFoundOf(err error, param string) bool {
	var notFound *errs.ObjectNotFoundError
	return errors.As(err, &notFound) && notFound.ParamName == param
}

func (s *Server) fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Error{Error: message})
}

func (s *Server) invalid(c echo.Context, loc string, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ValidationError{Detail: []ValidationIssue{{
		Type: "value_error",
		Loc:  []string{loc},
		Msg:  err.Error(),
	}}})
}

// unforeseen logs err with the request id and hides it from the client.
func (s *Server) unforeseen(c echo.Context, err error) error {
	s.log.Error("unforeseen error",
		zap.Error(err),
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
	)
	return s.fail(c, http.StatusInternalServerError, unforeseenError)
}
