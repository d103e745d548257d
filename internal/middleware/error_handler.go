package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/aiclases-pricing/internal/payments"
	"github.com/anyulbade/aiclases-pricing/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MapError translates domain errors first and falls back to the database
// mapping.
func MapError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"}
	case errors.Is(err, service.ErrUnknownPackage):
		return http.StatusNotFound, ErrorResponse{Error: "package not found", Details: err.Error()}
	case errors.Is(err, payments.ErrUnknownProvider):
		return http.StatusNotFound, ErrorResponse{Error: "payment provider not found", Details: err.Error()}
	case errors.Is(err, payments.ErrInvalidSignature):
		return http.StatusBadRequest, ErrorResponse{Error: "invalid signature"}
	case errors.Is(err, payments.ErrMalformedEvent):
		return http.StatusBadRequest, ErrorResponse{Error: "malformed event", Details: err.Error()}
	}
	return MapDBError(err)
}

func MapDBError(err error) (int, ErrorResponse) {
	if errors.Is(err, pgx.ErrNoRows) {
		return http.StatusNotFound, ErrorResponse{Error: "resource not found"}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return http.StatusConflict, ErrorResponse{
				Error:   "resource already exists",
				Details: pgErr.Detail,
			}
		case "23503": // foreign_key_violation
			return http.StatusBadRequest, ErrorResponse{
				Error:   "referenced resource does not exist",
				Details: pgErr.Detail,
			}
		case "23514": // check_violation
			return http.StatusBadRequest, ErrorResponse{
				Error:   "constraint violation",
				Details: pgErr.Detail,
			}
		}
	}

	log.Error().Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

// ErrorHandler renders the last error a handler attached with c.Error,
// unless the handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			status, resp := MapError(err)
			c.JSON(status, resp)
		}
	}
}
