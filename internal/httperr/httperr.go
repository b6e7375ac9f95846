package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Unprocessable(c *gin.Context, code, message string) {
	Write(c, http.StatusUnprocessableEntity, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond maps core errors to their HTTP shape. Slot conflicts and invalid
// transitions share 409 but keep distinct codes.
func Respond(c *gin.Context, err error) {
	var (
		ve ValidationError
		us UnknownServiceError
		um UnknownModifierError
		se SlotConflictError
		te InvalidTransitionError
		be BusinessError
	)

	switch {
	case errors.As(err, &ve):
		BadRequest(c, ve.Code, ve.Error())
	case errors.As(err, &us):
		Unprocessable(c, "unknown_service", us.Error())
	case errors.As(err, &um):
		Unprocessable(c, "unknown_modifier", um.Error())
	case errors.As(err, &se), IsExclusionConflict(err):
		Conflict(c, "slot_conflict", "Slot no longer available, please pick another time.")
	case errors.As(err, &te):
		Conflict(c, "invalid_transition", te.Error())
	case errors.As(err, &be):
		switch be.Code {
		case "feature_not_available":
			Forbidden(c, be.Code, be.Code)
		default:
			NotFound(c, be.Code, be.Code)
		}
	default:
		log.Printf("internal error: %v", err)
		Internal(c, "internal_error", "Unexpected error.")
	}
}
