package handler

import (
	"errors"
	"net/http"

	"statutory-engine/internal/model"
	"statutory-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Codes for requests rejected before they reach a service
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidID      = "INVALID_ID"
	CodeInvalidDate    = "INVALID_DATE"
)

// writeError maps a service error onto the response envelope
func writeError(c *gin.Context, err error) {
	var de *model.DomainError
	if errors.As(err, &de) {
		switch de.Kind {
		case model.KindNotFound:
			c.JSON(http.StatusNotFound, response.ErrorWithCode(http.StatusNotFound, de.Code, de.Message))
			return
		case model.KindInvalidComponentRule:
			c.JSON(http.StatusBadRequest, response.ErrorWithCode(http.StatusBadRequest, de.Code, de.Message))
			return
		}
	}
	c.JSON(http.StatusInternalServerError, response.ErrorWithCode(http.StatusInternalServerError, string(model.KindStorageFailure), "An internal error occurred"))
}

func badRequest(c *gin.Context, code, msg string) {
	c.JSON(http.StatusBadRequest, response.ErrorWithCode(http.StatusBadRequest, code, msg))
}

// parseUUIDParam reads a path parameter as a UUID, writing a 400 when it is malformed
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, CodeInvalidID, "Invalid "+name+": must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
