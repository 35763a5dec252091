package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/adboard/authcore/errors"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondWithError inspects err: if it is an *apperrors.AuthError the status
// and structured body are derived automatically; otherwise a generic 500 is
// sent. Internal causes never reach the response body.
func RespondWithError(c *gin.Context, err error) {
	if authErr, ok := apperrors.AsAuthError(err); ok {
		c.JSON(authErr.HTTPStatus, authErr.ToResponse())
		return
	}
	c.JSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// RespondNoContent sends a 204 with no body.
func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
