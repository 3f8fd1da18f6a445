package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursecatalog/internal/app/models/dto"
	"github.com/yigit/coursecatalog/internal/pkg/apperrors"
)

// HandleAPIError maps an error kind to a status code and writes a response.
// Storage failures only ever expose detail, never the underlying error.
func HandleAPIError(c *gin.Context, err error, detail string) {
	_ = c.Error(err)

	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		c.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrors().
			AddError("Validation failed", "value_error"))
	case apperrors.KindStorageUnavailable:
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(detail))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
	}
}
