package handler

import (
	"net/http"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/validator"
	"github.com/gin-gonic/gin"
)

// BindJSON parses and validates JSON request body
// Returns true if binding succeeded, false if failed (response already sent)
//
// Usage:
//
//	var req CreateRequest
//	if !handler.BindJSON(c, &req) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		// Add error to context for middleware logging
		c.Error(err)

		// Check if it's a validation error
		if resp, ok := validator.ToErrorResponse(err); ok {
			c.JSON(http.StatusBadRequest, resp)
		} else {
			// JSON parsing error or other binding errors
			c.JSON(sharedError.InvalidRequest.Status, sharedError.InvalidRequest)
		}
		return false
	}
	return true
}

// RespondError sends an error response with logging
//
// Usage:
//
//	if err := service.DoSomething(); err != nil {
//	    handler.RespondError(c, err, sharedError.InternalServerError)
//	    return
//	}
func RespondError(c *gin.Context, err error, errResp sharedError.ErrorResponse) {
	// Add error to context for middleware logging
	c.Error(err)

	// Send error response
	c.JSON(errResp.Status, errResp)
}

// RespondDomainError resolves err through the domain error registry.
// Unregistered errors become 500.
func RespondDomainError(c *gin.Context, err error) {
	RespondError(c, err, sharedError.Resolve(err))
}

// StatusQuery reads the optional ?status= filter.
// Returns ok=false after sending 400 when the value is not a known status.
func StatusQuery(c *gin.Context) (status model.Status, present bool, ok bool) {
	raw, present := c.GetQuery("status")
	if !present {
		return model.StatusUnset, false, true
	}

	status, err := model.ParseStatus(raw)
	if err != nil {
		RespondError(c, err, sharedError.ValidationFailed.WithMessage("지원하지 않는 상태 값입니다."))
		return model.StatusUnset, true, false
	}
	return status, true, true
}
