package context

import (
	"net/http"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/logger"

	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/gin-gonic/gin"
)

// Keys the JWT middleware fills for authenticated requests
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	CompanyIDKey = "company_id"
	RoleIDKey    = "role_id"
)

// Unauthenticated is the response for requests without a usable operator.
var Unauthenticated = sharedError.ErrorResponse{
	Status:  http.StatusUnauthorized,
	Code:    "AUTH-000",
	Message: "로그인을 해주세요.",
}

func GetUserID(c *gin.Context) (string, bool) {
	id := c.GetString(UserIDKey)
	return id, id != ""
}

// GetScope returns the company and role the operator's token was issued for.
func GetScope(c *gin.Context) (companyID, roleID string) {
	return c.GetString(CompanyIDKey), c.GetString(RoleIDKey)
}

// RequireUserID returns the authenticated user's ID or answers 401 and aborts.
func RequireUserID(c *gin.Context) (string, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		logger.FromContext(c.Request.Context()).Error("[API] context에 사용자 ID가 존재하지 않습니다.", "path", c.FullPath())
		c.AbortWithStatusJSON(Unauthenticated.Status, Unauthenticated)
		return "", false
	}
	return userID, true
}
