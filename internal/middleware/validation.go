package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/attendance/internal/app/models/dto"
)

const validatedBodyKey = "validatedBody"

// ValidateRequest binds the JSON body into a fresh T using gin's validator
// (with the custom tags registered at startup) and stores it on the context
func ValidateRequest[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		body := new(T)
		if err := c.ShouldBindJSON(body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
			return
		}
		c.Set(validatedBodyKey, body)
		c.Next()
	}
}

// ValidatedBody returns the body stored by ValidateRequest. When the
// middleware did not run it binds the body itself, writing a 400 on failure.
func ValidatedBody[T any](c *gin.Context) (*T, bool) {
	if v, ok := c.Get(validatedBodyKey); ok {
		if body, ok := v.(*T); ok {
			return body, true
		}
	}
	body := new(T)
	if err := c.ShouldBindJSON(body); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return nil, false
	}
	return body, true
}
