package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/models"
)

// RequireCustomer and RequireEmployee gate screens on the stored session.
// They decide what the shell shows; the backend still authorizes each call.
func RequireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := GetWorkspace(c)
		if !ws.Session.IsCustomer() {
			alert := models.Banner(models.AlertError, ws.Message("auth.customerRequired", "Please log in as a customer"))
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: alert.Message,
				Alert:   &alert,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireEmployee() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := GetWorkspace(c)
		if !ws.Session.IsEmployee() {
			alert := models.Banner(models.AlertError, ws.Message("auth.employeeRequired", "Please log in as an employee"))
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: alert.Message,
				Alert:   &alert,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
