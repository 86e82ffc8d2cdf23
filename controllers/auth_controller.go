package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"
	"storefront/store"
)

type AuthController struct{}

func sessionResponse(ws *services.Workspace) models.SessionResponse {
	rec := ws.Session.Current()
	return models.SessionResponse{
		LoggedIn: rec.LoggedIn(),
		UserType: string(rec.UserType),
		IsAdmin:  ws.Session.IsAdmin(),
		Customer: rec.Customer,
		Employee: rec.Employee,
		Language: ws.Language(),
	}
}

// @Summary Login
// @Description Logs in a customer or employee by email or phone
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.Response{data=models.SessionResponse}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	ws := middleware.GetWorkspace(c)
	rec, err := ws.Session.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	name := ""
	switch rec.UserType {
	case store.UserCustomer:
		name = rec.Customer.FullName()
	case store.UserEmployee:
		name = rec.Employee.Username
	}
	msg := ws.Message("auth.welcome", "Welcome back") + ", " + name
	ws.PushAlert(models.Toast(models.AlertSuccess, msg))
	respond(c, http.StatusOK, msg, sessionResponse(ws))
}

// @Summary Signup
// @Description Registers a new customer
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Customer"
// @Success 201 {object} models.Response{data=models.Customer}
// @Router /auth/signup [post]
func (ctrl *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	ws := middleware.GetWorkspace(c)
	customer, err := ws.Session.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	msg := ws.Message("auth.registered", "Registration successful. Please log in.")
	ws.PushAlert(models.Toast(models.AlertSuccess, msg))
	respond(c, http.StatusCreated, msg, customer)
}

// @Summary Logout
// @Description Clears all persisted state of the visitor, cart included
// @Tags Auth
// @Produce json
// @Success 200 {object} models.Response
// @Router /auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	if err := ws.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, ws.Message("auth.loggedOut", "Logged out"), sessionResponse(ws))
}

// @Summary Current session
// @Tags Auth
// @Produce json
// @Success 200 {object} models.Response{data=models.SessionResponse}
// @Router /auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	respond(c, http.StatusOK, "Session retrieved", sessionResponse(ws))
}
