package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/models"
	"storefront/utils"
)

// respond writes the success envelope with the first pending alert, if any.
func respond(c *gin.Context, status int, message string, data interface{}) {
	ws := middleware.GetWorkspace(c)
	resp := models.Response{Success: true, Message: message, Data: data}
	if alerts := ws.TakeAlerts(); len(alerts) > 0 {
		resp.Alert = &alerts[0]
	}
	c.JSON(status, resp)
}

func respondPage(c *gin.Context, message string, data interface{}, meta models.PaginationMeta) {
	ws := middleware.GetWorkspace(c)
	resp := models.PaginationResponse{Success: true, Message: message, Data: data, Meta: meta}
	if alerts := ws.TakeAlerts(); len(alerts) > 0 {
		resp.Alert = &alerts[0]
	}
	c.JSON(http.StatusOK, resp)
}

// respondError funnels every failure into one banner alert.
func respondError(c *gin.Context, err error) {
	ws := middleware.GetWorkspace(c)
	ws.TakeAlerts()
	alert := ws.ErrorAlert(err)
	_ = c.Error(err)
	c.JSON(statusFor(err), models.ErrorResponse{
		Success: false,
		Message: alert.Message,
		Error:   err.Error(),
		Alert:   &alert,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrUnknownStatus),
		errors.Is(err, models.ErrNoIdentifier),
		errors.Is(err, utils.ErrFileTooLarge),
		errors.Is(err, utils.ErrInvalidImageType):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNetwork):
		return http.StatusBadGateway
	}
	if status := models.StatusOf(err); status >= 400 {
		return status
	}
	return http.StatusInternalServerError
}

func paramID(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", models.ErrValidation, name)
	}
	return id, nil
}

func bindJSON(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	return nil
}

func queryInt(c *gin.Context, name string) int {
	n, _ := strconv.Atoi(c.Query(name))
	return n
}

func pageMeta(page, pageSize, total, totalPages int) models.PaginationMeta {
	return models.PaginationMeta{Page: page, Limit: pageSize, TotalItems: total, TotalPages: totalPages}
}
