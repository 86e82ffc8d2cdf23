package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/models"
)

type OrderController struct{}

// @Summary Checkout
// @Description Creates the order, then one order item per cart line, then clears the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest true "Shipping details"
// @Success 201 {object} models.Response{data=models.Order}
// @Failure 401 {object} models.ErrorResponse
// @Router /cart/checkout [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	ws := middleware.GetWorkspace(c)
	customer, err := ws.Session.RequireCustomer()
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := ws.Orders.Checkout(c.Request.Context(), customer, ws.Cart, req)
	if err != nil {
		respondError(c, err)
		return
	}

	msg := ws.Message("checkout.success", "Order placed successfully")
	ws.PushAlert(models.Toast(models.AlertSuccess, msg))
	respond(c, http.StatusCreated, msg, order)
}

// @Summary Update order status
// @Tags Manage
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body models.OrderStatusRequest true "Status"
// @Success 200 {object} models.Response
// @Router /manage/orders/{id}/status [patch]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req models.OrderStatusRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	ws := middleware.GetWorkspace(c)
	ctx := c.Request.Context()
	if err := ws.Orders.UpdateStatus(ctx, id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	_ = ws.OrderList.FetchPage(ctx)

	msg := ws.Message("orders.statusUpdated", "Order status updated")
	ws.PushAlert(models.Toast(models.AlertSuccess, msg))
	respond(c, http.StatusOK, msg, gin.H{"id": id, "status": req.Status})
}
