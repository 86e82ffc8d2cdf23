package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"
)

type CartController struct{}

func cartSummary(cart *services.CartService) models.CartSummary {
	return models.CartSummary{Items: cart.Items(), Count: cart.Count(), Subtotal: cart.Subtotal()}
}

// @Summary Get cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response{data=models.CartSummary}
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	respond(c, http.StatusOK, "Cart retrieved", cartSummary(ws.Cart))
}

// @Summary Add to cart
// @Description Adds quantity to an existing line or appends a new line with the given snapshot
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.AddToCartRequest true "Cart line"
// @Success 200 {object} models.Response{data=models.CartSummary}
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddToCartRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	ws := middleware.GetWorkspace(c)
	ws.Cart.AddToCart(c.Request.Context(), req.ProductID, req.Quantity, req.Price, req.ImageURL, req.ProductName)

	msg := ws.Message("cart.added", "Added to cart")
	ws.PushAlert(models.Toast(models.AlertSuccess, msg))
	respond(c, http.StatusOK, msg, cartSummary(ws.Cart))
}

// @Summary Change line quantity
// @Description Adds a signed delta; a result of zero or less removes the line
// @Tags Cart
// @Accept json
// @Produce json
// @Param productId path int true "Product ID"
// @Param request body models.UpdateQuantityRequest true "Quantity delta"
// @Success 200 {object} models.Response{data=models.CartSummary}
// @Router /cart/items/{productId} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	id, err := paramID(c, "productId")
	if err != nil {
		respondError(c, err)
		return
	}
	var req models.UpdateQuantityRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	ws := middleware.GetWorkspace(c)
	ws.Cart.UpdateQuantity(c.Request.Context(), id, req.Delta)
	respond(c, http.StatusOK, "Cart updated", cartSummary(ws.Cart))
}

// @Summary Remove cart line
// @Tags Cart
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response{data=models.CartSummary}
// @Router /cart/items/{productId} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	id, err := paramID(c, "productId")
	if err != nil {
		respondError(c, err)
		return
	}
	ws := middleware.GetWorkspace(c)
	ws.Cart.RemoveFromCart(c.Request.Context(), id)
	respond(c, http.StatusOK, "Item removed", cartSummary(ws.Cart))
}

// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response{data=models.CartSummary}
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	ws.Cart.ClearCart(c.Request.Context())
	respond(c, http.StatusOK, "Cart cleared", cartSummary(ws.Cart))
}
