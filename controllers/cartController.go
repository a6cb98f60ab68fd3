package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pescaderia-api/models"
	"pescaderia-api/repositories"
	"pescaderia-api/services"
)

type CartController struct {
	carts    *services.CartService
	checkout *services.CheckoutService
}

func NewCartController(carts *services.CartService, checkout *services.CheckoutService) *CartController {
	return &CartController{carts: carts, checkout: checkout}
}

// POST /carts — open a new checkout session with an empty cart.
func (ctrl *CartController) CreateCart(c *gin.Context) {
	cart := ctrl.carts.Create()
	c.JSON(http.StatusCreated, cart)
}

// GET /carts/:id
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart, err := ctrl.carts.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// PATCH /carts/:id — set customer name and notes.
func (ctrl *CartController) UpdateCart(c *gin.Context) {
	var input struct {
		Customer string `json:"customer"`
		Notes    string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := ctrl.carts.SetCustomer(c.Param("id"), input.Customer, input.Notes)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// POST /carts/:id/items
func (ctrl *CartController) AddCartItem(c *gin.Context) {
	var input struct {
		Kind     models.ItemKind `json:"kind" binding:"required"`
		ItemID   uint            `json:"item_id" binding:"required"`
		Quantity float64         `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	cart, err := ctrl.carts.AddItem(c.Request.Context(), c.Param("id"), input.Kind, input.ItemID, input.Quantity)
	if err != nil {
		ctrl.renderCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// DELETE /carts/:id/items/:index
func (ctrl *CartController) RemoveCartItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid line index"})
		return
	}

	cart, err := ctrl.carts.RemoveItem(c.Param("id"), index)
	if err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// DELETE /carts/:id — cancel the session.
func (ctrl *CartController) CancelCart(c *gin.Context) {
	if err := ctrl.carts.Cancel(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cancelled"})
}

// POST /carts/:id/checkout
func (ctrl *CartController) CheckoutCart(c *gin.Context) {
	sale, err := ctrl.checkout.Checkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctrl.renderCartError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// renderCartError maps the error taxonomy onto status codes: validation
// failures are 400, missing things 404, stock rejections and duplicate
// submissions 409, everything else a store failure.
func (ctrl *CartController) renderCartError(c *gin.Context, err error) {
	var outOfStock *services.OutOfStockError
	var rejected *repositories.InsufficientStockError

	switch {
	case errors.Is(err, services.ErrCartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
	case errors.Is(err, services.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	case errors.Is(err, services.ErrEmptyCustomer),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &outOfStock):
		c.JSON(http.StatusConflict, gin.H{
			"error":   err.Error(),
			"kind":    outOfStock.Kind,
			"item_id": outOfStock.ItemID,
		})
	case errors.As(err, &rejected):
		c.JSON(http.StatusConflict, gin.H{
			"error":   err.Error(),
			"kind":    rejected.Kind,
			"item_id": rejected.ItemID,
		})
	case errors.Is(err, services.ErrCheckoutInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
