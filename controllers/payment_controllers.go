package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JarkkoKarki/Web-Project-Backend/models"
	"github.com/JarkkoKarki/Web-Project-Backend/services"
	"github.com/JarkkoKarki/Web-Project-Backend/utils"
)

type PaymentController struct {
	DB       *gorm.DB
	Checkout *services.CheckoutService
}

func NewPaymentController(db *gorm.DB, checkout *services.CheckoutService) *PaymentController {
	return &PaymentController{DB: db, Checkout: checkout}
}

// CreateCheckoutSession -> POST /payment/create-checkout-session.
// Repeated product ids in the request raise the quantity of that line.
// Prices always come from the catalog, never from the client.
func (pc *PaymentController) CreateCheckoutSession(c *gin.Context) {
	var req struct {
		ProductIDs []uint `json:"productIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(req.ProductIDs) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no products provided"))
		return
	}

	quantities := make(map[uint]int)
	for _, id := range req.ProductIDs {
		quantities[id]++
	}

	ids := make([]uint, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}

	var products []models.Product
	if err := pc.DB.Find(&products, ids).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(products) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no valid products found"))
		return
	}

	url, err := pc.Checkout.CreateSession(products, quantities)
	if err != nil {
		utils.ErrorLogger.Printf("Checkout session creation failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("payment failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
