package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JarkkoKarki/Web-Project-Backend/middlewares"
	"github.com/JarkkoKarki/Web-Project-Backend/models"
	"github.com/JarkkoKarki/Web-Project-Backend/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// localizedOrder is the shape served by the language-parameterized order
// listings.
type localizedOrder struct {
	ID         uint                   `json:"id"`
	UserID     uint                   `json:"user_id"`
	Address    string                 `json:"address"`
	Name       string                 `json:"name"`
	Email      string                 `json:"email"`
	Phone      string                 `json:"phone"`
	TotalPrice float64                `json:"total_price"`
	Status     string                 `json:"status"`
	CreatedAt  string                 `json:"created_at"`
	Lines      []models.LocalizedLine `json:"lines"`
}

func localizeOrders(orders []models.Order, lang string) []localizedOrder {
	out := make([]localizedOrder, 0, len(orders))
	for _, o := range orders {
		lo := localizedOrder{
			ID:         o.ID,
			UserID:     o.UserID,
			Address:    o.Address,
			Name:       o.Name,
			Email:      o.Email,
			Phone:      o.Phone,
			TotalPrice: o.TotalPrice,
			Status:     o.Status,
			CreatedAt:  o.CreatedAt.Format("2006-01-02 15:04:05"),
			Lines:      make([]models.LocalizedLine, 0, len(o.Lines)),
		}
		for _, l := range o.Lines {
			lo.Lines = append(lo.Lines, l.Localized(lang))
		}
		out = append(out, lo)
	}
	return out
}

func orderLang(c *gin.Context) string {
	if c.Param("lang") == "fi" {
		return "fi"
	}
	return "en"
}

// CreateOrder -> validate the cart, price it from the live catalog and
// persist header plus lines in one transaction. The client never supplies
// the total; an unknown product id aborts the whole order.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID := middlewares.ContextUserID(c)
	if userID == 0 {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not authenticated"))
		return
	}

	type itemReq struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	var body struct {
		Items   []itemReq `json:"items" binding:"required"`
		Address string    `json:"address"`
		Name    string    `json:"name"`
		Email   string    `json:"email"`
		Phone   string    `json:"phone"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(body.Items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order must contain at least one item"))
		return
	}

	// Merge duplicate product ids so each product yields one line.
	quantities := make(map[uint]int)
	orderIDs := make([]uint, 0, len(body.Items))
	for _, item := range body.Items {
		if item.Quantity <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("quantity must be a positive integer"))
			return
		}
		if _, seen := quantities[item.ProductID]; !seen {
			orderIDs = append(orderIDs, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}

	order := models.Order{
		UserID:  userID,
		Address: body.Address,
		Name:    body.Name,
		Email:   body.Email,
		Phone:   body.Phone,
		Status:  "pending",
	}

	var errUnknownProduct = errors.New("order references an unknown product")

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		var total float64
		lines := make([]models.OrderLine, 0, len(orderIDs))
		for _, productID := range orderIDs {
			var product models.Product
			if err := tx.First(&product, productID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %d", errUnknownProduct, productID)
				}
				return err
			}
			qty := quantities[productID]
			total += product.Price * float64(qty)
			lines = append(lines, models.OrderLine{
				ProductID: product.ID,
				Quantity:  qty,
				NameFi:    product.NameFi,
				NameEn:    product.NameEn,
				DescFi:    product.DescFi,
				DescEn:    product.DescEn,
				Price:     product.Price,
			})
		}

		order.TotalPrice = total
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}
		order.Lines = lines
		return nil
	})
	if err != nil {
		if errors.Is(err, errUnknownProduct) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %d created for user %d (total=%.2f)", order.ID, userID, order.TotalPrice)

	utils.RespondJSON(c, http.StatusCreated, "Order created", gin.H{
		"order_id":    order.ID,
		"total_price": order.TotalPrice,
	})
}

// GetAllOrders -> GET /orders/:lang, staff only
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	if !middlewares.ContextRole(c).Staff() {
		utils.RespondError(c, http.StatusForbidden, errors.New("insufficient permissions"))
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("Lines").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", localizeOrders(orders, orderLang(c)))
}

// GetMyOrders -> GET /orders/myorders/:lang, the caller's own orders
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID := middlewares.ContextUserID(c)
	if userID == 0 {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not authenticated"))
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("Lines").Where("user_id = ?", userID).Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My orders", localizeOrders(orders, orderLang(c)))
}

// UpdateOrder -> PUT /orders/:id, staff only; status and delivery fields
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	if !middlewares.ContextRole(c).Staff() {
		utils.RespondError(c, http.StatusForbidden, errors.New("insufficient permissions"))
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	var req struct {
		Status  *string `json:"status"`
		Address *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.Address != nil {
		order.Address = *req.Address
	}

	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}
