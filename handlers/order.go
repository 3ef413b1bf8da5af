package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/bean-buzz/beanbuzz-backend/database"
	"github.com/bean-buzz/beanbuzz-backend/models"
	"github.com/bean-buzz/beanbuzz-backend/statemachine"
)

// OrderHandler serves order placement and the order lifecycle.
type OrderHandler struct {
	orders database.OrderStore
	menu   database.MenuStore
	logger *zap.Logger
}

// NewOrderHandler wires the order workflow endpoints.
func NewOrderHandler(orders database.OrderStore, menu database.MenuStore, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, menu: menu, logger: logger}
}

// generateCashTransferCode builds the reconciliation code staff use to
// match cash drops to orders: CTR-<YYYYMMDD>-<table|N/A>-<6 hex>.
// Uniqueness is enforced by the storage layer, not by retry.
func generateCashTransferCode(tableNumber string) (string, error) {
	date := time.Now().UTC().Format("20060102")
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate cash transfer code: %w", err)
	}
	table := tableNumber
	if table == "" {
		table = "N/A"
	}
	return fmt.Sprintf("CTR-%s-%s-%s", date, table, strings.ToUpper(hex.EncodeToString(buf))), nil
}

type orderItemRequest struct {
	MenuItem            string `json:"menuItem"`
	Size                string `json:"size"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions"`
}

type createOrderRequest struct {
	TableNumber         string               `json:"tableNumber"`
	CustomerName        string               `json:"customerName"`
	Items               []orderItemRequest   `json:"items"`
	SpecialInstructions string               `json:"specialInstructions"`
	PaymentMethod       models.PaymentMethod `json:"paymentMethod"`
}

// requestError carries a status code alongside the message so the pricing
// helper can be shared between Create and Update.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

// priceItems validates every line against the menu catalog and computes
// line and total prices. A missing menu item or a bad size key fails the
// whole request; nothing is persisted.
func (h *OrderHandler) priceItems(c *gin.Context, reqItems []orderItemRequest) ([]models.OrderItem, float64, *requestError) {
	var items []models.OrderItem
	var total float64

	for _, reqItem := range reqItems {
		id, err := primitive.ObjectIDFromHex(reqItem.MenuItem)
		if err != nil {
			return nil, 0, &requestError{http.StatusBadRequest, "Invalid menu item id " + reqItem.MenuItem + "."}
		}
		if reqItem.Quantity < 1 {
			return nil, 0, &requestError{http.StatusBadRequest, "Quantity must be at least 1."}
		}

		menuItem, err := h.menu.FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, 0, &requestError{http.StatusNotFound, "Menu item with ID " + reqItem.MenuItem + " not found."}
			}
			h.logger.Error("order pricing: find menu item", zap.Error(err))
			return nil, 0, &requestError{http.StatusInternalServerError, "Internal server error."}
		}

		unit, err := menuItem.PriceFor(reqItem.Size)
		if err != nil {
			return nil, 0, &requestError{
				http.StatusBadRequest,
				"Invalid size " + reqItem.Size + " for menu item " + menuItem.ItemName + ".",
			}
		}

		linePrice := unit * float64(reqItem.Quantity)
		total += linePrice
		items = append(items, models.OrderItem{
			MenuItem:            id,
			Size:                reqItem.Size,
			Quantity:            reqItem.Quantity,
			Price:               linePrice,
			SpecialInstructions: reqItem.SpecialInstructions,
		})
	}
	return items, total, nil
}

// Create places a new order
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Customer name and items are required."})
		return
	}
	if req.CustomerName == "" || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Customer name and items are required."})
		return
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.MethodCash
	}
	switch paymentMethod {
	case models.MethodCash, models.MethodCard, models.MethodOnline:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payment method " + string(paymentMethod) + "."})
		return
	}

	items, total, reqErr := h.priceItems(c, req.Items)
	if reqErr != nil {
		c.JSON(reqErr.status, gin.H{"message": reqErr.message})
		return
	}

	order := &models.Order{
		TableNumber:         req.TableNumber,
		CustomerName:        req.CustomerName,
		Items:               items,
		TotalPrice:          total,
		OrderStatus:         models.OrderPending,
		PaymentStatus:       models.PaymentPending,
		PaymentMethod:       paymentMethod,
		SpecialInstructions: req.SpecialInstructions,
	}

	// Cash orders get their transfer code exactly once, here at creation
	if paymentMethod == models.MethodCash {
		code, err := generateCashTransferCode(req.TableNumber)
		if err != nil {
			h.logger.Error("order create: cash transfer code", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
			return
		}
		order.CashTransferCode = code
	}

	created, err := h.orders.Create(c.Request.Context(), order)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"message": "Order could not be created, please try again."})
			return
		}
		h.logger.Error("order create", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List returns all orders, optionally narrowed by equality filters
// (staff or admin only). Each query parameter filters its own field and
// the filters combine with AND.
func (h *OrderHandler) List(c *gin.Context) {
	filter := database.OrderFilter{
		OrderStatus:   c.Query("orderStatus"),
		PaymentStatus: c.Query("paymentStatus"),
		PaymentMethod: c.Query("paymentMethod"),
		CustomerName:  c.Query("customerName"),
		TableNumber:   c.Query("tableNumber"),
	}

	orders, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("order list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// Get returns a single order by id
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order id."})
		return
	}
	order, err := h.orders.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found."})
			return
		}
		h.logger.Error("order get", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	c.JSON(http.StatusOK, order)
}

type updateOrderRequest struct {
	OrderStatus         *models.OrderStatus   `json:"orderStatus"`
	PaymentStatus       *models.PaymentStatus `json:"paymentStatus"`
	PaymentMethod       *models.PaymentMethod `json:"paymentMethod"`
	SpecialInstructions *string               `json:"specialInstructions"`
	Items               []orderItemRequest    `json:"items"`
}

// Update partially updates an order (staff or admin only). Supplying items
// replaces the line items wholesale and reprices the order; a missing
// referenced menu item aborts the whole update.
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order id."})
		return
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	order, err := h.orders.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found."})
			return
		}
		h.logger.Error("order update: find order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	if req.OrderStatus != nil {
		if err := statemachine.CanTransitionOrder(order.OrderStatus, *req.OrderStatus); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		order.OrderStatus = *req.OrderStatus
	}
	if req.PaymentStatus != nil {
		if err := statemachine.CanTransitionPayment(order.PaymentStatus, *req.PaymentStatus); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		order.PaymentStatus = *req.PaymentStatus
	}
	if req.PaymentMethod != nil {
		// The cash transfer code is never regenerated, even when the
		// payment method changes after creation
		order.PaymentMethod = *req.PaymentMethod
	}
	if req.SpecialInstructions != nil {
		order.SpecialInstructions = *req.SpecialInstructions
	}
	if len(req.Items) > 0 {
		items, total, reqErr := h.priceItems(c, req.Items)
		if reqErr != nil {
			c.JSON(reqErr.status, gin.H{"message": reqErr.message})
			return
		}
		order.Items = items
		order.TotalPrice = total
	}

	updated, err := h.orders.Save(c.Request.Context(), order)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found."})
			return
		}
		h.logger.Error("order update: save", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Submit marks an order as completed and paid in one persisted update
// (staff or admin only)
func (h *OrderHandler) Submit(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order id."})
		return
	}

	order, err := h.orders.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found."})
			return
		}
		h.logger.Error("order submit: find order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	if order.OrderStatus == models.OrderCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order is already completed."})
		return
	}

	order.OrderStatus = models.OrderCompleted
	order.PaymentStatus = models.PaymentPaid

	updated, err := h.orders.Save(c.Request.Context(), order)
	if err != nil {
		h.logger.Error("order submit: save", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes an order by id (staff or admin only)
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order id."})
		return
	}
	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found."})
			return
		}
		h.logger.Error("order delete", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully."})
}
