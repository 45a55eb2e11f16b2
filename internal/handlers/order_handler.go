package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"

	"zeddream-backend/internal/auth"
	"zeddream-backend/internal/models"
	"zeddream-backend/internal/services"
)

// OrderHandler handles checkout, order tracking and QR delivery confirmation
type OrderHandler struct {
	orderService *services.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// Create places a new order.
// POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	var req struct {
		OrderItems []struct {
			ProductID uint            `json:"product_id" binding:"required"`
			Name      string          `json:"name" binding:"required"`
			Quantity  int             `json:"quantity" binding:"required,min=1"`
			Image     string          `json:"image"`
			Price     decimal.Decimal `json:"price" binding:"required"`
			Size      string          `json:"size"`
			Color     string          `json:"color"`
		} `json:"orderItems" binding:"required"`
		ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
		PaymentMethod   string                 `json:"paymentMethod"`
		TotalPrice      decimal.Decimal        `json:"totalPrice" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if len(req.OrderItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No order items"})
		return
	}

	items := make([]models.OrderItem, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Image:     item.Image,
			Price:     item.Price,
			Size:      item.Size,
			Color:     item.Color,
		})
	}

	order, err := h.orderService.Create(userID, services.CreateOrderInput{
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		TotalPrice:      req.TotalPrice,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetMyOrders lists the authenticated user's orders.
// GET /api/orders/myorders
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	orders, err := h.orderService.GetMyOrders(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to get orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetByID returns a single order; only the owner or an admin may read it.
// GET /api/orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	order, ok := h.loadOrder(c)
	if !ok {
		return
	}

	role, _ := auth.GetRole(c)
	if order.UserID != userID && role != "admin" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetQRImage renders the order's delivery confirmation token as a QR PNG, for
// printing on the package slip.
// GET /api/orders/:id/qr
func (h *OrderHandler) GetQRImage(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	order, ok := h.loadOrder(c)
	if !ok {
		return
	}

	role, _ := auth.GetRole(c)
	if order.UserID != userID && role != "admin" && role != "staff" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized"})
		return
	}

	png, err := qrcode.Encode(order.QRCode, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to render QR code"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=order-%d.png", order.ID))
	c.Data(http.StatusOK, "image/png", png)
}

// ScanQR confirms delivery from a scanned QR token and awards points.
// POST /api/orders/scan-qr
func (h *OrderHandler) ScanQR(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	var req struct {
		QRCode string `json:"qrCode" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "QR Code is required"})
		return
	}

	order, err := h.orderService.ScanQR(userID, req.QRCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Invalid QR Code"})
		case errors.Is(err, services.ErrNotOwner):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "This order does not belong to you"})
		case errors.Is(err, services.ErrAlreadyScanned):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "QR Code already scanned"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to scan QR code"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("QR Scanned! You earned %d points.", services.DeliveryConfirmPoints),
		"data":    order,
	})
}

// ListAll returns every order for the staff dashboard.
// GET /api/orders
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.orderService.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to get orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(orders),
		"data":    orders,
	})
}

// UpdateStatus moves an order through the delivery pipeline.
// PUT /api/orders/:id
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid order id"})
		return
	}

	var req struct {
		Status         string `json:"status"`
		TrackingNumber string `json:"trackingNumber"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	order, err := h.orderService.UpdateStatus(uint(orderID), req.Status, req.TrackingNumber)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// loadOrder parses :id and fetches the order, writing the error response on failure.
func (h *OrderHandler) loadOrder(c *gin.Context) (*models.Order, bool) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid order id"})
		return nil, false
	}

	order, err := h.orderService.GetByID(uint(orderID))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to get order"})
		return nil, false
	}

	return order, true
}
