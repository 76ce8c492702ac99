package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"record-store/internal/domain"
	"record-store/internal/pricing"
	"record-store/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "cart_session"

type Handler struct {
	checkout   *services.CheckoutService
	cart       *services.CartService
	adminToken string
}

func NewHandler(checkout *services.CheckoutService, cart *services.CartService, adminToken string) *Handler {
	return &Handler{checkout: checkout, cart: cart, adminToken: adminToken}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/products/:id", h.GetProduct)

	r.GET("/cart", h.GetCart)
	r.POST("/cart/items", h.AddCartItem)
	r.PATCH("/cart/items/:productId", h.UpdateCartItem)
	r.DELETE("/cart/items/:productId", h.RemoveCartItem)

	r.POST("/checkout", h.Checkout)
	r.GET("/orders", h.ListOrders)
	r.GET("/orders/:id", h.GetOrder)

	admin := r.Group("/admin", h.requireAdmin)
	admin.GET("/orders", h.AdminListOrders)
	admin.PATCH("/orders/:id/status", h.AdminUpdateStatus)
	admin.GET("/inventory/low-stock", h.AdminLowStock)
}

// sessionID reads the cart session cookie, minting one on first contact.
func (h *Handler) sessionID(c *gin.Context) string {
	sid, err := c.Cookie(sessionCookie)
	if err != nil || sid == "" {
		sid = uuid.NewString()
		c.SetCookie(sessionCookie, sid, int((24 * time.Hour).Seconds()), "/", "", false, true)
	}
	return sid
}

// userID trusts the upstream auth proxy to set X-User-ID. Authentication
// itself is outside this service.
func userID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.GetHeader("X-User-ID"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) isAdmin(c *gin.Context) bool {
	return h.adminToken != "" && c.GetHeader("X-Admin-Token") == h.adminToken
}

func (h *Handler) requireAdmin(c *gin.Context) {
	if !h.isAdmin(c) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
	c.Next()
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.cart.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) GetCart(c *gin.Context) {
	sid := h.sessionID(c)

	cart, err := h.cart.GetCart(c.Request.Context(), sid)
	if err != nil {
		h.respondError(c, err)
		return
	}

	method := domain.ShippingMethod(c.DefaultQuery("shipping_method", string(domain.ShippingStandard)))
	if !method.Valid() {
		method = domain.ShippingStandard
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":   cart,
		"totals": pricing.ComputeTotals(cart.Items, method),
	})
}

func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.cart.AddItem(c.Request.Context(), h.sessionID(c), req.ProductID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := h.cart.UpdateQuantity(c.Request.Context(), h.sessionID(c), productID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	cart, err := h.cart.RemoveItem(c.Request.Context(), h.sessionID(c), productID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.checkout.PlaceOrder(c.Request.Context(), uid, h.sessionID(c), req.toInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CheckoutResponse{OrderID: order.ID})
}

func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	orders, err := h.checkout.ListOrders(c.Request.Context(), uid)
	if err != nil {
		h.respondError(c, err)
		return
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, OrderSummary{
			ID:         o.ID,
			Date:       o.CreatedAt.Format("Jan 02, 2006"),
			Status:     string(o.Status),
			Total:      o.Total.StringFixed(2),
			ItemsCount: len(o.Items),
		})
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := h.checkout.GetOrder(c.Request.Context(), id, uid, h.isAdmin(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) AdminListOrders(c *gin.Context) {
	status := domain.OrderStatus(c.Query("status"))

	orders, counts, err := h.checkout.AdminListOrders(c.Request.Context(), status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":       orders,
		"statusCounts": counts,
		"statuses":     domain.OrderStatuses,
	})
}

func (h *Handler) AdminUpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.checkout.UpdateStatus(c.Request.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) AdminLowStock(c *gin.Context) {
	threshold, err := strconv.ParseInt(c.DefaultQuery("threshold", "5"), 10, 64)
	if err != nil || threshold < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid threshold"})
		return
	}

	products, err := h.cart.LowStockProducts(c.Request.Context(), threshold)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// respondError maps the service error taxonomy onto HTTP codes. Storage
// failures stay generic: the transaction already rolled back and the caller
// may simply retry the checkout.
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Fields})
		return
	}

	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrItemNotInCart):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order failed, please try again"})
	}
}
