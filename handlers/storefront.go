package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maktabat-alamal/storefront/internal/checkout"
	"github.com/maktabat-alamal/storefront/internal/models"
	"github.com/maktabat-alamal/storefront/pkg/logger"
)

// errNotFound signals a missing record from inside a store Update mutate.
var errNotFound = errors.New("record not found")

// ListProducts serves the catalog. Plain reads come from the snapshot so the
// page renders even while the remote store is down; pass ?fresh=1 to force a
// read through the cache.
func (h *Handler) ListProducts(c *gin.Context) {
	var products []models.Product
	if c.Query("fresh") != "" {
		products = h.store.FetchProducts(c.Request.Context())
	} else {
		products = h.store.Products()
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	for _, p := range h.store.FetchProducts(c.Request.Context()) {
		if p.ID == id {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Categories())
}

func (h *Handler) ListMenus(c *gin.Context) {
	items, err := h.menus.List(c.Request.Context())
	if err != nil {
		logger.Errorf("menus list failed: %v", err)
		c.JSON(http.StatusOK, models.DefaultMenus())
		return
	}
	c.JSON(http.StatusOK, items)
}

// ---- forum ----

func (h *Handler) ListForumPosts(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.FetchForumPosts(c.Request.Context()))
}

type forumPostRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Author   string `json:"author" binding:"required"`
	Category string `json:"category"`
}

func (h *Handler) CreateForumPost(c *gin.Context) {
	var req forumPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post := models.ForumPost{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		Author:    req.Author,
		Category:  req.Category,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Replies:   []models.ForumReply{},
	}
	err := h.store.Update(c.Request.Context(), func(d *models.Document) error {
		d.ForumPosts = append(d.ForumPosts, post)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save post"})
		return
	}
	c.JSON(http.StatusCreated, post)
}

type forumReplyRequest struct {
	Content string `json:"content" binding:"required"`
	Author  string `json:"author" binding:"required"`
}

func (h *Handler) CreateForumReply(c *gin.Context) {
	var req forumReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := c.Param("id")
	reply := models.ForumReply{
		ID:        uuid.NewString(),
		Content:   req.Content,
		Author:    req.Author,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	err := h.store.Update(c.Request.Context(), func(d *models.Document) error {
		for i := range d.ForumPosts {
			if d.ForumPosts[i].ID == id {
				d.ForumPosts[i].Replies = append(d.ForumPosts[i].Replies, reply)
				return nil
			}
		}
		return errNotFound
	})
	if errors.Is(err, errNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save reply"})
		return
	}
	c.JSON(http.StatusCreated, reply)
}

// ---- checkout ----

type previewRequest struct {
	Code  string            `json:"code" binding:"required"`
	Items []models.CartItem `json:"items" binding:"required"`
}

// PreviewCoupon prices a cart against a coupon code without placing an order.
func (h *Handler) PreviewCoupon(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	coupons := h.store.FetchCoupons(c.Request.Context())
	coupon, err := checkout.ApplyCoupon(coupons, req.Code, checkout.Subtotal(req.Items), time.Now())
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": couponMessage(err)})
		return
	}
	c.JSON(http.StatusOK, checkout.Totals(req.Items, coupon))
}

type checkoutRequest struct {
	Customer      string            `json:"customer" binding:"required"`
	Phone         string            `json:"phone" binding:"required"`
	Address       string            `json:"address" binding:"required"`
	PaymentMethod string            `json:"paymentMethod" binding:"required"`
	Notes         string            `json:"notes"`
	Coupon        string            `json:"coupon"`
	Items         []models.CartItem `json:"items" binding:"required"`
}

// Checkout validates the coupon (when given), prices the cart, appends the
// order and bumps the coupon's usage counter.
func (h *Handler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	}
	ctx := c.Request.Context()

	var coupon *models.Coupon
	if req.Coupon != "" {
		var err error
		coupon, err = checkout.ApplyCoupon(h.store.FetchCoupons(ctx), req.Coupon, checkout.Subtotal(req.Items), time.Now())
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": couponMessage(err)})
			return
		}
	}

	sum := checkout.Totals(req.Items, coupon)
	order := checkout.NewOrder(req.Items, sum, checkout.CustomerInfo{
		Name:          req.Customer,
		Phone:         req.Phone,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}, coupon, time.Now())

	// one atomic cycle: the order and the coupon counter land together, and
	// parallel checkouts cannot overwrite each other's append
	err := h.store.Update(ctx, func(d *models.Document) error {
		d.Orders = append(d.Orders, order)
		if coupon != nil {
			for i := range d.Coupons {
				if d.Coupons[i].Code == coupon.Code {
					d.Coupons[i].UsedCount++
				}
			}
		}
		return nil
	})
	if err != nil {
		logger.Errorf("checkout: order save failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "حدث خطأ أثناء الحفظ"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

func couponMessage(err error) string {
	switch {
	case errors.Is(err, checkout.ErrUnknownCoupon), errors.Is(err, checkout.ErrCouponInactive), errors.Is(err, checkout.ErrCouponExpired):
		return "كود خصم غير صالح"
	case errors.Is(err, checkout.ErrBelowMinimum):
		return "قيمة الطلب أقل من الحد الأدنى للكوبون"
	case errors.Is(err, checkout.ErrCouponExhausted):
		return "تم استنفاد هذا الكوبون"
	default:
		return "حدث خطأ أثناء التحقق من الكوبون"
	}
}
