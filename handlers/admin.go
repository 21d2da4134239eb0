package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maktabat-alamal/storefront/internal/menus"
	"github.com/maktabat-alamal/storefront/internal/models"
	"github.com/maktabat-alamal/storefront/pkg/logger"
)

// Collection saves are whole-collection replacements, mirroring how the
// back office edits data: load, edit in the UI, write the lot back.

func (h *Handler) SaveProducts(c *gin.Context) {
	var products []models.Product
	if err := c.ShouldBindJSON(&products); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SaveProducts(c.Request.Context(), products); err != nil {
		logger.Errorf("save products failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "حدث خطأ أثناء الحفظ"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": len(products)})
}

func (h *Handler) SaveCategories(c *gin.Context) {
	var categories []models.Category
	if err := c.ShouldBindJSON(&categories); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SaveCategories(c.Request.Context(), categories); err != nil {
		logger.Errorf("save categories failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "حدث خطأ أثناء الحفظ"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": len(categories)})
}

func (h *Handler) ListCoupons(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.FetchCoupons(c.Request.Context()))
}

func (h *Handler) SaveCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := c.ShouldBindJSON(&coupons); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SaveCoupons(c.Request.Context(), coupons); err != nil {
		logger.Errorf("save coupons failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "حدث خطأ أثناء الحفظ"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": len(coupons)})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users := h.store.FetchUsers(c.Request.Context())
	// never hand passwords back to the browser
	out := make([]models.User, len(users))
	for i, u := range users {
		u.Password = ""
		out[i] = u
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) SaveUsers(c *gin.Context) {
	var users []models.User
	if err := c.ShouldBindJSON(&users); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SaveUsers(c.Request.Context(), users); err != nil {
		logger.Errorf("save users failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "حدث خطأ أثناء الحفظ"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": len(users)})
}

// ---- orders ----

func (h *Handler) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.FetchOrders(c.Request.Context()))
}

func (h *Handler) SaveOrders(c *gin.Context) {
	var orders []models.Order
	if err := c.ShouldBindJSON(&orders); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SaveOrders(c.Request.Context(), orders); err != nil {
		logger.Errorf("save orders failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "حدث خطأ أثناء الحفظ"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": len(orders)})
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Status {
	case models.OrderStatusNew, models.OrderStatusPreparing, models.OrderStatusShipped, models.OrderStatusCompleted:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	id := c.Param("id")
	var updated models.Order
	err := h.store.Update(c.Request.Context(), func(d *models.Document) error {
		for i := range d.Orders {
			if d.Orders[i].ID == id {
				d.Orders[i].Status = req.Status
				updated = d.Orders[i]
				return nil
			}
		}
		return errNotFound
	})
	if errors.Is(err, errNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if err != nil {
		logger.Errorf("order status save failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "حدث خطأ أثناء الحفظ"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ---- notifications ----

func (h *Handler) ListNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.FetchNotifications(c.Request.Context()))
}

type notificationRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	Type    string `json:"type"`
}

func (h *Handler) CreateNotification(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type == "" {
		req.Type = "info"
	}
	n := models.Notification{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Message:   req.Message,
		Type:      req.Type,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	err := h.store.Update(c.Request.Context(), func(d *models.Document) error {
		d.Notifications = append(d.Notifications, n)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "حدث خطأ أثناء الحفظ"})
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *Handler) SaveNotifications(c *gin.Context) {
	var notifications []models.Notification
	if err := c.ShouldBindJSON(&notifications); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SaveNotifications(c.Request.Context(), notifications); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "حدث خطأ أثناء الحفظ"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": len(notifications)})
}

// ---- menus ----

func (h *Handler) CreateMenu(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.ID = ""
	id, err := h.menus.Save(c.Request.Context(), item)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "حدث خطأ أثناء الحفظ"})
		return
	}
	item.ID = id
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateMenu(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.ID = c.Param("id")
	if _, err := h.menus.Save(c.Request.Context(), item); err != nil {
		if errors.Is(err, menus.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "حدث خطأ أثناء الحفظ"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteMenu(c *gin.Context) {
	if err := h.menus.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, menus.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "حدث خطأ أثناء الحذف"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- maintenance ----

func (h *Handler) Sync(c *gin.Context) {
	h.store.SyncAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "synced"})
}

func (h *Handler) Seed(c *gin.Context) {
	if err := h.cache.Seed(c.Request.Context()); err != nil {
		logger.Errorf("seed failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "seed failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "seeded"})
}

// ---- backups ----

func (h *Handler) CreateBackup(c *gin.Context) {
	if h.backups == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "backup storage not configured"})
		return
	}
	ctx := c.Request.Context()
	key, err := h.backups.Backup(ctx, h.cache.Get(ctx))
	if err != nil {
		logger.Errorf("backup failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "backup failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key})
}

func (h *Handler) ListBackups(c *gin.Context) {
	if h.backups == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "backup storage not configured"})
		return
	}
	keys, err := h.backups.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"backups": keys})
}

type restoreRequest struct {
	Key string `json:"key" binding:"required"`
}

func (h *Handler) RestoreBackup(c *gin.Context) {
	if h.backups == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "backup storage not configured"})
		return
	}
	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	doc, err := h.backups.Restore(ctx, req.Key)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "restore failed"})
		return
	}
	if err := h.cache.Put(ctx, doc); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "حدث خطأ أثناء الحفظ"})
		return
	}
	h.store.SyncAll(ctx)
	c.JSON(http.StatusOK, gin.H{"restored": req.Key})
}
