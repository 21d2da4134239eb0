// Package handlers exposes the storefront and back-office HTTP API.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/maktabat-alamal/storefront/internal/backup"
	"github.com/maktabat-alamal/storefront/internal/cache"
	"github.com/maktabat-alamal/storefront/internal/config"
	"github.com/maktabat-alamal/storefront/internal/data"
	"github.com/maktabat-alamal/storefront/internal/menus"
	"github.com/maktabat-alamal/storefront/pkg/middleware"
)

// Handler bundles the services every route needs.
type Handler struct {
	cfg     *config.Config
	store   *data.Store
	cache   *cache.Manager
	menus   menus.Repository
	backups *backup.Service // nil when object storage is not configured
}

func NewHandler(cfg *config.Config, store *data.Store, c *cache.Manager, mr menus.Repository, b *backup.Service) *Handler {
	return &Handler{cfg: cfg, store: store, cache: c, menus: mr, backups: b}
}

// Register wires all routes. Admin routes sit behind the token verifier;
// destructive operations additionally require the admin role.
func (h *Handler) Register(r *gin.Engine, ver middleware.Verifier) {
	api := r.Group("/api")

	// public storefront
	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/categories", h.ListCategories)
	api.GET("/menus", h.ListMenus)
	api.GET("/forum", h.ListForumPosts)
	api.POST("/forum", h.CreateForumPost)
	api.POST("/forum/:id/replies", h.CreateForumReply)
	api.POST("/coupons/preview", h.PreviewCoupon)
	api.POST("/checkout", h.Checkout)
	api.POST("/login", h.Login)

	admin := api.Group("/admin", middleware.AuthMiddleware(ver))
	admin.GET("/orders", h.ListOrders)
	admin.PUT("/orders", h.SaveOrders)
	admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	admin.PUT("/products", h.SaveProducts)
	admin.PUT("/categories", h.SaveCategories)
	admin.PUT("/coupons", h.SaveCoupons)
	admin.GET("/coupons", h.ListCoupons)
	admin.GET("/notifications", h.ListNotifications)
	admin.POST("/notifications", h.CreateNotification)
	admin.PUT("/notifications", h.SaveNotifications)
	admin.POST("/menus", h.CreateMenu)
	admin.PUT("/menus/:id", h.UpdateMenu)
	admin.DELETE("/menus/:id", h.DeleteMenu)
	admin.POST("/sync", h.Sync)

	restricted := admin.Group("", middleware.RequireRole("admin"))
	restricted.GET("/users", h.ListUsers)
	restricted.PUT("/users", h.SaveUsers)
	restricted.POST("/seed", h.Seed)
	restricted.POST("/backup", h.CreateBackup)
	restricted.GET("/backups", h.ListBackups)
	restricted.POST("/backups/restore", h.RestoreBackup)
}
