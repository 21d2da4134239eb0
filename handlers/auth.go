package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maktabat-alamal/storefront/internal/tokens"
	"github.com/maktabat-alamal/storefront/pkg/logger"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the credentials against the users collection and issues an
// access token for the back office.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, u := range h.store.FetchUsers(c.Request.Context()) {
		if u.Username != req.Username || u.Password != req.Password {
			continue
		}
		token, err := tokens.Generate(h.cfg.JWT.Secret, &u, h.cfg.JWT.AccessTokenTTL)
		if err != nil {
			logger.Errorf("token generation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
			return
		}
		u.Password = ""
		c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
		return
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": "اسم المستخدم أو كلمة المرور غير صحيحة"})
}
