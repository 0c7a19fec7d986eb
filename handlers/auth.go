package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"shootday/config"
	"shootday/models"
	"shootday/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoginHandler hashes the password and delegates the actual check to
// the external auth script. This service never stores or compares a
// password itself; the SHA-256 digest is the wire contract.
func (hb *HandlerBundle) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "email and password are required"})
		return
	}
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "email and password are required"})
		return
	}

	sum := sha256.Sum256([]byte(input.Password))
	resp, err := hb.Gateway.PostTo(c.Request.Context(), config.AppConfig.AuthScriptURL, map[string]interface{}{
		"action":        "login",
		"email":         input.Email,
		"password_hash": hex.EncodeToString(sum[:]),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var result struct {
		OK      bool           `json:"ok"`
		User    models.Session `json:"user"`
		Message string         `json:"message"`
	}
	if err := resp.Decode(&result); err != nil {
		respondServiceError(c, err)
		return
	}
	if !result.OK || result.User.Email == "" {
		message := result.Message
		if message == "" {
			message = "invalid credentials"
		}
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": message})
		return
	}

	token, err := utils.GenerateSessionToken(result.User, utils.SessionTTL)
	if err != nil {
		utils.GetLogger().Error("failed to mint session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "internal error"})
		return
	}
	if err := utils.SaveSession(utils.GetSessionCacheClient(), utils.HashToken(token), result.User); err != nil {
		utils.GetLogger().Error("failed to cache session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": result.User, "token": token})
}

// LogoutHandler drops the cached session, invalidating the token
// server-side.
func (hb *HandlerBundle) LogoutHandler(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" || tokenString == authHeader {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "no session token"})
		return
	}
	if err := utils.DeleteSession(utils.GetSessionCacheClient(), utils.HashToken(tokenString)); err != nil {
		utils.GetLogger().Warn("failed to delete session", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
