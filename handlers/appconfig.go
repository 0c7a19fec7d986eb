package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"shootday/config"
	"shootday/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// clientConfig is the set of script URLs the mobile client talks to
// directly for plain reads. Computed once per process and cached.
type clientConfig struct {
	Creators   string `json:"creators"`
	BrandIP    string `json:"brandIp"`
	MyDay      string `json:"myDay"`
	Attendance string `json:"attendance"`
}

// ClientConfigHandler serves GET /api/config.
func (hb *HandlerBundle) ClientConfigHandler(c *gin.Context) {
	ctx := c.Request.Context()
	cache := utils.GetCacheClient()

	if data, err := cache.Get(ctx, utils.ClientConfigCacheKey).Result(); err == nil {
		var cached clientConfig
		if json.Unmarshal([]byte(data), &cached) == nil {
			c.JSON(http.StatusOK, gin.H{"ok": true, "config": cached})
			return
		}
	}

	cfg := clientConfig{
		Creators:   config.AppConfig.CreatorsScriptURL,
		BrandIP:    config.AppConfig.BrandScriptURL,
		MyDay:      config.AppConfig.MyDayScriptURL,
		Attendance: config.AppConfig.AttendanceScriptURL,
	}
	go cacheClientConfig(cfg)
	c.JSON(http.StatusOK, gin.H{"ok": true, "config": cfg})
}

func cacheClientConfig(cfg clientConfig) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := utils.GetCacheClient().Set(ctx, utils.ClientConfigCacheKey, data, 0).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache client config", zap.Error(err))
	}
}
