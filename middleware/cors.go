package middleware

import (
	"net/http"
	"time"

	"gitee.com/taoJie_1/salon-agent/global"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CorsHandle 跨域中间件, 允许的来源取自配置
func CorsHandle() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.MaxAge = 12 * time.Hour

	if len(global.Config.Cors) == 1 && global.Config.Cors[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = global.Config.Cors
	}

	return cors.New(cfg)
}

// OptionsMethod 预检请求直接放行
func OptionsMethod(ctx *gin.Context) {
	if ctx.Request.Method == http.MethodOptions {
		ctx.AbortWithStatus(http.StatusNoContent)
		return
	}
	ctx.Next()
}
