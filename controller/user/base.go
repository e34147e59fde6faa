package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type BaseApi struct{}

// Health 健康检查
func (d *BaseApi) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
