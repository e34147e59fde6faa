package router

import (
	"gitee.com/taoJie_1/salon-agent/controller"
	"gitee.com/taoJie_1/salon-agent/middleware"
	"gitee.com/taoJie_1/salon-agent/model/common"

	"github.com/gin-gonic/gin"
)

func Start(ginServer *gin.Engine) {
	ginServer.Use(middleware.CorsHandle(), middleware.OptionsMethod) //全局中间件

	// 纯API服务, 未知路径统一返回JSON 404
	ginServer.NoRoute(func(ctx *gin.Context) {
		common.FailNotFound(ctx)
	})

	// 对外路径挂在根上, 与既有语音Agent和人工面板的调用约定保持一致
	ginServer.GET("/health", controller.Api.UserApiGroup.BaseApi.Health)

	// 语音Agent侧
	ginServer.POST("/chat", controller.Api.UserApiGroup.ChatApi.HandleChat)
	ginServer.POST("/help-request", controller.Api.UserApiGroup.HelpRequestApi.Create)
	ginServer.GET("/requests", controller.Api.UserApiGroup.HelpRequestApi.List)

	// 人工坐席侧
	ginServer.POST("/respond", controller.Api.AdminApiGroup.HelpdeskApi.Respond)
	ginServer.GET("/pending-requests", controller.Api.AdminApiGroup.HelpdeskApi.ListPending)
	ginServer.GET("/knowledge-base", controller.Api.AdminApiGroup.HelpdeskApi.ListKnowledge)
	ginServer.POST("/knowledge-base", controller.Api.AdminApiGroup.HelpdeskApi.AddKnowledge)
}
