package user

import (
	"net/http"

	"gitee.com/taoJie_1/salon-agent/global"
	"gitee.com/taoJie_1/salon-agent/model/common"
	"gitee.com/taoJie_1/salon-agent/model/enum"
	"gitee.com/taoJie_1/salon-agent/service"
	"github.com/gin-gonic/gin"
)

type ChatApi struct{}

// HandleChat 同步驱动一轮完整会话, 返回期间播报给客户的全部话术
// 请求上下文随客户端断开而取消, 轮询随之停止
func (d *ChatApi) HandleChat(ctx *gin.Context) {
	var req common.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.Fail(ctx, "参数无效")
		return
	}

	if err := service.Service.UserServiceGroup.Validator.ValidatorChatRequest(&req); err != nil {
		common.Fail(ctx, err.Error())
		return
	}

	messages := []string{string(enum.ReplyMsgGreeting)}
	err := service.Service.UserServiceGroup.SessionService.Handle(
		ctx.Request.Context(),
		req.CustomerName,
		req.Question,
		func(text string) {
			messages = append(messages, text)
		},
	)
	if err != nil && ctx.Request.Context().Err() == nil {
		global.Log.Errorf("[HandleChat] 会话处理失败: %v", err)
	}

	ctx.JSON(http.StatusOK, gin.H{"messages": messages})
}
