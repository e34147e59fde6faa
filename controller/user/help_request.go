package user

import (
	"net/http"

	"gitee.com/taoJie_1/salon-agent/model/common"
	"gitee.com/taoJie_1/salon-agent/model/enum"
	"gitee.com/taoJie_1/salon-agent/service"
	"github.com/gin-gonic/gin"
)

type HelpRequestApi struct{}

// Create 语音Agent在知识库未命中时创建求助工单
func (d *HelpRequestApi) Create(ctx *gin.Context) {
	var req common.HelpRequestCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.FailDetail(ctx, http.StatusBadRequest, "参数无效")
		return
	}
	if err := service.Service.UserServiceGroup.Validator.ValidatorHelpRequest(&req); err != nil {
		common.FailDetail(ctx, http.StatusBadRequest, err.Error())
		return
	}

	record, err := service.Service.UserServiceGroup.EscalationService.Create(req.CustomerName, req.Question)
	if err != nil {
		common.FailDetail(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":     record.Status,
		"request_id": record.Id,
	})
}

// List 按可选的status/id过滤查询工单, 语音Agent轮询与人工面板共用
func (d *HelpRequestApi) List(ctx *gin.Context) {
	status := enum.HelpRequestStatus(ctx.Query("status"))
	if status != "" && status != enum.StatusPending && status != enum.StatusResolved {
		common.FailDetail(ctx, http.StatusBadRequest, "无效的status参数")
		return
	}

	list, err := service.Service.UserServiceGroup.EscalationService.List(status, ctx.Query("id"))
	if err != nil {
		common.FailDetail(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, list)
}
