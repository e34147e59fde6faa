package admin

import (
	"errors"
	"net/http"

	"gitee.com/taoJie_1/salon-agent/dao"
	"gitee.com/taoJie_1/salon-agent/model/common"
	"gitee.com/taoJie_1/salon-agent/service"
	"github.com/gin-gonic/gin"
)

type HelpdeskApi struct{}

// Respond 人工坐席提交答复
// 工单不存在返回404, 重复答复返回400, 响应体为 {"detail": "..."}
func (h *HelpdeskApi) Respond(ctx *gin.Context) {
	var req common.RespondRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.FailDetail(ctx, http.StatusBadRequest, "参数无效")
		return
	}

	record, err := service.Service.AdminServiceGroup.HelpdeskService.Submit(ctx.Request.Context(), req.RequestID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, dao.ErrHelpRequestNotFound):
			common.FailDetail(ctx, http.StatusNotFound, "Request not found")
		case errors.Is(err, dao.ErrAlreadyResolved):
			common.FailDetail(ctx, http.StatusBadRequest, "Request already resolved")
		default:
			common.FailDetail(ctx, http.StatusInternalServerError, err.Error())
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":     record.Status,
		"request_id": record.Id,
	})
}

// ListPending 列出等待人工答复的工单
func (h *HelpdeskApi) ListPending(ctx *gin.Context) {
	list, err := service.Service.AdminServiceGroup.HelpdeskService.ListPending()
	if err != nil {
		common.FailDetail(ctx, http.StatusInternalServerError, err.Error())
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// ListKnowledge 列出知识库全部条目
func (h *HelpdeskApi) ListKnowledge(ctx *gin.Context) {
	list, err := service.Service.AdminServiceGroup.HelpdeskService.ListKnowledge()
	if err != nil {
		common.FailDetail(ctx, http.StatusInternalServerError, err.Error())
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// AddKnowledge 人工直接录入知识条目
func (h *HelpdeskApi) AddKnowledge(ctx *gin.Context) {
	var req common.KnowledgeUpsertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.FailDetail(ctx, http.StatusBadRequest, "参数无效")
		return
	}

	if err := service.Service.AdminServiceGroup.HelpdeskService.AddKnowledge(ctx.Request.Context(), req.Question, req.Answer); err != nil {
		common.FailDetail(ctx, http.StatusBadRequest, err.Error())
		return
	}
	common.SuccessOk(ctx, "知识条目已录入")
}
