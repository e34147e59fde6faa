package task

import (
	"encoding/json"
	"fmt"
	"time"

	"gitee.com/taoJie_1/salon-agent/dao"
	"gitee.com/taoJie_1/salon-agent/global"
	"gitee.com/taoJie_1/salon-agent/model/db"
	"gitee.com/taoJie_1/salon-agent/model/enum"
)

// ArchiveResolvedRequests 将已解决工单快照归档到OSS
// 工单表只保留在线查询需要的数据, 审计追溯走归档文件
func (m *Manager) ArchiveResolvedRequests() error {
	if global.OssService == nil {
		global.Log.Info("OSS服务未配置, 跳过工单归档任务")
		return nil
	}

	list := make([]db.HelpRequests, 0)
	if err := dao.App.HelpRequestsDb.GetList(&list, enum.StatusResolved, ""); err != nil {
		return fmt.Errorf("查询已解决工单失败: %w", err)
	}
	if len(list) == 0 {
		global.Log.Info("没有已解决的工单, 跳过归档")
		return nil
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化工单快照失败: %w", err)
	}

	name := fmt.Sprintf("help_requests_%s.json", time.Now().In(global.Tz).Format("2006-01-02"))
	objectKey, err := global.OssService.UploadBytes(name, data)
	if err != nil {
		return fmt.Errorf("上传工单归档失败: %w", err)
	}

	global.Log.Infof("已归档 %d 条已解决工单至 %s", len(list), global.OssService.GetURL(objectKey))
	return nil
}
