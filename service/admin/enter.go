package admin

import "gitee.com/taoJie_1/salon-agent/task"

type ServiceGroup struct {
	HelpdeskService HelpdeskService
}

func NewServiceGroup(taskManager *task.Manager) ServiceGroup {
	return ServiceGroup{
		HelpdeskService: NewHelpdeskService(taskManager),
	}
}
