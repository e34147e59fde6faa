package user

import (
	"gitee.com/taoJie_1/salon-agent/dao"
	"gitee.com/taoJie_1/salon-agent/model/db"
	"gitee.com/taoJie_1/salon-agent/model/enum"
)

type IEscalationService interface {
	Create(customerName, question string) (*db.HelpRequests, error)
	List(status enum.HelpRequestStatus, id string) ([]db.HelpRequests, error)
}

// EscalationService 求助工单的对外读写口
type EscalationService struct{}

func (s *EscalationService) Create(customerName, question string) (*db.HelpRequests, error) {
	return dao.App.HelpRequestsDb.Create(customerName, question)
}

func (s *EscalationService) List(status enum.HelpRequestStatus, id string) ([]db.HelpRequests, error) {
	list := make([]db.HelpRequests, 0)
	if err := dao.App.HelpRequestsDb.GetList(&list, status, id); err != nil {
		return nil, err
	}
	return list, nil
}
