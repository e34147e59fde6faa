package user

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gitee.com/taoJie_1/salon-agent/global"
	"gitee.com/taoJie_1/salon-agent/model/common"
)

type IValidator interface {
	ValidatorChatRequest(data *common.ChatRequest) error
	ValidatorHelpRequest(data *common.HelpRequestCreate) error
}

type Validator struct{}

func (v *Validator) ValidatorChatRequest(data *common.ChatRequest) error {
	if strings.TrimSpace(data.Question) == "" {
		return errors.New("参数错误[gftsd]")
	}
	if max := int(global.Config.Ai.MaxQuestionLength); max > 0 && utf8.RuneCountInString(data.Question) > max {
		return errors.New("问题内容过长")
	}
	return nil
}

func (v *Validator) ValidatorHelpRequest(data *common.HelpRequestCreate) error {
	if strings.TrimSpace(data.CustomerName) == "" || strings.TrimSpace(data.Question) == "" {
		return errors.New("参数错误[b8wqz]")
	}
	if max := int(global.Config.Ai.MaxQuestionLength); max > 0 && utf8.RuneCountInString(data.Question) > max {
		return errors.New("问题内容过长")
	}
	return nil
}
