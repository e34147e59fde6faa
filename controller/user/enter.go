package user

type ApiGroup struct {
	BaseApi        BaseApi
	ChatApi        ChatApi
	HelpRequestApi HelpRequestApi
}
