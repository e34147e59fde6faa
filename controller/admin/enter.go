package admin

type ApiGroup struct {
	HelpdeskApi HelpdeskApi
}
