package controller

import "gitee.com/taoJie_1/salon-agent/controller/user"
import "gitee.com/taoJie_1/salon-agent/controller/admin"

var Api = new(ApiGroup)

type ApiGroup struct {
	UserApiGroup  user.ApiGroup
	AdminApiGroup admin.ApiGroup
}
