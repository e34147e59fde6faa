package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gitee.com/taoJie_1/salon-agent/global"
	"gitee.com/taoJie_1/salon-agent/model/common"
	"gitee.com/taoJie_1/salon-agent/model/enum"
	"github.com/gin-gonic/gin"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	global.Config.Cors = []string{"*"}

	engine := gin.New()
	Start(engine)
	return engine
}

func TestHealthRoute(t *testing.T) {
	engine := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("健康检查应返回200, 实际为 %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("健康检查应返回JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("健康检查响应不正确: %v", body)
	}
}

// 未知路径返回JSON格式的404, 而非gin默认的纯文本
func TestNoRouteReturnsJSON404(t *testing.T) {
	engine := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/no-such-path", nil)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("未知路径应返回404, 实际为 %d", w.Code)
	}

	var body common.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("404响应应为JSON: %v", err)
	}
	if body.Code != enum.ErrorCode {
		t.Fatalf("404响应code不正确: %+v", body)
	}
}
