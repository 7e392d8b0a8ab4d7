package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"StockScreener/pkg/database"
	"StockScreener/pkg/model"
	"StockScreener/pkg/testutil"
)

func newTestServer(t *testing.T) (*Server, *database.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gormDB := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, gormDB) })

	db := database.NewWithGorm(gormDB)
	server := NewServer("0", time.Second, time.Second)
	server.SetupRoutes(NewHandlers(db))
	return server, db
}

func seedStock(t *testing.T, db *database.DB) {
	t.Helper()
	industry := "石油行业"
	listing := time.Date(2001, 8, 8, 0, 0, 0, 0, time.UTC)
	stock := &model.Stock{
		Code:        "600028",
		Name:        "中国石化",
		Industry:    &industry,
		Market:      "A股",
		ListingDate: &listing,
	}
	if err := db.Stock().Create(stock); err != nil {
		t.Fatalf("写入测试股票失败: %v", err)
	}
}

func seedValuations(t *testing.T, db *database.DB) {
	t.Helper()
	for _, day := range []string{"2024-01-02", "2024-02-01", "2024-03-01"} {
		date, _ := time.Parse("2006-01-02", day)
		pe := 10.0
		valuation := &model.StockValuation{
			ID:        "600028_" + day,
			StockCode: "600028",
			Date:      date,
			PeTTM:     &pe,
		}
		if err := db.Gorm().Create(valuation).Error; err != nil {
			t.Fatalf("写入测试估值失败: %v", err)
		}
	}
}

func doRequest(server *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	return w
}

func TestGetStockBasic(t *testing.T) {
	server, db := newTestServer(t)
	seedStock(t, db)

	w := doRequest(server, http.MethodGet, "/api/v1/stocks/600028/basic", "")
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d，响应: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data model.Stock `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Data.Code != "600028" || resp.Data.Name != "中国石化" {
		t.Errorf("响应数据不正确: %+v", resp.Data)
	}
}

func TestGetStockBasicNotFound(t *testing.T) {
	server, _ := newTestServer(t)

	w := doRequest(server, http.MethodGet, "/api/v1/stocks/999999/basic", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("状态码 = %d，期望404", w.Code)
	}
}

func TestGetStockValuations(t *testing.T) {
	server, db := newTestServer(t)
	seedStock(t, db)
	seedValuations(t, db)

	w := doRequest(server, http.MethodGet, "/api/v1/stocks/600028/valuations", "")
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d，响应: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []model.StockValuation `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("返回 %d 条，期望3条", len(resp.Data))
	}
	// 日期倒序
	if resp.Data[0].ID != "600028_2024-03-01" {
		t.Errorf("第一条 = %s，期望最近的日期在前", resp.Data[0].ID)
	}
}

func TestGetStockValuationsWithRange(t *testing.T) {
	server, db := newTestServer(t)
	seedStock(t, db)
	seedValuations(t, db)

	w := doRequest(server, http.MethodGet,
		"/api/v1/stocks/600028/valuations?start_date=2024-02-01&end_date=2024-02-28&limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d，响应: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []model.StockValuation `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "600028_2024-02-01" {
		t.Errorf("区间过滤结果不正确: %+v", resp.Data)
	}
}

func TestGetStockValuationsBadDate(t *testing.T) {
	server, _ := newTestServer(t)

	w := doRequest(server, http.MethodGet, "/api/v1/stocks/600028/valuations?start_date=20240201", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("状态码 = %d，期望400", w.Code)
	}
}

func TestExecuteSQL(t *testing.T) {
	server, db := newTestServer(t)
	seedStock(t, db)

	body := `{"sql": "SELECT code, name FROM stock_basic WHERE code = @code", "params": {"code": "600028"}}`
	w := doRequest(server, http.MethodPost, "/api/v1/execute-sql", body)
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d，响应: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0]["name"] != "中国石化" {
		t.Errorf("查询结果不正确: %+v", resp.Data)
	}
}

func TestExecuteSQLInvalid(t *testing.T) {
	server, _ := newTestServer(t)

	// 无效SQL
	w := doRequest(server, http.MethodPost, "/api/v1/execute-sql", `{"sql": "NOT VALID SQL"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("无效SQL的状态码 = %d，期望400", w.Code)
	}

	// 缺少sql字段
	w = doRequest(server, http.MethodPost, "/api/v1/execute-sql", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("缺少sql字段的状态码 = %d，期望400", w.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	server, _ := newTestServer(t)

	w := doRequest(server, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("状态码 = %d，期望200", w.Code)
	}
}
