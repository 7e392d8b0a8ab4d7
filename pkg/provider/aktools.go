package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// AKToolsClient AKTools(AKShare HTTP服务)数据适配器
type AKToolsClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAKToolsClient 创建新的AKTools适配器
func NewAKToolsClient(baseURL string, timeout time.Duration) *AKToolsClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AKToolsClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// getJSON 请求AKTools接口并解析JSON响应
func (a *AKToolsClient) getJSON(apiPath string, query url.Values, out interface{}) error {
	apiURL := a.baseURL + apiPath
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	resp, err := a.httpClient.Get(apiURL)
	if err != nil {
		return fmt.Errorf("执行HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API返回非200状态码: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取响应体失败: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}

	return nil
}

// ListStocks 获取A股代码与名称列表
func (a *AKToolsClient) ListStocks() ([]StockBrief, error) {
	var stocks []StockBrief
	if err := a.getJSON("/api/public/stock_info_a_code_name", nil, &stocks); err != nil {
		return nil, fmt.Errorf("获取股票列表失败: %w", err)
	}
	return stocks, nil
}

// GetStockDetail 获取单只股票的基本信息。
// 接口返回 item/value 键值对列表，这里拼装为结构化信息。
func (a *AKToolsClient) GetStockDetail(code string) (*StockDetail, error) {
	var rows []struct {
		Item  string      `json:"item"`
		Value interface{} `json:"value"`
	}

	query := url.Values{}
	query.Set("symbol", code)
	if err := a.getJSON("/api/public/stock_individual_info_em", query, &rows); err != nil {
		return nil, fmt.Errorf("获取股票 %s 的基本信息失败: %w", code, err)
	}

	info := make(map[string]interface{}, len(rows))
	for _, row := range rows {
		info[row.Item] = row.Value
	}

	return &StockDetail{
		Code:     toString(info["股票代码"]),
		Name:     toString(info["股票简称"]),
		Industry: toString(info["行业"]),
		Market:   "A股",
		ListDate: toString(info["上市时间"]),
	}, nil
}

// GetFinancialAbstract 获取同花顺口径的财务摘要，按报告期一条记录。
// 数值字段带"万"、"亿"单位或百分号，由调用方规范化。
func (a *AKToolsClient) GetFinancialAbstract(code string) ([]map[string]interface{}, error) {
	var records []map[string]interface{}

	query := url.Values{}
	query.Set("symbol", code)
	if err := a.getJSON("/api/public/stock_financial_abstract_ths", query, &records); err != nil {
		return nil, fmt.Errorf("获取股票 %s 的财务指标失败: %w", code, err)
	}
	return records, nil
}

// GetValuationSeries 获取乐咕乐股的每日估值指标序列
func (a *AKToolsClient) GetValuationSeries(code string) ([]ValuationRecord, error) {
	var records []ValuationRecord

	query := url.Values{}
	query.Set("symbol", code)
	if err := a.getJSON("/api/public/stock_a_indicator_lg", query, &records); err != nil {
		return nil, fmt.Errorf("获取股票 %s 的估值指标失败: %w", code, err)
	}
	return records, nil
}

// toString 将接口类型转换为字符串，整数值的浮点数不带小数位
func toString(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%v", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
