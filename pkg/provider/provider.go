package provider

// StockBrief 股票列表条目
type StockBrief struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// StockDetail 单只股票的基本信息
type StockDetail struct {
	Code     string
	Name     string
	Industry string
	Market   string
	ListDate string // YYYYMMDD 格式的上市日期
}

// ValuationRecord 单日估值指标
type ValuationRecord struct {
	TradeDate        string   `json:"trade_date"`
	PeTTM            *float64 `json:"pe_ttm"`
	Pb               *float64 `json:"pb"`
	PsTTM            *float64 `json:"ps_ttm"`
	DividendYieldTTM *float64 `json:"dv_ttm"`
}

// DataProvider 数据提供方接口
type DataProvider interface {
	ListStocks() ([]StockBrief, error)
	GetStockDetail(code string) (*StockDetail, error)
	GetFinancialAbstract(code string) ([]map[string]interface{}, error)
	GetValuationSeries(code string) ([]ValuationRecord, error)
}
