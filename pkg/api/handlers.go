package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"StockScreener/pkg/database"
)

// Handlers API处理程序
type Handlers struct {
	db *database.DB
}

// NewHandlers 创建新的API处理程序
func NewHandlers(db *database.DB) *Handlers {
	return &Handlers{db: db}
}

// HealthCheck 健康检查处理程序
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GetStockBasic 获取股票基本信息
func (h *Handlers) GetStockBasic(c *gin.Context) {
	code := c.Param("code")

	stock, err := h.db.Stock().GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "股票 " + code + " 不存在",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取股票信息失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": stock,
	})
}

// GetStockFinancials 获取股票历史财务指标，支持日期区间与数量限制
func (h *Handlers) GetStockFinancials(c *gin.Context) {
	code := c.Param("code")

	startDate, endDate, limit, err := parseRangeQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	indicators, err := h.db.Financial().GetByStockCode(code, startDate, endDate, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "查询财务指标失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": indicators,
	})
}

// GetStockValuations 获取股票历史估值指标，支持日期区间与数量限制
func (h *Handlers) GetStockValuations(c *gin.Context) {
	code := c.Param("code")

	startDate, endDate, limit, err := parseRangeQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	valuations, err := h.db.Valuation().GetByStockCode(code, startDate, endDate, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "查询估值指标失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": valuations,
	})
}

// SQLQuery SQL查询请求
type SQLQuery struct {
	SQL    string                 `json:"sql" binding:"required"`
	Params map[string]interface{} `json:"params"`
}

// ExecuteSQL 执行SQL查询并返回结果
func (h *Handlers) ExecuteSQL(c *gin.Context) {
	var query SQLQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的请求参数: " + err.Error(),
		})
		return
	}

	rows, err := h.db.Query().ExecuteSQL(query.SQL, query.Params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
	})
}

// parseRangeQuery 解析 start_date/end_date/limit 查询参数
func parseRangeQuery(c *gin.Context) (*time.Time, *time.Time, int, error) {
	var startDate, endDate *time.Time

	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, 0, errors.New("start_date格式不正确，应为YYYY-MM-DD")
		}
		startDate = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, 0, errors.New("end_date格式不正确，应为YYYY-MM-DD")
		}
		endDate = &t
	}

	limit := 10 // 默认限制
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return nil, nil, 0, errors.New("limit必须为正整数")
		}
		limit = n
	}

	return startDate, endDate, limit, nil
}
