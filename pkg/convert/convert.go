// Package convert 财务数据规范化。
// 数据源返回的数值经常带有"万"、"亿"等单位或百分号后缀，
// 这里统一转换为可入库的数值类型。
package convert

import (
	"math"
	"strconv"
	"strings"
)

// Normalize 规范化单个原始字段值：
//  1. 空值（nil、false、0、空字符串）返回nil
//  2. 数值类型直接转为float64
//  3. 带"万亿"/"万"/"亿"单位的字符串去掉单位并按倍率放大，四舍五入为整数
//  4. 带百分号的字符串去掉百分号，保留百分点数值（"12.3%" -> 12.3）
//  5. 其余字符串尝试直接解析为float64，失败时原样返回
//
// 任何情况下都不会报错，类型歧义留给调用方处理。
func Normalize(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		if !v {
			return nil
		}
		return float64(1)
	case float64:
		if v == 0 {
			return nil
		}
		return v
	case float32:
		if v == 0 {
			return nil
		}
		return float64(v)
	case int:
		if v == 0 {
			return nil
		}
		return float64(v)
	case int64:
		if v == 0 {
			return nil
		}
		return float64(v)
	case string:
		return normalizeString(v)
	default:
		return value
	}
}

func normalizeString(raw string) interface{} {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	// 单位标记只取第一个命中的，不考虑单位与百分号组合的情况
	switch {
	case strings.Contains(s, "万亿"):
		return scaleUnit(s, "万亿", 1e12)
	case strings.Contains(s, "万"):
		return scaleUnit(s, "万", 1e4)
	case strings.Contains(s, "亿"):
		return scaleUnit(s, "亿", 1e8)
	case strings.Contains(s, "%"):
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, "%", ""), 64)
		if err != nil {
			return s
		}
		return f
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return f
}

// scaleUnit 去掉单位标记后按倍率放大，四舍五入为整数。
// 去掉单位后仍无法解析的，原样返回字符串。
func scaleUnit(s, unit string, factor float64) interface{} {
	f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, unit, "")), 64)
	if err != nil {
		return s
	}
	return int64(math.Round(f * factor))
}

// Record 对一条原始记录的所有字段做规范化。
// keepKeys 中列出的字段（如报告期）按原样透传，不参与数值转换。
func Record(record map[string]interface{}, keepKeys ...string) map[string]interface{} {
	result := make(map[string]interface{}, len(record))
	for key, value := range record {
		result[key] = Normalize(value)
	}
	for _, key := range keepKeys {
		if raw, ok := record[key]; ok {
			result[key] = raw
		}
	}
	return result
}

// OptFloat 从规范化后的记录中取可选浮点字段，缺失或非数值时返回nil
func OptFloat(record map[string]interface{}, key string) *float64 {
	switch v := record[key].(type) {
	case float64:
		return &v
	case int64:
		f := float64(v)
		return &f
	default:
		return nil
	}
}

// OptInt64 从规范化后的记录中取可选整数字段，浮点值四舍五入
func OptInt64(record map[string]interface{}, key string) *int64 {
	switch v := record[key].(type) {
	case int64:
		return &v
	case float64:
		n := int64(math.Round(v))
		return &n
	default:
		return nil
	}
}

// OptString 从记录中取可选字符串字段
func OptString(record map[string]interface{}, key string) string {
	if s, ok := record[key].(string); ok {
		return s
	}
	return ""
}
