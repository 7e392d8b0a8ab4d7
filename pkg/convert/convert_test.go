package convert

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  interface{}
	}{
		{"万单位", "1.5万", int64(15000)},
		{"万单位_小数", "1.2万", int64(12000)},
		{"亿单位", "2亿", int64(200000000)},
		{"万亿单位", "3万亿", int64(3000000000000)},
		{"负数带单位", "-1.5亿", int64(-150000000)},
		{"百分号保留百分点", "12.3%", 12.3},
		{"负百分比", "-4.56%", -4.56},
		{"普通数字字符串", "3.14", 3.14},
		{"整数", 5, 5.0},
		{"浮点数", 2.5, 2.5},
		{"零视为缺失", 0, nil},
		{"浮点零视为缺失", 0.0, nil},
		{"空字符串", "", nil},
		{"空白字符串", "  ", nil},
		{"nil", nil, nil},
		{"false视为缺失", false, nil},
		{"无法解析原样返回", "abc", "abc"},
		{"单位后无法解析原样返回", "约1万", "约1万"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Normalize(%v) = %v (%T)，期望 %v (%T)", tc.input, got, got, tc.want, tc.want)
			}
		})
	}
}

func TestNormalizeUnitPrecedence(t *testing.T) {
	// "万亿"必须先于"万"和"亿"命中
	got := Normalize("2万亿")
	if got != int64(2000000000000) {
		t.Errorf("Normalize(2万亿) = %v，期望 2000000000000", got)
	}
}

func TestRecord(t *testing.T) {
	record := map[string]interface{}{
		"报告期":   "2024-03-31",
		"净利润":   "1.5亿",
		"净资产收益率": "8.9%",
		"备注":    "无",
	}

	converted := Record(record, "报告期")

	// 报告期原样透传，不参与转换
	if converted["报告期"] != "2024-03-31" {
		t.Errorf("报告期被转换了: %v", converted["报告期"])
	}
	if converted["净利润"] != int64(150000000) {
		t.Errorf("净利润 = %v，期望 150000000", converted["净利润"])
	}
	if converted["净资产收益率"] != 8.9 {
		t.Errorf("净资产收益率 = %v，期望 8.9", converted["净资产收益率"])
	}
	// 无法解析的字段原样保留
	if converted["备注"] != "无" {
		t.Errorf("备注 = %v，期望原样保留", converted["备注"])
	}
}

func TestOptGetters(t *testing.T) {
	record := map[string]interface{}{
		"a": int64(100),
		"b": 2.6,
		"c": "text",
	}

	if v := OptInt64(record, "a"); v == nil || *v != 100 {
		t.Errorf("OptInt64(a) = %v", v)
	}
	// 浮点值四舍五入
	if v := OptInt64(record, "b"); v == nil || *v != 3 {
		t.Errorf("OptInt64(b) = %v", v)
	}
	if v := OptFloat(record, "a"); v == nil || *v != 100.0 {
		t.Errorf("OptFloat(a) = %v", v)
	}
	if v := OptFloat(record, "c"); v != nil {
		t.Errorf("OptFloat(c) = %v，期望nil", v)
	}
	if v := OptInt64(record, "missing"); v != nil {
		t.Errorf("OptInt64(missing) = %v，期望nil", v)
	}
	if s := OptString(record, "c"); s != "text" {
		t.Errorf("OptString(c) = %q", s)
	}
}
