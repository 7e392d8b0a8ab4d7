package pipeline

import (
	"testing"

	"StockScreener/pkg/provider"
)

func valRec(date string, pe float64) provider.ValuationRecord {
	return provider.ValuationRecord{TradeDate: date, PeTTM: &pe}
}

func TestMonthlyFirst(t *testing.T) {
	input := []provider.ValuationRecord{
		valRec("2024-01-05", 10.5),
		valRec("2024-01-02", 10.1),
		valRec("2024-02-10", 11.0),
	}

	got := MonthlyFirst(input)

	if len(got) != 2 {
		t.Fatalf("降采样后 %d 条，期望2条", len(got))
	}
	// 一月份取最早一天（1月2日）
	if got[0].TradeDate != "2024-01-02" {
		t.Errorf("一月份选中 %s，期望 2024-01-02", got[0].TradeDate)
	}
	if got[1].TradeDate != "2024-02-10" {
		t.Errorf("二月份选中 %s，期望 2024-02-10", got[1].TradeDate)
	}
	// 输出按日期升序
	if *got[0].PeTTM != 10.1 {
		t.Errorf("一月份的指标值 %v，期望 10.1", *got[0].PeTTM)
	}
}

func TestMonthlyFirstSingleObservation(t *testing.T) {
	input := []provider.ValuationRecord{valRec("2024-03-15", 9.8)}

	got := MonthlyFirst(input)

	if len(got) != 1 || got[0].TradeDate != "2024-03-15" {
		t.Fatalf("单条观测应原样保留，得到 %v", got)
	}
}

func TestMonthlyFirstSkipsUnparseableDates(t *testing.T) {
	input := []provider.ValuationRecord{
		valRec("2024-04-01", 8.0),
		valRec("not-a-date", 99.0),
	}

	got := MonthlyFirst(input)

	if len(got) != 1 || got[0].TradeDate != "2024-04-01" {
		t.Fatalf("无法解析的日期应被丢弃，得到 %v", got)
	}
}

func TestMonthlyFirstDuplicateDatesKeepFirstSeen(t *testing.T) {
	input := []provider.ValuationRecord{
		valRec("2024-05-06", 1.0),
		valRec("2024-05-06", 2.0),
	}

	got := MonthlyFirst(input)

	if len(got) != 1 {
		t.Fatalf("同月同日应只保留一条，得到 %d 条", len(got))
	}
	if *got[0].PeTTM != 1.0 {
		t.Errorf("重复日期应保留先出现的观测，得到 %v", *got[0].PeTTM)
	}
}

func TestMonthlyFirstToleratesTimeSuffix(t *testing.T) {
	input := []provider.ValuationRecord{valRec("2024-06-03T00:00:00", 7.7)}

	got := MonthlyFirst(input)

	if len(got) != 1 {
		t.Fatalf("带时间后缀的日期应被接受，得到 %v", got)
	}
}
