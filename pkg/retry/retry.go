// Package retry 针对不稳定数据源的有界重试
package retry

import (
	"time"

	"StockScreener/pkg/logger"
)

// Policy 重试策略。Delay 决定第attempt次失败后的等待时长，
// Sleep 可在测试中替换为假时钟。
type Policy struct {
	MaxAttempts int
	Delay       func(attempt int) time.Duration
	Sleep       func(d time.Duration)
}

// DefaultPolicy 默认策略：最多3次，线性退避 5s、10s、15s
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Delay:       LinearDelay(5 * time.Second),
		Sleep:       time.Sleep,
	}
}

// LinearDelay 线性退避：第attempt次失败后等待 attempt*step
func LinearDelay(step time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * step
	}
}

// Fetch 执行一次上游拉取并在出错时按策略重试。
// 返回空结果不算失败，不触发重试；重试耗尽后返回最后一次的错误。
func Fetch[T any](policy Policy, label string, fn func() ([]T, error)) ([]T, error) {
	log := logger.Get()

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		records, err := fn()
		if err == nil {
			if len(records) == 0 {
				log.Warnf("%s 没有返回数据", label)
				return nil, nil
			}
			return records, nil
		}

		lastErr = err
		if attempt < policy.MaxAttempts {
			wait := policy.Delay(attempt)
			log.Warnf("%s 拉取失败，%v后重试 (%d/%d): %v", label, wait, attempt, policy.MaxAttempts, err)
			policy.Sleep(wait)
		}
	}

	log.Errorf("%s 拉取失败，已达到最大重试次数: %v", label, lastErr)
	return nil, lastErr
}
