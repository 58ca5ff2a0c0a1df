package metrics

import "github.com/prometheus/client_golang/prometheus"

// RegisterCacheEntries 注册结果缓存条目数指标，采集时调用 size 读取当前值。
func (m *Metrics) RegisterCacheEntries(size func() int) {
	if m == nil || size == nil {
		return
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "inversion_cache_entries",
		Help: "Number of entries held by the result cache",
	}, func() float64 {
		return float64(size())
	}))
}
