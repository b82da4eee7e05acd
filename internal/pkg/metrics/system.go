package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	DefaultCollectInterval = 5 * time.Second
	cpuSampleWindow        = time.Second
)

var (
	systemCPUUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_cpu_usage_percent",
		Help: "Host CPU usage percentage",
	})

	systemMemoryUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_memory_usage_bytes",
		Help: "Host memory in use, bytes",
	})

	applicationHeapAlloc = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "application_memory_usage_bytes",
		Help: "Go heap allocation, bytes",
	})

	// пул воркеров подбора виден по числу горутин
	applicationGoroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "application_goroutines",
		Help: "Number of live goroutines",
	})
)

// StartSystemMetricsCollector снимает показатели хоста раз в interval,
// пока не отменен ctx.
func StartSystemMetricsCollector(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCollectInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				collectSystemMetrics(ctx)
			}
		}
	}()
}

func collectSystemMetrics(ctx context.Context) {
	cpuPercent, err := cpu.PercentWithContext(ctx, cpuSampleWindow, false)
	if err == nil && len(cpuPercent) > 0 {
		systemCPUUsage.Set(cpuPercent[0])
	}

	vmStat, err := mem.VirtualMemoryWithContext(ctx)
	if err == nil {
		systemMemoryUsage.Set(float64(vmStat.Used))
	}

	collectRuntimeMetrics()
}

func collectRuntimeMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	applicationHeapAlloc.Set(float64(m.Alloc))
	applicationGoroutines.Set(float64(runtime.NumGoroutine()))
}
