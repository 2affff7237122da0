package logger

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	gnet "github.com/shirou/gopsutil/v3/net" //cloudwatch

	"github.com/aws/aws-sdk-go-v2/aws"                              //cloudwatch
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types" //cloudwatch
)

type channelStat struct {
	messages int64
	bytes    int64
}

var (
	errorsDispatcher int64
	errorsExchange   int64
	warnsDispatcher  int64
	warnsExchange    int64
	toolCalls        int64
	tickerFetches    int64
	channels         sync.Map // map[string]*channelStat
)

func recordWarn(component string) {
	if component == "dispatcher" {
		atomic.AddInt64(&warnsDispatcher, 1)
	} else {
		atomic.AddInt64(&warnsExchange, 1)
	}
}

func recordError(component string) {
	if component == "dispatcher" {
		atomic.AddInt64(&errorsDispatcher, 1)
	} else {
		atomic.AddInt64(&errorsExchange, 1)
	}
}

// IncrementToolCall records a completed tool invocation and the size of the
// text returned to the caller.
func IncrementToolCall(size int) {
	atomic.AddInt64(&toolCalls, 1)
	recordChannel("tool_results", size)
}

// IncrementTickerFetch records a successful exchange fetch and the number of
// tickers it returned.
func IncrementTickerFetch(records int) {
	atomic.AddInt64(&tickerFetches, 1)
	recordChannel("ticker_fetch", records)
}

func RecordChannelMessage(name string, size int) {
	recordChannel(name, size)
}

func recordChannel(name string, size int) {
	v, _ := channels.LoadOrStore(name, &channelStat{})
	cs := v.(*channelStat)
	atomic.AddInt64(&cs.messages, 1)
	atomic.AddInt64(&cs.bytes, int64(size))
}

func startReport(ctx context.Context, log *Log, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-ticker.C:
				logReport(ctx, log)
			}
		}
	}()
}

// StartReport begins periodic logging of system and invocation statistics.
// It exposes the internal startReport function for use by other packages.
func StartReport(ctx context.Context, log *Log, interval time.Duration) {
	startReport(ctx, log, interval)
}

func logReport(ctx context.Context, log *Log) {
	cpuPercent, _ := cpu.Percent(0, false)
	memStats, _ := mem.VirtualMemory()
	diskStats, _ := disk.Usage("/")
	netStats, _ := gnet.IOCounters(false)
	channelData := map[string]map[string]int64{}
	channels.Range(func(k, v any) bool {
		name := k.(string)
		cs := v.(*channelStat)
		channelData[name] = map[string]int64{
			"messages": atomic.LoadInt64(&cs.messages),
			"bytes":    atomic.LoadInt64(&cs.bytes),
		}
		return true
	})

	cpuPct := 0.0
	if len(cpuPercent) > 0 {
		cpuPct = cpuPercent[0]
	}

	bytesSent := uint64(0)
	bytesRecv := uint64(0)
	if len(netStats) > 0 {
		bytesSent = netStats[0].BytesSent
		bytesRecv = netStats[0].BytesRecv
	}

	fields := Fields{
		"errors_dispatcher": atomic.LoadInt64(&errorsDispatcher),
		"errors_exchange":   atomic.LoadInt64(&errorsExchange),
		"warns_dispatcher":  atomic.LoadInt64(&warnsDispatcher),
		"warns_exchange":    atomic.LoadInt64(&warnsExchange),
		"tool_calls":        atomic.LoadInt64(&toolCalls),
		"ticker_fetches":    atomic.LoadInt64(&tickerFetches),
		"goroutines":        runtime.NumGoroutine(),
		"cpu_percent":       cpuPct,
		"memory_mb":         int64(memStats.Used) / 1024 / 1024,
		"disk_mb":           int64(diskStats.Used) / 1024 / 1024,
		"channels":          channelData,
		"net_bytes_sent":    int64(bytesSent),
		"net_bytes_recv":    int64(bytesRecv),
	}

	log.WithComponent("report").WithFields(fields).Info("runtime report")

	var data []cwtypes.MetricDatum
	data = append(data,
		cwtypes.MetricDatum{MetricName: aws.String("CQ-CPUPercent"), Unit: cwtypes.StandardUnitPercent, Value: aws.Float64(cpuPct)},
		cwtypes.MetricDatum{MetricName: aws.String("CQ-MemoryMB"), Unit: cwtypes.StandardUnitMegabytes, Value: aws.Float64(float64(memStats.Used) / 1024 / 1024)},
		cwtypes.MetricDatum{MetricName: aws.String("CQ-DiskMB"), Unit: cwtypes.StandardUnitMegabytes, Value: aws.Float64(float64(diskStats.Used) / 1024 / 1024)},
		cwtypes.MetricDatum{MetricName: aws.String("CQ-ErrorsDispatcher"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(fields["errors_dispatcher"].(int64)))},
		cwtypes.MetricDatum{MetricName: aws.String("CQ-ErrorsExchange"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(fields["errors_exchange"].(int64)))},
		cwtypes.MetricDatum{MetricName: aws.String("CQ-WarnsDispatcher"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(fields["warns_dispatcher"].(int64)))},
		cwtypes.MetricDatum{MetricName: aws.String("CQ-WarnsExchange"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(fields["warns_exchange"].(int64)))},
		cwtypes.MetricDatum{MetricName: aws.String("CQ-ToolCalls"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(fields["tool_calls"].(int64)))},
		cwtypes.MetricDatum{MetricName: aws.String("CQ-TickerFetches"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(fields["ticker_fetches"].(int64)))},
		cwtypes.MetricDatum{MetricName: aws.String("CQ-NetBytesSent"), Unit: cwtypes.StandardUnitBytes, Value: aws.Float64(float64(bytesSent))},
		cwtypes.MetricDatum{MetricName: aws.String("CQ-NetBytesRecv"), Unit: cwtypes.StandardUnitBytes, Value: aws.Float64(float64(bytesRecv))},
	)

	for name, stats := range channelData {
		data = append(data,
			cwtypes.MetricDatum{
				MetricName: aws.String("CQ-ChannelMessages"),
				Unit:       cwtypes.StandardUnitCount,
				Dimensions: []cwtypes.Dimension{{Name: aws.String("Channel"), Value: aws.String(name)}},
				Value:      aws.Float64(float64(stats["messages"])),
			},
			cwtypes.MetricDatum{
				MetricName: aws.String("CQ-ChannelBytes"),
				Unit:       cwtypes.StandardUnitBytes,
				Dimensions: []cwtypes.Dimension{{Name: aws.String("Channel"), Value: aws.String(name)}},
				Value:      aws.Float64(float64(stats["bytes"])),
			},
		)
	}

	publishMetrics(ctx, data)
}
