package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Honzon Metrics Collector
// Provides comprehensive metrics for monitoring

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds all Honzon metrics
type Collector struct {
	// Position metrics
	PositionsLive   prometheus.Gauge
	TotalCollateral prometheus.Gauge
	TotalDebit      prometheus.Gauge

	// Liquidation metrics
	LiquidationsTotal prometheus.Counter
	LiquidationValue  prometheus.Counter
	SettlementsTotal  prometheus.Counter

	// Treasury metrics
	SurplusPool       prometheus.Gauge
	DebitPool         prometheus.Gauge
	OffsetAmount      prometheus.Counter
	TreasuryCollateral prometheus.Gauge

	// Auction metrics
	AuctionsLive             prometheus.Gauge
	AuctionsCreatedTotal     prometheus.Counter
	AuctionsDealtTotal       prometheus.Counter
	AuctionsAbortedTotal     prometheus.Counter
	AuctionsCancelledTotal   prometheus.Counter
	BidsTotal                prometheus.Counter
	CollateralInAuction      prometheus.Gauge
	TargetInAuction          prometheus.Gauge

	// End-of-block metrics
	AuctionSweepLatency *prometheus.HistogramVec
	OffsetSweepLatency  *prometheus.HistogramVec

	// System metrics
	BlockHeight prometheus.Gauge
	Shutdown    prometheus.Gauge
}

// GetCollector returns the singleton metrics collector
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

// newCollector creates a new metrics collector
func newCollector() *Collector {
	c := &Collector{}

	// Position metrics
	c.PositionsLive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "honzon",
			Subsystem: "loans",
			Name:      "positions_live",
			Help:      "Number of live positions",
		},
	)
	c.TotalCollateral = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "honzon",
			Subsystem: "loans",
			Name:      "total_collateral",
			Help:      "Aggregate collateral across live positions",
		},
	)
	c.TotalDebit = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "honzon",
			Subsystem: "loans",
			Name:      "total_debit",
			Help:      "Aggregate debit units across live positions",
		},
	)

	// Liquidation metrics
	c.LiquidationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "honzon",
			Subsystem: "cdpengine",
			Name:      "liquidations_total",
			Help:      "Total number of unsafe positions liquidated",
		},
	)
	c.LiquidationValue = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "honzon",
			Subsystem: "cdpengine",
			Name:      "liquidation_value",
			Help:      "Cumulative debit value of liquidated positions",
		},
	)
	c.SettlementsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "honzon",
			Subsystem: "cdpengine",
			Name:      "settlements_total",
			Help:      "Total number of positions settled after shutdown",
		},
	)

	// Treasury metrics
	c.SurplusPool = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "honzon",
			Subsystem: "treasury",
			Name:      "surplus_pool",
			Help:      "Stable currency held at the treasury account",
		},
	)
	c.DebitPool = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "honzon",
			Subsystem: "treasury",
			Name:      "debit_pool",
			Help:      "Accumulated unbacked debit awaiting offset",
		},
	)
	c.OffsetAmount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "honzon",
			Subsystem: "treasury",
			Name:      "offset_amount",
			Help:      "Cumulative surplus burned against the debit pool",
		},
	)
	c.TreasuryCollateral = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "honzon",
			Subsystem: "treasury",
			Name:      "collateral_balance",
			Help:      "Collateral held at the treasury account",
		},
	)

	// Auction metrics
	c.AuctionsLive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "honzon",
			Subsystem: "auction",
			Name:      "live",
			Help:      "Number of live auctions",
		},
	)
	c.AuctionsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "honzon",
			Subsystem: "auction",
			Name:      "created_total",
			Help:      "Total auctions created",
		},
	)
	c.AuctionsDealtTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "honzon",
			Subsystem: "auction",
			Name:      "dealt_total",
			Help:      "Total auctions settled with a winner",
		},
	)
	c.AuctionsAbortedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "honzon",
			Subsystem: "auction",
			Name:      "aborted_total",
			Help:      "Total auctions that expired without bids",
		},
	)
	c.AuctionsCancelledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "honzon",
			Subsystem: "auction",
			Name:      "cancelled_total",
			Help:      "Total auctions cancelled after shutdown",
		},
	)
	c.BidsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "honzon",
			Subsystem: "auction",
			Name:      "bids_total",
			Help:      "Total accepted bids",
		},
	)
	c.CollateralInAuction = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "honzon",
			Subsystem: "auction",
			Name:      "collateral_in_auction",
			Help:      "Collateral locked in live auctions",
		},
	)
	c.TargetInAuction = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "honzon",
			Subsystem: "auction",
			Name:      "target_in_auction",
			Help:      "Stable-currency target across live auctions",
		},
	)

	// End-of-block metrics
	c.AuctionSweepLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "honzon",
			Subsystem: "endblock",
			Name:      "auction_sweep_ms",
			Help:      "Auction sweep latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"phase"},
	)
	c.OffsetSweepLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "honzon",
			Subsystem: "endblock",
			Name:      "offset_sweep_ms",
			Help:      "Surplus/debit offset latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"phase"},
	)

	// System metrics
	c.BlockHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "honzon",
			Subsystem: "system",
			Name:      "block_height",
			Help:      "Current block height",
		},
	)
	c.Shutdown = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "honzon",
			Subsystem: "system",
			Name:      "shutdown",
			Help:      "1 when emergency shutdown has happened",
		},
	)

	registerAll(c)
	return c
}

func registerAll(c *Collector) {
	// Position metrics
	prometheus.MustRegister(c.PositionsLive)
	prometheus.MustRegister(c.TotalCollateral)
	prometheus.MustRegister(c.TotalDebit)

	// Liquidation metrics
	prometheus.MustRegister(c.LiquidationsTotal)
	prometheus.MustRegister(c.LiquidationValue)
	prometheus.MustRegister(c.SettlementsTotal)

	// Treasury metrics
	prometheus.MustRegister(c.SurplusPool)
	prometheus.MustRegister(c.DebitPool)
	prometheus.MustRegister(c.OffsetAmount)
	prometheus.MustRegister(c.TreasuryCollateral)

	// Auction metrics
	prometheus.MustRegister(c.AuctionsLive)
	prometheus.MustRegister(c.AuctionsCreatedTotal)
	prometheus.MustRegister(c.AuctionsDealtTotal)
	prometheus.MustRegister(c.AuctionsAbortedTotal)
	prometheus.MustRegister(c.AuctionsCancelledTotal)
	prometheus.MustRegister(c.BidsTotal)
	prometheus.MustRegister(c.CollateralInAuction)
	prometheus.MustRegister(c.TargetInAuction)

	// End-of-block metrics
	prometheus.MustRegister(c.AuctionSweepLatency)
	prometheus.MustRegister(c.OffsetSweepLatency)

	// System metrics
	prometheus.MustRegister(c.BlockHeight)
	prometheus.MustRegister(c.Shutdown)
}

// ============ Recording Helpers ============

// RecordLiquidation records a liquidation event
func (c *Collector) RecordLiquidation(debitValue float64) {
	c.LiquidationsTotal.Inc()
	c.LiquidationValue.Add(debitValue)
}

// RecordAuctionOutcome records how an auction left the live set
func (c *Collector) RecordAuctionOutcome(outcome string) {
	switch outcome {
	case "dealt":
		c.AuctionsDealtTotal.Inc()
	case "aborted":
		c.AuctionsAbortedTotal.Inc()
	case "cancelled":
		c.AuctionsCancelledTotal.Inc()
	}
}

// RecordSweepLatency records the end-of-block phase latencies
func (c *Collector) RecordSweepLatency(auctionMs, offsetMs float64) {
	c.AuctionSweepLatency.WithLabelValues("auction").Observe(auctionMs)
	c.OffsetSweepLatency.WithLabelValues("offset").Observe(offsetMs)
}

// UpdatePools updates the treasury pool gauges
func (c *Collector) UpdatePools(surplus, debit, treasuryCollateral float64) {
	c.SurplusPool.Set(surplus)
	c.DebitPool.Set(debit)
	c.TreasuryCollateral.Set(treasuryCollateral)
}

// UpdateAuctionAggregates updates the in-auction gauges
func (c *Collector) UpdateAuctionAggregates(collateral, target float64, live int) {
	c.CollateralInAuction.Set(collateral)
	c.TargetInAuction.Set(target)
	c.AuctionsLive.Set(float64(live))
}

// UpdateSystemMetrics updates system-level metrics
func (c *Collector) UpdateSystemMetrics(blockHeight int64, shutdown bool) {
	c.BlockHeight.Set(float64(blockHeight))
	if shutdown {
		c.Shutdown.Set(1)
	} else {
		c.Shutdown.Set(0)
	}
}

// ============ HTTP Handler ============

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for measuring latency
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ElapsedMs returns the elapsed time in milliseconds
func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Microseconds()) / 1000.0
}
