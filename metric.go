package names

import (
	"github.com/everFinance/names/schema"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricNameSpace = "names"
)

var (
	purchasesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "purchases_total",
			Help:      "accounts sold, by suffix",
		},
		[]string{"suffix"},
	)
	purchaseVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "purchase_volume",
			Help:      "sum of purchase prices, split into commission and fee",
		},
		[]string{"symbol", "part"},
	)
	depositVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "deposit_volume",
			Help:      "sum of escrow deposits",
		},
		[]string{"symbol", "contract"},
	)
	actionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "action_failures_total",
			Help:      "rejected actions, by action and error kind",
		},
		[]string{"action", "kind"},
	)
	unexportedEvents = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: MetricNameSpace,
			Name:      "unexported_events",
			Help:      "bookkeeping rows waiting for kafka export",
		},
		[]string{"topic"},
	)
)

func init() {
	prometheus.MustRegister(
		purchasesTotal,
		purchaseVolume,
		depositVolume,
		actionFailures,
		unexportedEvents,
	)
}

func metricPurchase(rec *schema.PurchaseRecord) {
	purchasesTotal.WithLabelValues(string(rec.Suffix)).Inc()
	commission, _ := rec.Commission.Decimal().Float64()
	fee, _ := rec.Fee.Decimal().Float64()
	purchaseVolume.WithLabelValues(rec.Price.Symbol.Code, "commission").Add(commission)
	purchaseVolume.WithLabelValues(rec.Price.Symbol.Code, "fee").Add(fee)
}

func metricDeposit(quantity schema.ExtendedAsset) {
	amount, _ := quantity.Quantity.Decimal().Float64()
	depositVolume.WithLabelValues(quantity.Quantity.Symbol.Code, string(quantity.Contract)).Add(amount)
}

func metricActionFailed(action string, err error) {
	actionFailures.WithLabelValues(action, schema.ErrorKind(err)).Inc()
}

func metricUnexported(topic string, count int64) {
	unexportedEvents.WithLabelValues(topic).Set(float64(count))
}
