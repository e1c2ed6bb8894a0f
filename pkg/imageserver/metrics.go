package imageserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// imagesServed tracks served image responses by format and status.
	imagesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qr_images_served_total",
			Help: "Total QR image responses by format and status",
		},
		[]string{"format", "status"},
	)

	// notModified tracks 304 Not Modified responses.
	notModified = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qr_image_not_modified_total",
			Help: "Total 304 Not Modified responses for QR images",
		},
	)

	// renderDuration tracks QR render time by format.
	renderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qr_render_duration_seconds",
			Help:    "QR image render duration in seconds by format",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"format"},
	)

	// rejectedRequests tracks requests rejected by the protection policy.
	rejectedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qr_image_rejected_total",
			Help: "Total QR image requests rejected by the URL protection policy",
		},
	)
)
