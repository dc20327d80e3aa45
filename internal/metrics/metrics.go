package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PlaylistTrimDuration tracks how long trimming a live playlist takes.
	PlaylistTrimDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "airwave_playlist_trim_duration_seconds",
		Help:    "Time taken to trim a live HLS playlist window",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	})

	// PlaylistSegmentsDropped counts segments dropped from live playlist windows.
	PlaylistSegmentsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "airwave_playlist_segments_dropped_total",
		Help: "Total segments dropped while trimming live playlists",
	})

	// FilterBuildTotal counts complex filter constructions by acceleration kind.
	FilterBuildTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "airwave_filter_build_total",
		Help: "Total complex filter graphs built, by hardware acceleration",
	}, []string{"acceleration"})

	// StreamSelectorFallbackTotal counts rule-file failures that degraded to the
	// built-in stream selector.
	StreamSelectorFallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "airwave_stream_selector_fallback_total",
		Help: "Total custom stream selector failures, by channel",
	}, []string{"channel"})
)

// ObservePlaylistTrim records one playlist trim.
func ObservePlaylistTrim(dropped int, duration time.Duration) {
	PlaylistTrimDuration.Observe(duration.Seconds())
	if dropped > 0 {
		PlaylistSegmentsDropped.Add(float64(dropped))
	}
}

// CountFilterBuild records one complex filter construction.
func CountFilterBuild(acceleration string) {
	FilterBuildTotal.WithLabelValues(acceleration).Inc()
}

// CountStreamSelectorFallback records one degraded stream selection.
func CountStreamSelectorFallback(channel string) {
	StreamSelectorFallbackTotal.WithLabelValues(channel).Inc()
}
