// Package metrics instruments outgoing osu! API requests with Prometheus
// counters and latency histograms.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Label values for the api label.
const (
	APIv1    = "v1"
	APIv2    = "v2"
	APIOAuth = "oauth"
)

// Transport is an http.RoundTripper that records every request it forwards.
type Transport struct {
	next     http.RoundTripper
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewTransport wraps next, registering its collectors with reg. Collectors
// already registered by an earlier Transport are shared, so the v1 and v2
// clients may each wrap their own transport. A nil next uses
// http.DefaultTransport and a nil reg skips registration.
func NewTransport(next http.RoundTripper, reg prometheus.Registerer) (*Transport, error) {
	if next == nil {
		next = http.DefaultTransport
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "osu",
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Requests sent to the osu! API, by API generation, endpoint and status code",
	}, []string{"api", "endpoint", "code"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "osu",
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Time until the osu! API answered with response headers",
		Buckets:   prometheus.DefBuckets,
	}, []string{"api", "endpoint"})

	if reg != nil {
		var err error
		if requests, err = register(reg, requests); err != nil {
			return nil, err
		}
		if latency, err = register(reg, latency); err != nil {
			return nil, err
		}
	}

	return &Transport{next: next, requests: requests, latency: latency}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RoundTrip implements http.RoundTripper. A request that fails before a
// response arrives is counted with code "error".
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	api, endpoint := Classify(req.URL.Path)

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	t.latency.WithLabelValues(api, endpoint).Observe(time.Since(start).Seconds())

	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	t.requests.WithLabelValues(api, endpoint, code).Inc()

	return resp, err
}

// Classify maps a request path to its api and endpoint labels. Numeric
// segments collapse to ":id" so the label set stays bounded, e.g.
// "/api/v2/beatmaps/75/scores/users/2" becomes
// "beatmaps/:id/scores/users/:id".
func Classify(path string) (api, endpoint string) {
	path = strings.Trim(path, "/")

	switch {
	case strings.HasPrefix(path, "oauth/"):
		return APIOAuth, strings.TrimPrefix(path, "oauth/")
	case strings.HasPrefix(path, "api/v2/"):
		api, path = APIv2, strings.TrimPrefix(path, "api/v2/")
	default:
		api, path = APIv1, strings.TrimPrefix(path, "api/")
	}

	segments := strings.Split(path, "/")
	for i, s := range segments {
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	return api, strings.Join(segments, "/")
}
