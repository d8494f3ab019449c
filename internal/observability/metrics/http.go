package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/edunexa/academy-api/internal/observability/errors"
	"github.com/edunexa/academy-api/internal/observability/statsd"
)

// RequestMetric captures details about a completed HTTP request for metric
// emission.
type RequestMetric struct {
	Method   string
	Status   int
	Duration time.Duration
}

// EmitRequest emits standardised HTTP request metrics.
func EmitRequest(sink statsd.Sink, in RequestMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"method": in.Method,
		"status": strconv.Itoa(in.Status),
	}

	sink.Count("http.request", 1, tags)

	if in.Duration > 0 {
		sink.Timing("http.request.duration", in.Duration, CloneTags(tags))
	}
}

// CacheMetric captures a catalog cache lookup outcome.
type CacheMetric struct {
	Resource string
	Hit      bool
	Err      error
}

// EmitCacheLookup emits catalog cache hit/miss counters.
func EmitCacheLookup(sink statsd.Sink, in CacheMetric) {
	if sink == nil {
		return
	}

	result := "miss"
	if in.Hit {
		result = "hit"
	}

	tags := map[string]string{
		"resource": in.Resource,
		"result":   result,
	}
	if in.Err != nil {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("catalog.cache.lookup", 1, tags)
}

// CloneTags creates a shallow copy of a tag map, filtering out empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
