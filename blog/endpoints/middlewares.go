package endpoints

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/metrics"

	"github.com/wtorkanorka/BlogSynergy/errors"
	"github.com/wtorkanorka/BlogSynergy/log"
)

// Metrics are the request counter and latency histogram shared by the
// endpoints. Both are labelled with method and error.
type Metrics struct {
	Requests metrics.Counter
	Duration metrics.Histogram
}

// LoggingMiddleware logs every call of the endpoint. Failures on the server
// side are logged as errors, the other ones at debug level.
func LoggingMiddleware(logger log.Logger, method string) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(begin time.Time) {
				l := logger.With("method", method).With("took", time.Since(begin))
				if err == nil {
					l.Debugf("ok")
				} else if errors.Kind(err) == errors.KindInternal {
					l.Errorf("%v", err)
				} else {
					l.Debugf("%s: %v", errors.Kind(err), err)
				}
			}(time.Now())

			return next(ctx, request)
		}
	}
}

// InstrumentingMiddleware counts the calls of the endpoint and measures
// their duration.
func InstrumentingMiddleware(m Metrics, method string) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(begin time.Time) {
				lvs := []string{"method", method, "error", fmt.Sprint(err != nil)}
				m.Requests.With(lvs...).Add(1)
				m.Duration.With(lvs...).Observe(time.Since(begin).Seconds())
			}(time.Now())

			return next(ctx, request)
		}
	}
}
