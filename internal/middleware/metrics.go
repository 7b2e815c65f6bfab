package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/aquaflow/internal/metrics"
)

// MetricsInterceptor counts and times every RPC by procedure and code.
// Successful calls are recorded with code "ok".
func MetricsInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			metrics.ObserveRPC(req.Spec().Procedure, code, time.Since(start))
			return resp, err
		}
	}
}
