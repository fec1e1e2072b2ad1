package server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/cardscan/internal/common"
)

const RequestIDHeader = "x-request-id"

// UnaryInterceptor attaches a request id and logger to the context, maps
// application errors to gRPC status codes and logs every call.
func UnaryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		rid := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get(RequestIDHeader); len(v) > 0 {
				rid = v[0]
			}
		}
		if rid == "" {
			rid = common.NewRequestID()
		}
		l := logger.With("request_id", rid, "method", info.FullMethod)
		ctx = common.WithLogger(common.WithRequestID(ctx, rid), l)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, rid))

		resp, err := handler(ctx, req)
		err = common.ToStatus(err)

		code := status.Code(err)
		attrs := []any{"code", code.String(), "duration_ms", time.Since(start).Milliseconds()}
		switch code {
		case codes.OK:
			l.Info("rpc.ok", attrs...)
		case codes.Internal, codes.Unknown:
			l.Error("rpc.failed", append(attrs, "error", err)...)
		default:
			l.Warn("rpc.rejected", append(attrs, "error", err)...)
		}
		return resp, err
	}
}
