// Package demandmodel calls the demand scoring function over gRPC.
//
// The wire contract is a single unary method taking a google.protobuf.ListValue of the
// positional features (domain.FeatureOrder) and returning a google.protobuf.DoubleValue.
package demandmodel

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	grpccodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
)

// DefaultMethod is the full gRPC method name of the scoring function.
const DefaultMethod = "/pricing.demand.v1.DemandModel/Predict"

var tracer = otel.Tracer("github.com/light-bringer/fnb-pricing-service/internal/platform/demandmodel")

// Client implements contracts.DemandModel.
type Client struct {
	conn    grpc.ClientConnInterface
	close   func() error
	method  string
	timeout time.Duration
}

// Dial opens a plaintext connection to target. The connection is lazy; the first
// Predict call establishes it.
func Dial(target, method string, timeout time.Duration, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create demand model client for %s: %w", target, err)
	}
	c := NewClient(conn, method, timeout)
	c.close = conn.Close
	return c, nil
}

// NewClient wraps an existing connection. An empty method means DefaultMethod.
func NewClient(conn grpc.ClientConnInterface, method string, timeout time.Duration) *Client {
	return &Client{
		conn:    conn,
		close:   func() error { return nil },
		method:  NormalizeMethod(method),
		timeout: timeout,
	}
}

// NormalizeMethod accepts "pkg.Service/Method" or "/pkg.Service/Method".
func NormalizeMethod(method string) string {
	method = strings.TrimSpace(method)
	if method == "" {
		return DefaultMethod
	}
	if !strings.HasPrefix(method, "/") {
		method = "/" + method
	}
	return method
}

// Method returns the full method name the client calls.
func (c *Client) Method() string {
	return c.method
}

// Predict scores one feature vector.
func (c *Client) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	ctx, span := tracer.Start(ctx, "demandmodel.Predict",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("rpc.method", c.method)),
	)
	defer span.End()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := encodeFeatures(features)
	resp := &wrapperspb.DoubleValue{}
	if err := c.conn.Invoke(ctx, c.method, req, resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "predict failed")
		return 0, classify(err)
	}

	demand := resp.GetValue()
	if math.IsNaN(demand) || math.IsInf(demand, 0) || demand < 0 {
		span.SetStatus(codes.Error, "invalid prediction")
		return 0, fmt.Errorf("%w: model returned invalid demand %v", domain.ErrModelUnavailable, demand)
	}

	span.SetAttributes(attribute.Float64("demand", demand))
	return demand, nil
}

// Close releases the connection if the client owns it.
func (c *Client) Close() error {
	return c.close()
}

// Retryable reports whether err is a transient transport failure worth retrying.
func Retryable(err error) bool {
	switch status.Code(err) {
	case grpccodes.Unavailable, grpccodes.DeadlineExceeded, grpccodes.ResourceExhausted, grpccodes.Aborted:
		return true
	default:
		return false
	}
}

func classify(err error) error {
	switch status.Code(err) {
	case grpccodes.InvalidArgument:
		return fmt.Errorf("%w: model rejected features: %w", domain.ErrMalformedRecord, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrModelUnavailable, err)
	}
}

func encodeFeatures(features domain.FeatureVector) *structpb.ListValue {
	values := make([]*structpb.Value, 0, domain.FeatureCount)
	for _, f := range features {
		values = append(values, structpb.NewNumberValue(f))
	}
	return &structpb.ListValue{Values: values}
}

func decodeFeatures(req *structpb.ListValue) (domain.FeatureVector, error) {
	var v domain.FeatureVector
	if got := len(req.GetValues()); got != domain.FeatureCount {
		return v, fmt.Errorf("expected %d features, got %d", domain.FeatureCount, got)
	}
	for i, val := range req.GetValues() {
		n, ok := val.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return v, fmt.Errorf("feature %s is not a number", domain.FeatureOrder[i])
		}
		if math.IsNaN(n.NumberValue) || math.IsInf(n.NumberValue, 0) {
			return v, fmt.Errorf("feature %s is not finite", domain.FeatureOrder[i])
		}
		v[i] = n.NumberValue
	}
	return v, nil
}
