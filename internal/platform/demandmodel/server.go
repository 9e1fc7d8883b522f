package demandmodel

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	grpccodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
)

// Scorer is the server-side scoring function.
type Scorer interface {
	Score(ctx context.Context, features domain.FeatureVector) (float64, error)
}

// ScoreFunc adapts a function to Scorer.
type ScoreFunc func(ctx context.Context, features domain.FeatureVector) (float64, error)

func (f ScoreFunc) Score(ctx context.Context, features domain.FeatureVector) (float64, error) {
	return f(ctx, features)
}

// RegisterServer exposes scorer under the given full method name.
func RegisterServer(s grpc.ServiceRegistrar, method string, scorer Scorer) error {
	desc, err := serviceDesc(NormalizeMethod(method))
	if err != nil {
		return err
	}
	s.RegisterService(desc, scorer)
	return nil
}

func serviceDesc(fullMethod string) (*grpc.ServiceDesc, error) {
	parts := strings.Split(strings.TrimPrefix(fullMethod, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid gRPC method %q, want /package.Service/Method", fullMethod)
	}

	return &grpc.ServiceDesc{
		ServiceName: parts[0],
		HandlerType: (*Scorer)(nil),
		Methods: []grpc.MethodDesc{{
			MethodName: parts[1],
			Handler:    predictHandler(fullMethod),
		}},
		Streams: []grpc.StreamDesc{},
	}, nil
}

func predictHandler(fullMethod string) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.ListValue)
		if err := dec(in); err != nil {
			return nil, err
		}
		scorer := srv.(Scorer)
		if interceptor == nil {
			return predict(ctx, scorer, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return predict(ctx, scorer, req.(*structpb.ListValue))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func predict(ctx context.Context, scorer Scorer, in *structpb.ListValue) (*wrapperspb.DoubleValue, error) {
	features, err := decodeFeatures(in)
	if err != nil {
		return nil, status.Error(grpccodes.InvalidArgument, err.Error())
	}

	demand, err := scorer.Score(ctx, features)
	if err != nil {
		if _, ok := status.FromError(err); ok {
			return nil, err
		}
		return nil, status.Error(grpccodes.Internal, err.Error())
	}

	return wrapperspb.Double(demand), nil
}
