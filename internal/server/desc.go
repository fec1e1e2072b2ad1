package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const CardScanServiceName = "cardscan.v1.CardScanService"

// CardScanServer is the server API for cardscan.v1.CardScanService.
// Requests and responses are protobuf well-known types; documents travel as Struct.
type CardScanServer interface {
	ParseText(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	GetScan(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ListScans(context.Context, *wrapperspb.Int32Value) (*structpb.Struct, error)
	IngestFile(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	IngestDirectory(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ExportScans(context.Context, *wrapperspb.Int32Value) (*wrapperspb.BytesValue, error)
}

func fullMethod(name string) string { return "/" + CardScanServiceName + "/" + name }

func unaryHandler[Req, Resp any](name string, call func(CardScanServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CardScanServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(CardScanServer), ctx, req.(*Req))
		})
	}
}

var CardScanService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CardScanServiceName,
	HandlerType: (*CardScanServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ParseText", Handler: unaryHandler("ParseText", CardScanServer.ParseText)},
		{MethodName: "GetScan", Handler: unaryHandler("GetScan", CardScanServer.GetScan)},
		{MethodName: "ListScans", Handler: unaryHandler("ListScans", CardScanServer.ListScans)},
		{MethodName: "IngestFile", Handler: unaryHandler("IngestFile", CardScanServer.IngestFile)},
		{MethodName: "IngestDirectory", Handler: unaryHandler("IngestDirectory", CardScanServer.IngestDirectory)},
		{MethodName: "ExportScans", Handler: unaryHandler("ExportScans", CardScanServer.ExportScans)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cardscan/v1/cardscan.proto",
}

func RegisterCardScanServer(s grpc.ServiceRegistrar, srv CardScanServer) {
	s.RegisterService(&CardScanService_ServiceDesc, srv)
}

// CardScanClient calls cardscan.v1.CardScanService.
type CardScanClient struct {
	cc grpc.ClientConnInterface
}

func NewCardScanClient(cc grpc.ClientConnInterface) *CardScanClient {
	return &CardScanClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, name string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, fullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CardScanClient) ParseText(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, "ParseText", in, opts)
}

func (c *CardScanClient) GetScan(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, "GetScan", in, opts)
}

func (c *CardScanClient) ListScans(ctx context.Context, in *wrapperspb.Int32Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, "ListScans", in, opts)
}

func (c *CardScanClient) IngestFile(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, "IngestFile", in, opts)
}

func (c *CardScanClient) IngestDirectory(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, "IngestDirectory", in, opts)
}

func (c *CardScanClient) ExportScans(ctx context.Context, in *wrapperspb.Int32Value, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return invoke[wrapperspb.BytesValue](ctx, c.cc, "ExportScans", in, opts)
}
