package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "journalkeeper.JournalService"

// Full method names, as seen by interceptors.
const (
	MethodPing          = "/" + ServiceName + "/Ping"
	MethodListEntries   = "/" + ServiceName + "/ListEntries"
	MethodGetEntry      = "/" + ServiceName + "/GetEntry"
	MethodPutEntry      = "/" + ServiceName + "/PutEntry"
	MethodUploadImage   = "/" + ServiceName + "/UploadImage"
	MethodDownloadImage = "/" + ServiceName + "/DownloadImage"
)

// MaxMessageSize bounds request and response sizes; image payloads travel
// base64-encoded inside JSON.
const MaxMessageSize = 64 << 20

// JournalServiceServer is implemented by the server's gRPC handler.
type JournalServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	ListEntries(context.Context, *ListEntriesRequest) (*ListEntriesResponse, error)
	GetEntry(context.Context, *GetEntryRequest) (*GetEntryResponse, error)
	PutEntry(context.Context, *PutEntryRequest) (*PutEntryResponse, error)
	UploadImage(context.Context, *UploadImageRequest) (*UploadImageResponse, error)
	DownloadImage(context.Context, *DownloadImageRequest) (*DownloadImageResponse, error)
}

// UnimplementedJournalServiceServer can be embedded to satisfy the interface.
type UnimplementedJournalServiceServer struct{}

func (UnimplementedJournalServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedJournalServiceServer) ListEntries(context.Context, *ListEntriesRequest) (*ListEntriesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEntries not implemented")
}
func (UnimplementedJournalServiceServer) GetEntry(context.Context, *GetEntryRequest) (*GetEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetEntry not implemented")
}
func (UnimplementedJournalServiceServer) PutEntry(context.Context, *PutEntryRequest) (*PutEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PutEntry not implemented")
}
func (UnimplementedJournalServiceServer) UploadImage(context.Context, *UploadImageRequest) (*UploadImageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UploadImage not implemented")
}
func (UnimplementedJournalServiceServer) DownloadImage(context.Context, *DownloadImageRequest) (*DownloadImageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DownloadImage not implemented")
}

// RegisterJournalServiceServer registers srv on s.
func RegisterJournalServiceServer(s grpc.ServiceRegistrar, srv JournalServiceServer) {
	s.RegisterService(&JournalServiceDesc, srv)
}

// unaryHandler adapts a typed method into a grpc.MethodDesc handler.
func unaryHandler[Req any, Resp any](method string, call func(JournalServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(JournalServiceServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(s, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// JournalServiceDesc is the grpc.ServiceDesc for JournalService.
var JournalServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*JournalServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(MethodPing, JournalServiceServer.Ping)},
		{MethodName: "ListEntries", Handler: unaryHandler(MethodListEntries, JournalServiceServer.ListEntries)},
		{MethodName: "GetEntry", Handler: unaryHandler(MethodGetEntry, JournalServiceServer.GetEntry)},
		{MethodName: "PutEntry", Handler: unaryHandler(MethodPutEntry, JournalServiceServer.PutEntry)},
		{MethodName: "UploadImage", Handler: unaryHandler(MethodUploadImage, JournalServiceServer.UploadImage)},
		{MethodName: "DownloadImage", Handler: unaryHandler(MethodDownloadImage, JournalServiceServer.DownloadImage)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "journalkeeper/journal.json",
}

// JournalServiceClient is the client API for JournalService.
type JournalServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	ListEntries(ctx context.Context, in *ListEntriesRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error)
	GetEntry(ctx context.Context, in *GetEntryRequest, opts ...grpc.CallOption) (*GetEntryResponse, error)
	PutEntry(ctx context.Context, in *PutEntryRequest, opts ...grpc.CallOption) (*PutEntryResponse, error)
	UploadImage(ctx context.Context, in *UploadImageRequest, opts ...grpc.CallOption) (*UploadImageResponse, error)
	DownloadImage(ctx context.Context, in *DownloadImageRequest, opts ...grpc.CallOption) (*DownloadImageResponse, error)
}

type journalServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewJournalServiceClient(cc grpc.ClientConnInterface) JournalServiceClient {
	return &journalServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *journalServiceClient) ListEntries(ctx context.Context, in *ListEntriesRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error) {
	return invoke[ListEntriesResponse](ctx, c.cc, MethodListEntries, in, opts)
}

func (c *journalServiceClient) GetEntry(ctx context.Context, in *GetEntryRequest, opts ...grpc.CallOption) (*GetEntryResponse, error) {
	return invoke[GetEntryResponse](ctx, c.cc, MethodGetEntry, in, opts)
}

func (c *journalServiceClient) PutEntry(ctx context.Context, in *PutEntryRequest, opts ...grpc.CallOption) (*PutEntryResponse, error) {
	return invoke[PutEntryResponse](ctx, c.cc, MethodPutEntry, in, opts)
}

func (c *journalServiceClient) UploadImage(ctx context.Context, in *UploadImageRequest, opts ...grpc.CallOption) (*UploadImageResponse, error) {
	return invoke[UploadImageResponse](ctx, c.cc, MethodUploadImage, in, opts)
}

func (c *journalServiceClient) DownloadImage(ctx context.Context, in *DownloadImageRequest, opts ...grpc.CallOption) (*DownloadImageResponse, error) {
	return invoke[DownloadImageResponse](ctx, c.cc, MethodDownloadImage, in, opts)
}
