package remote

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/journalkeeper/internal/client/models"
	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.JournalServiceClient
	accessToken string
}

var _ Store = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient dials endpointURL lazily; the first RPC establishes the
// connection.
func NewGRPCClient(endpointURL, accessToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken}
	if err := c.init(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) init(extra ...grpc.DialOption) error {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(rpc.MaxMessageSize),
			grpc.MaxCallSendMsgSize(rpc.MaxMessageSize),
		),
	}
	opts = append(opts, extra...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewJournalServiceClient(conn)
	return nil
}

// SetAccessToken replaces the token attached to subsequent calls.
func (s *GRPCClient) SetAccessToken(token string) {
	s.accessToken = token
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) List(ctx context.Context, userID string) ([]models.RemoteEntryInfo, error) {
	resp, err := s.client.ListEntries(ctx, &rpc.ListEntriesRequest{UserID: userID})
	if err != nil {
		return nil, s.mapError(err)
	}

	res := make([]models.RemoteEntryInfo, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		res = append(res, models.RemoteEntryInfo{
			ID:             e.EntryID,
			RemoteImageURL: e.RemoteImageURL,
			LastModified:   e.LastModified,
		})
	}
	return res, nil
}

func (s *GRPCClient) Get(ctx context.Context, userID, entryID string) (*models.RemoteEntry, error) {
	resp, err := s.client.GetEntry(ctx, &rpc.GetEntryRequest{UserID: userID, EntryID: entryID})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &models.RemoteEntry{
		ID:             resp.Entry.EntryID,
		Content:        resp.Entry.Content,
		RemoteImageURL: resp.Entry.RemoteImageURL,
		LastModified:   resp.Entry.LastModified,
	}, nil
}

func (s *GRPCClient) Put(ctx context.Context, userID string, entry *models.RemoteEntry) error {
	req := &rpc.PutEntryRequest{
		UserID: userID,
		Entry: rpc.Entry{
			EntryID:        entry.ID,
			Content:        entry.Content,
			RemoteImageURL: entry.RemoteImageURL,
			LastModified:   entry.LastModified,
		},
	}
	if _, err := s.client.PutEntry(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) UploadImage(ctx context.Context, userID, entryID, filename string, data []byte) (string, error) {
	req := &rpc.UploadImageRequest{UserID: userID, EntryID: entryID, Filename: filename, Data: data}
	resp, err := s.client.UploadImage(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrUpload, s.mapError(err))
	}
	if resp.URL == "" {
		return "", fmt.Errorf("%w: empty url returned", common.ErrUpload)
	}
	return resp.URL, nil
}

func (s *GRPCClient) DownloadImage(ctx context.Context, userID, url string) ([]byte, error) {
	resp, err := s.client.DownloadImage(ctx, &rpc.DownloadImageRequest{UserID: userID, URL: url})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrDownload, s.mapError(err))
	}
	return resp.Data, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, st.Message())
	case codes.Canceled:
		return context.Canceled
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
