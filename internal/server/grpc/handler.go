package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/rpc"
	"github.com/dmitrijs2005/journalkeeper/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors onto gRPC codes. Unknown errors become
// Internal without leaking their text.
func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, "forbidden")
	case errors.Is(err, common.ErrParse):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}
	s.logger.Error(ctx, op+" failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {
	if err := s.journal.Ping(ctx); err != nil {
		s.logger.Warn(ctx, "ping: backend unavailable", "error", err)
		return nil, status.Error(codes.Unavailable, "backend unavailable")
	}
	return &rpc.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) ListEntries(ctx context.Context, req *rpc.ListEntriesRequest) (*rpc.ListEntriesResponse, error) {
	userID := userIDFromContext(ctx)

	infos, err := s.journal.List(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "list entries", err)
	}

	resp := &rpc.ListEntriesResponse{Entries: make([]rpc.EntryInfo, 0, len(infos))}
	for _, i := range infos {
		resp.Entries = append(resp.Entries, rpc.EntryInfo{
			EntryID:        i.EntryID,
			RemoteImageURL: i.RemoteImageURL,
			LastModified:   i.LastModified,
		})
	}
	return resp, nil
}

func (s *GRPCServer) GetEntry(ctx context.Context, req *rpc.GetEntryRequest) (*rpc.GetEntryResponse, error) {
	doc, err := s.journal.Get(ctx, userIDFromContext(ctx), req.EntryID)
	if err != nil {
		return nil, s.toStatus(ctx, "get entry", err)
	}

	return &rpc.GetEntryResponse{Entry: rpc.Entry{
		EntryID:        doc.EntryID,
		Content:        doc.Content,
		RemoteImageURL: doc.RemoteImageURL,
		LastModified:   doc.LastModified,
	}}, nil
}

func (s *GRPCServer) PutEntry(ctx context.Context, req *rpc.PutEntryRequest) (*rpc.PutEntryResponse, error) {
	err := s.journal.Put(ctx, &models.Document{
		UserID:         userIDFromContext(ctx),
		EntryID:        req.Entry.EntryID,
		Content:        req.Entry.Content,
		RemoteImageURL: req.Entry.RemoteImageURL,
		LastModified:   req.Entry.LastModified,
	})
	if err != nil {
		return nil, s.toStatus(ctx, "put entry", err)
	}

	s.logger.Debug(ctx, "entry stored", "entry_id", req.Entry.EntryID)
	return &rpc.PutEntryResponse{}, nil
}

func (s *GRPCServer) UploadImage(ctx context.Context, req *rpc.UploadImageRequest) (*rpc.UploadImageResponse, error) {
	url, err := s.journal.UploadImage(ctx, userIDFromContext(ctx), req.EntryID, req.Filename, req.Data)
	if err != nil {
		return nil, s.toStatus(ctx, "upload image", err)
	}
	return &rpc.UploadImageResponse{URL: url}, nil
}

func (s *GRPCServer) DownloadImage(ctx context.Context, req *rpc.DownloadImageRequest) (*rpc.DownloadImageResponse, error) {
	data, err := s.journal.DownloadImage(ctx, userIDFromContext(ctx), req.URL)
	if err != nil {
		return nil, s.toStatus(ctx, "download image", err)
	}
	return &rpc.DownloadImageResponse{Data: data}, nil
}
