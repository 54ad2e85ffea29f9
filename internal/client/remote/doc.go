// Package remote is the client side of the Remote Entry Store.
//
// # Overview
//
// Store is the contract the sync engine depends on: a connectivity probe,
// listing and fetching the user's documents, full-overwrite upserts and
// image transfer. GRPCClient implements it against the journal server.
//
// # Error Handling
//
// gRPC status codes are mapped onto sentinel errors so callers can use
// errors.Is: ErrUnavailable, ErrUnauthorized, common.ErrorNotFound.
// Image transfers additionally wrap common.ErrUpload or common.ErrDownload.
package remote
