package rpc

// Entry is the remote document for one journal entry, stored under
// users/<user_id>/journal_entries/<entry_id>.
type Entry struct {
	EntryID        string `json:"entryId"`
	Content        string `json:"content"`
	RemoteImageURL string `json:"remoteImageUrl,omitempty"`
	LastModified   int64  `json:"lastModified"`
}

// EntryInfo is the listing view of an Entry.
type EntryInfo struct {
	EntryID        string `json:"entryId"`
	RemoteImageURL string `json:"remoteImageUrl,omitempty"`
	LastModified   int64  `json:"lastModified"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type ListEntriesRequest struct {
	UserID string `json:"userId"`
}

type ListEntriesResponse struct {
	Entries []EntryInfo `json:"entries"`
}

type GetEntryRequest struct {
	UserID  string `json:"userId"`
	EntryID string `json:"entryId"`
}

type GetEntryResponse struct {
	Entry Entry `json:"entry"`
}

type PutEntryRequest struct {
	UserID string `json:"userId"`
	Entry  Entry  `json:"entry"`
}

type PutEntryResponse struct{}

type UploadImageRequest struct {
	UserID   string `json:"userId"`
	EntryID  string `json:"entryId"`
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

type UploadImageResponse struct {
	URL string `json:"url"`
}

type DownloadImageRequest struct {
	UserID string `json:"userId"`
	URL    string `json:"url"`
}

type DownloadImageResponse struct {
	Data []byte `json:"data"`
}

// UserScoped is implemented by every request carrying a user id, letting the
// auth interceptor compare it with the token's user.
type UserScoped interface {
	GetUserID() string
}

func (r *ListEntriesRequest) GetUserID() string   { return r.UserID }
func (r *GetEntryRequest) GetUserID() string      { return r.UserID }
func (r *PutEntryRequest) GetUserID() string      { return r.UserID }
func (r *UploadImageRequest) GetUserID() string   { return r.UserID }
func (r *DownloadImageRequest) GetUserID() string { return r.UserID }
