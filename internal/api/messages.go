package api

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status  string `json:"status"`
	App     string `json:"app"`
	Version string `json:"version"`
}

type CreateLetterRequest struct {
	Content    string    `json:"content"`
	Title      string    `json:"title,omitempty"`
	OpenAt     time.Time `json:"open_at"`
	SendToVoid bool      `json:"send_to_void"`
}

type CreateLetterResponse struct {
	ID         string    `json:"id"`
	OpenAt     time.Time `json:"open_at"`
	SendToVoid bool      `json:"send_to_void"`
	Message    string    `json:"message"`
}

type OpenLetterRequest struct {
	ID string `json:"id"`
}

type OpenLetterResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	OpenedAt  time.Time `json:"opened_at"`
}

type ListOpenableLettersRequest struct{}

// LetterSummary describes a letter without its sealed content.
type LetterSummary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	OpenAt    time.Time `json:"open_at"`
}

type ListOpenableLettersResponse struct {
	Letters []LetterSummary `json:"letters"`
}

type CreateIdentityRequest struct{}

type CreateIdentityResponse struct {
	IdentityToken string    `json:"identity_token"`
	SessionToken  string    `json:"session_token"`
	ExpiresAt     time.Time `json:"expires_at"`
}

type GetIdentityRequest struct{}

type GetIdentityResponse struct {
	IdentityToken string    `json:"identity_token"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	TimeRemaining string    `json:"time_remaining"`
}

type CreateContentRequest struct {
	Text      string `json:"text,omitempty"`
	WithImage bool   `json:"with_image"`
}

type CreateContentResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	// UploadURL is a presigned PUT URL for the image, set when WithImage was requested.
	UploadURL string `json:"upload_url,omitempty"`
}

type ListGalleryRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type GalleryItem struct {
	ID            string    `json:"id"`
	Text          string    `json:"text,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	ApplauseCount int       `json:"applause_count"`
	TimeRemaining string    `json:"time_remaining"`
}

type ListGalleryResponse struct {
	Items []GalleryItem `json:"items"`
}

type ApplaudRequest struct {
	ContentID string `json:"content_id"`
}

type ApplaudResponse struct {
	ApplauseCount int `json:"applause_count"`
}
