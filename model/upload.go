package model

// PresignUploadRequest asks for a presigned object-store upload URL.
type PresignUploadRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
}

type PresignUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	ExpiresIn int    `json:"expires_in"` // seconds
}

type PresignDownloadResponse struct {
	Key         string `json:"key"`
	DownloadURL string `json:"download_url"`
	ExpiresIn   int    `json:"expires_in"`
}
