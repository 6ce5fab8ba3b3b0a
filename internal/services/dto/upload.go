package dto

type UploadResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}
