package models

// MutationResult is the lenient decoding of any create/update/delete response.
// The catalog answers with {"message", "id"} on create, a full record or a
// message on update and {"detail"} on delete; whatever is present is kept.
type MutationResult struct {
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Summary is the human-readable part of the response, if any.
func (r MutationResult) Summary() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Detail
}

// UploadResult is returned by the image upload endpoint.
type UploadResult struct {
	URL string `json:"url"`
}
