package types

// StatusEnvelope is the success wire shape for auth and mutation endpoints.
type StatusEnvelope struct {
	Status string `json:"status"`
	UserID string `json:"userId,omitempty"`
}

// ErrorEnvelope is the error wire shape shared by every endpoint.
type ErrorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// PageMeta describes a page's position within the full result set.
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// PageEnvelope wraps a page of records with its pagination metadata.
type PageEnvelope struct {
	Data       any      `json:"data"`
	Pagination PageMeta `json:"pagination"`
}
