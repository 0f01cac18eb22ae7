package models

// VoteRequest is the JSON body of POST /votes/.
type VoteRequest struct {
	FeatureID int64 `json:"feature_id"`
}

// Vote is the record the backend returns after a vote is cast.
type Vote struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	FeatureID int64  `json:"feature_id"`
	CreatedAt string `json:"created_at"`
}

// Ack is a bare acknowledgement such as the response to DELETE /votes/{id}.
type Ack struct {
	Message string `json:"message"`
}

// APIErrorBody is the error shape the backend uses for status >= 400.
type APIErrorBody struct {
	Detail string `json:"detail"`
}

// Health is the body of GET /health.
type Health struct {
	Status string `json:"status"`
}
