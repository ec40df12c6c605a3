package dto

// MarkAsReadRequest lists notification ids to mark read.
type MarkAsReadRequest struct {
	IDs []string `json:"ids"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}
