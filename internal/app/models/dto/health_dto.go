package dto

// HealthResponse reports service liveness
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
