package api

type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Service string `json:"service" example:"zenchair"`
}
