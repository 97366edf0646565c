package models

type SearchRequest struct {
	Query string `json:"query"`
	Site  string `json:"site"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
