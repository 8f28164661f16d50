package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogHandler   blogHandler
	healthHandler healthHandler
	staticHandler staticHandler
}

// Envelope is the body of every API response.
// @Description Uniform response wrapper
type Envelope struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Blog retrieved successfully"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty" example:"3"`
	Error   string `json:"error,omitempty" example:"Not found"`
}

// HealthStatus is the data of GET /health.
type HealthStatus struct {
	Database  string `json:"database" example:"up"`
	StartedAt string `json:"startedAt" example:"2024-01-01T00:00:00Z"`
	Uptime    string `json:"uptime" example:"1h2m3s"`
}
