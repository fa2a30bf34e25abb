package models

// APIResponse is the uniform envelope returned by every endpoint.
// Errors use the same shape with Success=false and no Data.
// swagger:model APIResponse
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}
