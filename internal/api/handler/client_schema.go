package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createClientRequest struct {
	Name        string `json:"name"         validate:"required"`
	Phone       string `json:"phone"        validate:"required"`
	Address     string `json:"address"      validate:"required"`
	Cedula      string `json:"cedula"       validate:"required"`
	Email       string `json:"email"        validate:"omitempty,email"`
	CollectorID string `json:"collector_id"`
}

type updateClientRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Cedula      *string `json:"cedula"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	CollectorID *string `json:"collector_id"`
	Status      *string `json:"status"       validate:"omitempty,oneof=active inactive"`
}
