package api

// swagger:model api.SortRequest
type SortRequest struct {
	Key string `query:"key" validate:"required,oneof=id name company" example:"name"`
}
