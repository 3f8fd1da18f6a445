package dto

// ErrorResponse is the body of every non-validation error
type ErrorResponse struct {
	Detail string `json:"detail" example:"Failed to create course"`
}

// NewErrorResponse creates an error response with a client-safe message
func NewErrorResponse(detail string) ErrorResponse {
	return ErrorResponse{Detail: detail}
}

// ValidationErrorItem describes one rejected part of the request
type ValidationErrorItem struct {
	Loc  []string `json:"loc" example:"body,name"`
	Msg  string   `json:"msg" example:"field required"`
	Type string   `json:"type" example:"value_error.missing"`
}

// ValidationErrorResponse is returned with 422 when the request body is invalid
type ValidationErrorResponse struct {
	Detail []ValidationErrorItem `json:"detail"`
}

// NewValidationErrors creates an empty validation error container
func NewValidationErrors() *ValidationErrorResponse {
	return &ValidationErrorResponse{Detail: make([]ValidationErrorItem, 0)}
}

// AddError records a failure at loc
func (v *ValidationErrorResponse) AddError(msg, errType string, loc ...string) *ValidationErrorResponse {
	v.Detail = append(v.Detail, ValidationErrorItem{
		Loc:  append([]string{"body"}, loc...),
		Msg:  msg,
		Type: errType,
	})
	return v
}

// HasErrors checks if there are any validation errors
func (v *ValidationErrorResponse) HasErrors() bool {
	return len(v.Detail) > 0
}
