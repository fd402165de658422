package dto

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Details []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail describes one invalid request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewValidationErrorResponse creates an error response carrying per-field details
func NewValidationErrorResponse(message string, details []ValidationDetail) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    ErrCodeValidation,
			Message: message,
			Details: details,
		},
	}
}

// ShopIDRequest represents a request with a shop ID path parameter
type ShopIDRequest struct {
	ShopID string `uri:"shopID" binding:"required,uuid"`
}

// OrderPushRequest represents a request addressing one order of a shop
type OrderPushRequest struct {
	ShopID  string `uri:"shopID" binding:"required,uuid"`
	OrderID string `uri:"orderID" binding:"required,uuid"`
}

// SyncTriggerRequest is the optional catalog sync trigger body
type SyncTriggerRequest struct {
	// Direction overrides the connection's configured direction for this run
	Direction string `json:"direction" binding:"omitempty,oneof=off push pull both"`
}

// HistoryRequest represents the sync history query parameters
type HistoryRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
