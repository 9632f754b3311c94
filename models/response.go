package models

type ApiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   interface{} `json:"error"`
}

// ErrorBody is the error half of a failed ApiResponse.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Message    string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	User UserSummary `json:"user"`
}

func SuccessResponse(data interface{}) ApiResponse {
	return ApiResponse{Success: true, Data: data, Error: nil}
}

func ErrorResponse(body ErrorBody) ApiResponse {
	return ApiResponse{Success: false, Data: nil, Error: body}
}
