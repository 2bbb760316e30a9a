package server

// Response is the envelope for every API reply.
type Response struct {
	Code    int         `json:"code"`    // 0 on success, non-zero on failure
	Message string      `json:"message"` // human readable status
	Data    interface{} `json:"data"`    // payload
}

// Success wraps data in a successful response.
func Success(data interface{}) Response {
	return Response{
		Code:    0,
		Message: "success",
		Data:    data,
	}
}

// SuccessWithMessage wraps data with a custom success message.
func SuccessWithMessage(message string, data interface{}) Response {
	return Response{
		Code:    0,
		Message: message,
		Data:    data,
	}
}

// Error builds a failure response without a payload.
func Error(code int, message string) Response {
	return Response{
		Code:    code,
		Message: message,
		Data:    nil,
	}
}

// ErrorWithData builds a failure response carrying extra detail.
func ErrorWithData(code int, message string, data interface{}) Response {
	return Response{
		Code:    code,
		Message: message,
		Data:    data,
	}
}
