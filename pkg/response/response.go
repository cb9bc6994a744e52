package response

// Response is the JSON envelope of every API reply.
type Response struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Title      string      `json:"title,omitempty"`
	Field      string      `json:"field,omitempty"`
}

// Success wraps data in a success envelope.
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error wraps an error message in an error envelope.
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// Invalid is an error envelope for a rejected form, naming the offending field.
func Invalid(statusCode int, title, message, field string) Response {
	r := Error(statusCode, message)
	r.Title = title
	r.Field = field
	return r
}
