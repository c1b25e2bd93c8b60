package api

import "net/http"

// General errors
var (
	ErrNil        = NewBusinessError(0, "Success")
	ErrValidation = NewBusinessError(1, "Invalid parameter")
	ErrInternal   = NewBusinessError(2, "Internal server error")
)

type BusinessError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`

	status int // http status code, defaults to 200
}

func NewBusinessError(code int, message string) *BusinessError {
	return &BusinessError{Code: code, Message: message}
}

func NewBusinessErrorWithData(code int, message string, data interface{}) *BusinessError {
	return &BusinessError{Code: code, Message: message, Data: data}
}

func (err *BusinessError) Error() string {
	return err.Message
}

func (be *BusinessError) WithData(data interface{}) *BusinessError {
	return &BusinessError{Code: be.Code, Message: be.Message, Data: data, status: be.status}
}

// WithStatus returns a copy replied with the given http status code.
func (be *BusinessError) WithStatus(status int) *BusinessError {
	return &BusinessError{Code: be.Code, Message: be.Message, Data: be.Data, status: status}
}

// HTTPStatus returns the http status code to reply with.
func (be *BusinessError) HTTPStatus() int {
	if be.status == 0 {
		return http.StatusOK
	}
	return be.status
}

// Success reports whether the error is the success envelope.
func (be *BusinessError) Success() bool {
	return be.Code == ErrNil.Code
}
