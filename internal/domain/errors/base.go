package errors

import "fmt"

type AppError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	HTTPCode int    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, httpCode int, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Localize returns a copy carrying the catalog message for lang. Errors
// whose code is not in the catalog keep their original message.
func (e *AppError) Localize(lang string) *AppError {
	msg, ok := lookup(e.Code, lang)
	if !ok {
		msg = e.Message
	}
	return &AppError{
		Code:     e.Code,
		Message:  msg,
		HTTPCode: e.HTTPCode,
	}
}
