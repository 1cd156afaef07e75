package response

import "strconv"

type StatusCode int

const (
	StatusOK                  StatusCode = 200
	StatusCreated             StatusCode = 201
	StatusBadRequest          StatusCode = 400
	StatusNotFound            StatusCode = 404
	StatusLengthRequired      StatusCode = 411
	StatusPayloadTooLarge     StatusCode = 413
	StatusInternalServerError StatusCode = 500
)

var reasons = map[StatusCode]string{
	StatusOK:                  "OK",
	StatusCreated:             "Created",
	StatusBadRequest:          "Bad Request",
	StatusNotFound:            "NOT FOUND",
	StatusLengthRequired:      "Length Required",
	StatusPayloadTooLarge:     "Payload Too Large",
	StatusInternalServerError: "Internal Server Error",
}

// StatusLine returns the status line for code without its line terminator.
func (code StatusCode) StatusLine() string {
	line := "HTTP/1.1 " + strconv.Itoa(int(code))
	if reason, ok := reasons[code]; ok {
		line += " " + reason
	}
	return line
}
