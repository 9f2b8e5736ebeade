package domain

import "fmt"

// APIError is the error body returned by the REST endpoint of the hosted database.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details string
	Hint    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api error (status %d", e.Status)
	if e.Code != "" {
		msg += ", code " + e.Code
	}
	msg += "): " + e.Message
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}
