package models

// ErrorResponse is the standard error payload returned by controllers.
type ErrorResponse struct {
	Status  int    `json:"status"`  // HTTP status code
	Message string `json:"message"` // error detail
}
