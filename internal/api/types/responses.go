package types

// Error body for single-message failures: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error body for validation failures, listing every violated field:
// {"errors": ["...", "..."]}.
type ErrorsResponse struct {
	Errors []string `json:"errors"`
}

// Confirmation body for deletions and auth flows: {"message": "..."}.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is the selected-fields view of the admin row returned by
// create and update; the password hash is never serialized anywhere.
type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Resume   string `json:"resume"`
	Bio      string `json:"bio"`
}
