package domain

// Registration is the (name, email) pair submitted by a user.
// It is built at submit time and passed by value.
type Registration struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FailureBody is the shape of a rejected registration response.
type FailureBody struct {
	ErrorMessage *string `json:"errorMessage"`
}
