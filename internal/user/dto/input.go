package dto

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput fields left blank keep their current value.
type UpdateProfileInput struct {
	Name  string
	Email string
}
