package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type signupRequest struct {
	Name       string `json:"name"        validate:"required,min=4"`
	Email      string `json:"email"       validate:"required,email"`
	Phone      string `json:"phone"       validate:"required,phone"`
	Password   string `json:"password"    validate:"required,min=8,max=72"`
	ProductKey string `json:"productKey"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type productKeyRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	UserType string `json:"userType"  validate:"required,oneof=BUYER REALTOR ADMIN"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type productKeyResponse struct {
	ProductKey string `json:"productKey"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}
