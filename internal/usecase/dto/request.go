package dto

// EmergencyRequest - запрос на обработку экстренного вызова
type EmergencyRequest struct {
	Address string `json:"address" validate:"required"`
	Details string `json:"details" validate:"required"`
}

// SignUpRequest - запрос на регистрацию
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInRequest - запрос на вход
type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
