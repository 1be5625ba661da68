package dto

type SignupRequest struct {
	Name     string `json:"name" validate:"required,fullname"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phonenum"`
	Password string `json:"password" validate:"required,strongpwd"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PasswordForgotRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
