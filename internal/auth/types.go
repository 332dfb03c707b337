package auth

import (
	"github.com/mirzahilmi/interaktifkredi/internal/form"
	"github.com/mirzahilmi/interaktifkredi/internal/view"
)

type OtpRequest struct {
	Code string `mapstructure:"Code" validate:"required,otp" label:"SMS şifresi"`
}

type ResendResponse struct {
	Success bool   `json:"success" doc:"Whether a new code was sent"`
	Message string `json:"message" doc:"Customer facing result message"`
}

type loginPage struct {
	view.Page
	TCKN   string
	GSM    string
	Errors form.Errors
}

type otpPage struct {
	view.Page
	GSM    string
	Errors form.Errors
}
