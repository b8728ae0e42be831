package dtos

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DTO for user registration
type DTOForUserCreate struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Phone     string `json:"phone" binding:"required,isphone"`
	Role      string `json:"role"`
	AdminCode string `json:"adminCode"`
}

// Normalize trims the free-text fields and puts them in NFC so visually
// identical addresses compare equal.
func (d *DTOForUserCreate) Normalize() {
	d.Name = norm.NFC.String(strings.TrimSpace(d.Name))
	d.Email = norm.NFC.String(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
}

// DTO for user login
type DTOForUserLogin struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Normalize puts the email in the same form Register stores it in.
func (d *DTOForUserLogin) Normalize() {
	d.Email = norm.NFC.String(strings.TrimSpace(d.Email))
}

type IDResponse struct {
	ID uint `json:"id"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
