package dto

import "github.com/cuongbtq/tunel-admin/internal/auth"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success   bool          `json:"success"`
	Token     string        `json:"token"`
	Admin     auth.Identity `json:"admin"`
	ExpiresIn string        `json:"expiresIn"`
}

type VerifyResponse struct {
	Success bool          `json:"success"`
	Admin   auth.Identity `json:"admin"`
	Message string        `json:"message"`
}

// AdminProfile is the identity plus the permissions granted to it
type AdminProfile struct {
	auth.Identity
	LastLogin   string   `json:"lastLogin"`
	Permissions []string `json:"permissions"`
}

type ProfileResponse struct {
	Success bool         `json:"success"`
	Admin   AdminProfile `json:"admin"`
}
