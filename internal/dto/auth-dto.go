package dto

type LoginDTO struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	RememberMe bool   `json:"remember_me"`
}

type AuthResponseDTO struct {
	AccessToken string         `json:"accessToken"`
	Admin       AdminPublicDTO `json:"admin"`
}

type AdminPublicDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}
