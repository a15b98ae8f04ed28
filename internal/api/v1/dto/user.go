package dto

import "courseapi/internal/model"

// UserCreateDTO is used for registration requests
type UserCreateDTO struct {
	FirstName    string `json:"firstName" validate:"required,notblank" label:"First name"`
	LastName     string `json:"lastName" validate:"required,notblank" label:"Last name"`
	EmailAddress string `json:"emailAddress" validate:"required,notblank" label:"Email address"`
	Password     string `json:"password" validate:"required,notblank,maxbytes=72" label:"Password"`
}

// UserResponseDTO is the public view of a user: no password, no timestamps.
type UserResponseDTO struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

func NewUserResponse(u *model.User) UserResponseDTO {
	return UserResponseDTO{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		EmailAddress: u.EmailAddress,
	}
}
