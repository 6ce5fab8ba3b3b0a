package dto

import "time"

type UpdateLocaleRequest struct {
	PreferredLocale string `json:"preferredLocale" validate:"required,max=5"`
}

type UserResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email,omitempty"`
	Image            string    `json:"image,omitempty"`
	Bio              string    `json:"bio,omitempty"`
	IsAdmin          bool      `json:"isAdmin"`
	PreferredLocale  string    `json:"preferredLocale,omitempty"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// AuthorInfo is the denormalized author block embedded in review and
// comment responses.
type AuthorInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type UserProfileResponse struct {
	UserResponse
	Reviews []*ReviewResponse `json:"reviews"`
}
