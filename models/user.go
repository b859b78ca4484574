package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FirstName                string               `bson:"firstName" json:"firstName"`
	LastName                 string               `bson:"lastName" json:"lastName"`
	EmailAddress             string               `bson:"emailAddress" json:"emailAddress"`
	Password                 string               `bson:"password" json:"-"`
	Image                    string               `bson:"image,omitempty" json:"image,omitempty"`
	AgreeTS                  bool                 `bson:"agreeTS" json:"agreeTS"`
	DateOfBirth              *time.Time           `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	FavoritePosts            []primitive.ObjectID `bson:"favoritePosts" json:"favoritePosts"`
	IsSubscribedToNewsletter bool                 `bson:"isSubscribedToNewsletter" json:"isSubscribedToNewsletter"`
	LastNamesUpdate          *time.Time           `bson:"lastNamesUpdate,omitempty" json:"lastNamesUpdate,omitempty"`
	Role                     string               `bson:"role" json:"role"`
	PasswordResetToken       string               `bson:"passwordResetToken,omitempty" json:"-"`
	PasswordResetExpires     *time.Time           `bson:"passwordResetExpires,omitempty" json:"-"`
	CreatedAt                time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt                time.Time            `bson:"updatedAt" json:"updatedAt"`
}

type RegisterRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
	AgreeTS      bool   `json:"agreeTS"`
}

type LoginRequest struct {
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateProfileRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Image       string `json:"image"`
}

type UpdatePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type NewsletterRequest struct {
	IsSubscribed *bool `json:"isSubscribed"`
}

// ProfileResponse is the shape returned by the profile endpoints. DateOfBirth
// is formatted as YYYY-MM-DD for form inputs.
type ProfileResponse struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	EmailAddress    string `json:"emailAddress"`
	Image           string `json:"image"`
	DateOfBirth     string `json:"dateOfBirth"`
	LastNamesUpdate string `json:"lastNamesUpdate,omitempty"`
}
