package handlers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/etori-p/HomeLend/config"
	"github.com/etori-p/HomeLend/models"
	"github.com/etori-p/HomeLend/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const passwordResetTokenTTL = time.Hour

type UserController struct {
	collection *mongo.Collection
	mailer     utils.Mailer
}

func NewUserController() *UserController {
	collectionName := os.Getenv("MONGODB_COLLECTION_USERS")
	if collectionName == "" {
		collectionName = "users"
	}
	return &UserController{
		collection: config.GetCollection(collectionName),
		mailer:     utils.LogMailer{},
	}
}

func (uc *UserController) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	if req.FirstName == "" || req.LastName == "" || req.EmailAddress == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Missing required fields"})
	}
	if !req.AgreeTS {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "You must agree to the terms of service"})
	}
	if len(req.Password) < utils.MinPasswordLength {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Password must be at least 6 characters long"})
	}

	ctx := c.Request().Context()
	var existing models.User
	if err := uc.collection.FindOne(ctx, bson.M{"emailAddress": req.EmailAddress}).Decode(&existing); err == nil {
		return c.JSON(http.StatusConflict, map[string]string{"message": "User with this email already exists"})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to hash password"})
	}

	user := models.User{
		ID:                       primitive.NewObjectID(),
		FirstName:                req.FirstName,
		LastName:                 req.LastName,
		EmailAddress:             req.EmailAddress,
		Password:                 hashedPassword,
		AgreeTS:                  req.AgreeTS,
		FavoritePosts:            []primitive.ObjectID{},
		IsSubscribedToNewsletter: true,
		Role:                     "user",
		CreatedAt:                time.Now(),
		UpdatedAt:                time.Now(),
	}

	if _, err := uc.collection.InsertOne(ctx, user); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to create user"})
	}

	token, err := utils.GenerateJWT(user.ID, user.EmailAddress, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to generate token"})
	}

	return c.JSON(http.StatusCreated, models.LoginResponse{Token: token, User: user})
}

func (uc *UserController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	var user models.User
	err := uc.collection.FindOne(c.Request().Context(), bson.M{"emailAddress": req.EmailAddress}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
	}
	if err := utils.CheckPassword(user.Password, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
	}

	token, err := utils.GenerateJWT(user.ID, user.EmailAddress, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to generate token"})
	}

	return c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: user})
}

func profileResponse(user models.User) models.ProfileResponse {
	resp := models.ProfileResponse{
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		EmailAddress: user.EmailAddress,
		Image:        user.Image,
	}
	if user.DateOfBirth != nil {
		resp.DateOfBirth = user.DateOfBirth.Format("2006-01-02")
	}
	if user.LastNamesUpdate != nil {
		resp.LastNamesUpdate = user.LastNamesUpdate.Format(time.RFC3339)
	}
	return resp
}

func (uc *UserController) GetProfile(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	var user models.User
	if err := uc.collection.FindOne(c.Request().Context(), bson.M{"_id": userID}).Decode(&user); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
	}
	return c.JSON(http.StatusOK, profileResponse(user))
}

func (uc *UserController) UpdateProfile(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	ctx := c.Request().Context()
	var user models.User
	if err := uc.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
	}

	errs := map[string]string{}

	var dob time.Time
	if req.DateOfBirth == "" {
		errs["dateOfBirth"] = "Date of Birth is required."
	} else {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			errs["dateOfBirth"] = "Invalid date of birth."
		} else if !utils.IsAdult(parsed, time.Now()) {
			errs["dateOfBirth"] = "You must be at least 18 years old."
		} else {
			dob = parsed
		}
	}

	namesChanged := req.FirstName != user.FirstName || req.LastName != user.LastName
	if namesChanged && !utils.CanUpdateNames(user.LastNamesUpdate, time.Now()) {
		errs["names"] = "Names can only be updated once every 3 months."
	}

	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"message": "Validation failed",
			"errors":  errs,
		})
	}

	updateDoc := bson.M{
		"dateOfBirth": dob,
		"updatedAt":   time.Now(),
	}
	if req.Image != "" {
		updateDoc["image"] = req.Image
	}
	if namesChanged {
		updateDoc["firstName"] = req.FirstName
		updateDoc["lastName"] = req.LastName
		updateDoc["lastNamesUpdate"] = time.Now()
	}

	if _, err := uc.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": updateDoc}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error during profile update"})
	}

	if err := uc.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch updated user"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    profileResponse(user),
	})
}

func (uc *UserController) UpdatePassword(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	var req models.UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmNewPassword == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "All password fields are required"})
	}
	if req.NewPassword != req.ConfirmNewPassword {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "New password and confirmation do not match"})
	}
	if len(req.NewPassword) < utils.MinPasswordLength {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "New password must be at least 6 characters long"})
	}

	ctx := c.Request().Context()
	var user models.User
	if err := uc.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
	}
	if err := utils.CheckPassword(user.Password, req.CurrentPassword); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Current password is incorrect"})
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to hash password"})
	}

	update := bson.M{"$set": bson.M{"password": hashedPassword, "updatedAt": time.Now()}}
	if _, err := uc.collection.UpdateOne(ctx, bson.M{"_id": userID}, update); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error during password reset"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

func (uc *UserController) DeleteAccount(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	res, err := uc.collection.DeleteOne(c.Request().Context(), bson.M{"_id": userID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error during account deletion"})
	}
	if res.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}

func (uc *UserController) GetNewsletter(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	var user models.User
	if err := uc.collection.FindOne(c.Request().Context(), bson.M{"_id": userID}).Decode(&user); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"isSubscribed": user.IsSubscribedToNewsletter})
}

func (uc *UserController) UpdateNewsletter(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	var req models.NewsletterRequest
	if err := c.Bind(&req); err != nil || req.IsSubscribed == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid subscription status"})
	}

	update := bson.M{"$set": bson.M{"isSubscribedToNewsletter": *req.IsSubscribed, "updatedAt": time.Now()}}
	res, err := uc.collection.UpdateOne(c.Request().Context(), bson.M{"_id": userID}, update)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}
	if res.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "Subscription updated successfully",
		"isSubscribed": *req.IsSubscribed,
	})
}

func (uc *UserController) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Email address is required."})
	}

	// Always answer the same way so the endpoint cannot be used to probe
	// which email addresses have accounts.
	genericResponse := map[string]string{"message": "Check your email for a reset password link"}

	ctx := c.Request().Context()
	var user models.User
	if err := uc.collection.FindOne(ctx, bson.M{"emailAddress": req.Email}).Decode(&user); err != nil {
		return c.JSON(http.StatusOK, genericResponse)
	}

	resetToken := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	expires := time.Now().Add(passwordResetTokenTTL)

	update := bson.M{"$set": bson.M{
		"passwordResetToken":   resetToken,
		"passwordResetExpires": expires,
	}}
	if _, err := uc.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "An unexpected server error occurred."})
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	resetURL := baseURL + "/resetpassword/" + resetToken
	if err := uc.mailer.SendPasswordReset(ctx, req.Email, resetURL); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "An unexpected server error occurred."})
	}

	return c.JSON(http.StatusOK, genericResponse)
}

func (uc *UserController) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if req.Token == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Token and new password are required."})
	}
	if len(req.NewPassword) < utils.MinPasswordLength {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "New password must be at least 6 characters long."})
	}

	ctx := c.Request().Context()
	var user models.User
	err := uc.collection.FindOne(ctx, bson.M{
		"passwordResetToken":   req.Token,
		"passwordResetExpires": bson.M{"$gt": time.Now()},
	}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid or expired password reset token."})
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "An unexpected server error occurred."})
	}

	update := bson.M{
		"$set":   bson.M{"password": hashedPassword, "updatedAt": time.Now()},
		"$unset": bson.M{"passwordResetToken": "", "passwordResetExpires": ""},
	}
	if _, err := uc.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "An unexpected server error occurred."})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Your password has been reset successfully."})
}
