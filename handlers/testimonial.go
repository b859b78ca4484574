package handlers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/etori-p/HomeLend/config"
	"github.com/etori-p/HomeLend/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TestimonialController struct {
	collection *mongo.Collection
	users      *mongo.Collection
}

func NewTestimonialController() *TestimonialController {
	collectionName := os.Getenv("MONGODB_COLLECTION_TESTIMONIALS")
	if collectionName == "" {
		collectionName = "testimonials"
	}
	userCollectionName := os.Getenv("MONGODB_COLLECTION_USERS")
	if userCollectionName == "" {
		userCollectionName = "users"
	}
	return &TestimonialController{
		collection: config.GetCollection(collectionName),
		users:      config.GetCollection(userCollectionName),
	}
}

func (tc *TestimonialController) ListTestimonials(c echo.Context) error {
	ctx := c.Request().Context()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: tc.users.Name()},
			{Key: "localField", Value: "userId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$author"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "rating", Value: 1},
			{Key: "comment", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "author.firstName", Value: 1},
			{Key: "author.lastName", Value: 1},
			{Key: "author.image", Value: 1},
		}}},
	}

	cursor, err := tc.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error fetching testimonials"})
	}
	defer cursor.Close(ctx)

	testimonials := []models.TestimonialWithAuthor{}
	if err := cursor.All(ctx, &testimonials); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error fetching testimonials"})
	}
	return c.JSON(http.StatusOK, testimonials)
}

type createTestimonialRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (tc *TestimonialController) CreateTestimonial(c echo.Context) error {
	userID, ok := c.Get("user_id").(primitive.ObjectID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
	}

	var req createTestimonialRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Rating must be a number between 1 and 5"})
	}
	if strings.TrimSpace(req.Comment) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Comment cannot be empty"})
	}
	if len(req.Comment) > models.MaxTestimonialCommentLength {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Comment exceeds maximum length of 500 characters"})
	}

	ctx := c.Request().Context()
	var user models.User
	if err := tc.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
	}

	testimonial := models.Testimonial{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}
	if _, err := tc.collection.InsertOne(ctx, testimonial); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error submitting testimonial"})
	}

	populated := models.TestimonialWithAuthor{
		ID:        testimonial.ID,
		Rating:    testimonial.Rating,
		Comment:   testimonial.Comment,
		CreatedAt: testimonial.CreatedAt,
		Author: models.TestimonialAuthor{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Image:     user.Image,
		},
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":     "Testimonial submitted successfully",
		"testimonial": populated,
	})
}
