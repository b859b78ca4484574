package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/etori-p/HomeLend/config"
	"github.com/etori-p/HomeLend/favorites"
	"github.com/etori-p/HomeLend/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type FavoriteController struct {
	reconciler *favorites.Reconciler
	users      *mongo.Collection
	listings   *mongo.Collection
}

func NewFavoriteController() *FavoriteController {
	userCollectionName := os.Getenv("MONGODB_COLLECTION_USERS")
	if userCollectionName == "" {
		userCollectionName = "users"
	}
	listingCollectionName := os.Getenv("MONGODB_COLLECTION_LISTINGS")
	if listingCollectionName == "" {
		listingCollectionName = "houselistposts"
	}

	users := config.GetCollection(userCollectionName)
	listings := config.GetCollection(listingCollectionName)
	store := favorites.NewMongoStore(config.Client(), users, listings)

	return &FavoriteController{
		reconciler: favorites.NewReconciler(store),
		users:      users,
		listings:   listings,
	}
}

type toggleFavoriteRequest struct {
	ListingID string `json:"listingId"`
}

func (fc *FavoriteController) ToggleFavorite(c echo.Context) error {
	userID, ok := c.Get("user_id").(primitive.ObjectID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
	}

	var req toggleFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if _, err := primitive.ObjectIDFromHex(req.ListingID); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid Post ID"})
	}

	isFavorited, err := fc.reconciler.Toggle(c.Request().Context(), userID.Hex(), req.ListingID)
	if err != nil {
		switch {
		case errors.Is(err, favorites.ErrUnauthenticated):
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		case errors.Is(err, favorites.ErrToggleInFlight):
			return c.JSON(http.StatusConflict, map[string]string{"message": "Favorite update already in progress"})
		case errors.Is(err, favorites.ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"message": "User or Post not found"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error during favorite toggle"})
		}
	}

	message := "Removed from favorites"
	if isFavorited {
		message = "Added to favorites"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     message,
		"isFavorited": isFavorited,
	})
}

func (fc *FavoriteController) GetFavorites(c echo.Context) error {
	userID, ok := c.Get("user_id").(primitive.ObjectID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
	}

	ctx := c.Request().Context()
	var user models.User
	if err := fc.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error fetching favorites"})
	}

	if len(user.FavoritePosts) == 0 {
		return c.JSON(http.StatusOK, []listingResponse{})
	}

	// The favorites set fetched here is the session's initial toggle state.
	ids := make([]string, 0, len(user.FavoritePosts))
	for _, id := range user.FavoritePosts {
		ids = append(ids, id.Hex())
	}
	fc.reconciler.Seed(userID.Hex(), ids)

	cursor, err := fc.listings.Find(ctx, bson.M{"_id": bson.M{"$in": user.FavoritePosts}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error fetching favorites"})
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	for cursor.Next(ctx) {
		var l models.Listing
		if err := cursor.Decode(&l); err != nil {
			continue
		}
		listings = append(listings, l)
	}

	return c.JSON(http.StatusOK, toListingResponses(listings))
}
