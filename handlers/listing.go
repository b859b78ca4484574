package handlers

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/etori-p/HomeLend/config"
	"github.com/etori-p/HomeLend/models"
	"github.com/etori-p/HomeLend/search"
	"github.com/etori-p/HomeLend/utils"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	listingCachePrefix = "listings"
	listingCacheTTL    = 5 * time.Minute
)

type ListingController struct {
	collection *mongo.Collection
}

func NewListingController() *ListingController {
	collectionName := os.Getenv("MONGODB_COLLECTION_LISTINGS")
	if collectionName == "" {
		collectionName = "houselistposts"
	}
	return &ListingController{
		collection: config.GetCollection(collectionName),
	}
}

// listingResponse decorates a listing with the computed "new" badge.
type listingResponse struct {
	models.Listing
	IsNew bool `json:"isNew"`
}

func toListingResponses(listings []models.Listing) []listingResponse {
	now := time.Now()
	out := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, listingResponse{Listing: l, IsNew: l.IsNew(now)})
	}
	return out
}

func (lc *ListingController) fetchListings(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Listing, error) {
	cursor, err := lc.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
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
	return listings, cursor.Err()
}

func (lc *ListingController) ListListings(c echo.Context) error {
	ctx := c.Request().Context()

	cacheKey := utils.QueryCacheKey(ctx, listingCachePrefix, c.QueryParams())
	var cached []listingResponse
	if hit, err := utils.GetCached(ctx, cacheKey, &cached); err == nil && hit {
		return c.JSON(http.StatusOK, cached)
	}

	filter := bson.M{}
	if c.QueryParam("featured") == "true" {
		filter["isFeatured"] = true
	}

	var opts []*options.FindOptions
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if limit, err := strconv.Atoi(limitParam); err == nil && limit > 0 {
			opts = append(opts, options.Find().
				SetLimit(int64(limit)).
				SetSort(bson.M{"createdAt": -1}))
		}
	}

	listings, err := lc.fetchListings(ctx, filter, opts...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch listings"})
	}

	response := toListingResponses(listings)
	// best effort; a cache miss only costs another DB round-trip
	_ = utils.SetCached(ctx, cacheKey, response, listingCacheTTL)
	return c.JSON(http.StatusOK, response)
}

// SearchListings filters the full listing set in memory so that search
// behavior matches the listing page exactly, including relative order.
func (lc *ListingController) SearchListings(c echo.Context) error {
	ctx := c.Request().Context()

	listings, err := lc.fetchListings(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch listings"})
	}

	criteria := search.FromQuery(c.QueryParams())
	filtered := search.Filter(listings, criteria)
	return c.JSON(http.StatusOK, toListingResponses(filtered))
}

func (lc *ListingController) GetListing(c echo.Context) error {
	propertyName := c.Param("propertyname")
	if propertyName == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Property name is required"})
	}

	var listing models.Listing
	err := lc.collection.FindOne(c.Request().Context(), bson.M{"propertyname": propertyName}).Decode(&listing)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch listing"})
	}
	return c.JSON(http.StatusOK, listingResponse{Listing: listing, IsNew: listing.IsNew(time.Now())})
}

func validateListing(l models.Listing) string {
	switch {
	case l.PropertyName == "":
		return "Property name is required"
	case l.Price == "":
		return "Price is required"
	case l.Location == "":
		return "Location is required"
	case l.PropertyType == "":
		return "Property type is required"
	case len(l.Images) == 0:
		return "At least one image URL is required"
	}
	return ""
}

func requireAdmin(c echo.Context) bool {
	role, ok := c.Get("user_role").(string)
	return ok && role == "admin"
}

func (lc *ListingController) CreateListing(c echo.Context) error {
	if !requireAdmin(c) {
		return c.JSON(http.StatusForbidden, map[string]string{"message": "Admin access required"})
	}

	var listing models.Listing
	if err := c.Bind(&listing); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if msg := validateListing(listing); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": msg})
	}

	listing.ID = primitive.NewObjectID()
	listing.FavoritesCount = 0
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = time.Now()

	ctx := c.Request().Context()
	if _, err := lc.collection.InsertOne(ctx, listing); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to create listing"})
	}
	utils.BumpCacheVersion(ctx, listingCachePrefix)

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "House listing has been created successfully",
		"post":    listing,
	})
}

func (lc *ListingController) UpdateListing(c echo.Context) error {
	if !requireAdmin(c) {
		return c.JSON(http.StatusForbidden, map[string]string{"message": "Admin access required"})
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid listing ID"})
	}

	var update models.Listing
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if msg := validateListing(update); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": msg})
	}

	// favoritesCount is owned by the favorite toggle and never written here.
	updateDoc := bson.M{
		"propertyname":      update.PropertyName,
		"price":             update.Price,
		"location":          update.Location,
		"features":          update.Features,
		"viewdetails":       update.ViewDetails,
		"img":               update.Images,
		"isFeatured":        update.IsFeatured,
		"description":       update.Description,
		"propertytype":      update.PropertyType,
		"coordinates":       update.Coordinates,
		"agentName":         update.AgentName,
		"agentContactEmail": update.AgentContactEmail,
		"agentContactPhone": update.AgentContactPhone,
		"updatedAt":         time.Now(),
	}

	ctx := c.Request().Context()
	res, err := lc.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to update listing"})
	}
	if res.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Listing not found"})
	}
	utils.BumpCacheVersion(ctx, listingCachePrefix)

	var updated models.Listing
	if err := lc.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch updated listing"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "House listing updated successfully",
		"post":    updated,
	})
}

func (lc *ListingController) DeleteListing(c echo.Context) error {
	if !requireAdmin(c) {
		return c.JSON(http.StatusForbidden, map[string]string{"message": "Admin access required"})
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid listing ID"})
	}

	ctx := c.Request().Context()
	res, err := lc.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to delete listing"})
	}
	if res.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Listing not found"})
	}
	utils.BumpCacheVersion(ctx, listingCachePrefix)

	return c.JSON(http.StatusOK, map[string]string{"message": "House listing deleted successfully"})
}
