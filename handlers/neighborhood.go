package handlers

import (
	"math"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/etori-p/HomeLend/config"
	"github.com/etori-p/HomeLend/models"
	"github.com/etori-p/HomeLend/search"
	"github.com/etori-p/HomeLend/utils"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	popularNeighborhoodsKey   = "neighborhoods:popular"
	popularNeighborhoodsTTL   = 10 * time.Minute
	popularNeighborhoodsLimit = 6
)

type NeighborhoodController struct {
	listings *mongo.Collection
}

func NewNeighborhoodController() *NeighborhoodController {
	collectionName := os.Getenv("MONGODB_COLLECTION_LISTINGS")
	if collectionName == "" {
		collectionName = "houselistposts"
	}
	return &NeighborhoodController{
		listings: config.GetCollection(collectionName),
	}
}

type neighborhood struct {
	Location      string `json:"location"`
	FavoriteCount int64  `json:"favoriteCount"`
	AverageRent   int64  `json:"averageRent"`
}

// PopularNeighborhoods ranks locations by total favorites. Average rent is
// computed from the parsed display prices; listings whose price has no
// numeric content are left out of the average.
func (nc *NeighborhoodController) PopularNeighborhoods(c echo.Context) error {
	ctx := c.Request().Context()

	var cached []neighborhood
	if hit, err := utils.GetCached(ctx, popularNeighborhoodsKey, &cached); err == nil && hit {
		return c.JSON(http.StatusOK, cached)
	}

	cursor, err := nc.listings.Find(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error fetching popular neighborhoods"})
	}
	defer cursor.Close(ctx)

	type aggregate struct {
		favorites  int64
		priceSum   float64
		priceCount int
	}
	byLocation := map[string]*aggregate{}
	order := []string{}

	for cursor.Next(ctx) {
		var l models.Listing
		if err := cursor.Decode(&l); err != nil {
			continue
		}
		agg, ok := byLocation[l.Location]
		if !ok {
			agg = &aggregate{}
			byLocation[l.Location] = agg
			order = append(order, l.Location)
		}
		agg.favorites += l.FavoritesCount
		if price, ok := search.ParsePrice(l.Price); ok {
			agg.priceSum += price
			agg.priceCount++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return byLocation[order[i]].favorites > byLocation[order[j]].favorites
	})
	if len(order) > popularNeighborhoodsLimit {
		order = order[:popularNeighborhoodsLimit]
	}

	result := make([]neighborhood, 0, len(order))
	for _, location := range order {
		agg := byLocation[location]
		var averageRent int64
		if agg.priceCount > 0 {
			avg := agg.priceSum / float64(agg.priceCount)
			averageRent = int64(math.Round(avg/1000) * 1000)
		}
		result = append(result, neighborhood{
			Location:      location,
			FavoriteCount: agg.favorites,
			AverageRent:   averageRent,
		})
	}

	_ = utils.SetCached(ctx, popularNeighborhoodsKey, result, popularNeighborhoodsTTL)
	return c.JSON(http.StatusOK, result)
}
