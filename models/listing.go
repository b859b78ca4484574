package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feature values are stored as free-text strings ("2", "2 bd", "120 sqm"),
// matching how agents enter them. Numeric comparisons parse them at query time.
type ListingFeatures struct {
	Bedrooms  string `bson:"bedrooms" json:"bedrooms"`
	Bathrooms string `bson:"bathrooms" json:"bathrooms"`
	Size      string `bson:"size" json:"size"`
}

type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type Listing struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyName      string             `bson:"propertyname" json:"propertyname"`
	Price             string             `bson:"price" json:"price"`
	Location          string             `bson:"location" json:"location"`
	Features          ListingFeatures    `bson:"features" json:"features"`
	ViewDetails       string             `bson:"viewdetails" json:"viewdetails"`
	Images            []string           `bson:"img" json:"img"`
	IsFeatured        bool               `bson:"isFeatured" json:"isFeatured"`
	Description       string             `bson:"description" json:"description"`
	PropertyType      string             `bson:"propertytype" json:"propertytype"`
	Coordinates       Coordinates        `bson:"coordinates" json:"coordinates"`
	AgentName         string             `bson:"agentName,omitempty" json:"agentName,omitempty"`
	AgentContactEmail string             `bson:"agentContactEmail,omitempty" json:"agentContactEmail,omitempty"`
	AgentContactPhone string             `bson:"agentContactPhone,omitempty" json:"agentContactPhone,omitempty"`
	FavoritesCount    int64              `bson:"favoritesCount" json:"favoritesCount"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

const newListingAge = 4 * 24 * time.Hour

// IsNew reports whether the listing should carry the "new" badge.
func (l Listing) IsNew(now time.Time) bool {
	return now.Sub(l.CreatedAt) < newListingAge
}
