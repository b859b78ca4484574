// Package search implements the in-memory listing filter used by the
// listing search endpoint. Filtering is a pure function over already-fetched
// listings; it never touches the database.
package search

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/etori-p/HomeLend/models"
)

// Any disables a select-style criterion (property type, bedrooms).
const Any = "Any"

// Criteria holds one search request's constraints. Zero values mean
// "unconstrained" for every field.
type Criteria struct {
	SearchTerm   string
	Location     string
	PropertyType string
	Bedrooms     string
	MinPrice     *float64
	MaxPrice     *float64
}

// FromQuery builds Criteria from the listing page's query parameters.
// Unparseable price bounds are ignored rather than rejected, mirroring how
// the filter form drops empty inputs.
func FromQuery(q url.Values) Criteria {
	c := Criteria{
		SearchTerm:   q.Get("search"),
		Location:     q.Get("location"),
		PropertyType: q.Get("propertyType"),
		Bedrooms:     q.Get("bedrooms"),
	}
	if v := q.Get("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.MinPrice = &f
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.MaxPrice = &f
		}
	}
	return c
}

// Filter returns the listings matching every supplied criterion, preserving
// the relative order of the input.
func Filter(listings []models.Listing, c Criteria) []models.Listing {
	filtered := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if matches(l, c) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

func matches(l models.Listing, c Criteria) bool {
	return matchesSearchTerm(l, c.SearchTerm) &&
		matchesLocation(l, c.Location) &&
		matchesPropertyType(l, c.PropertyType) &&
		matchesBedrooms(l, c.Bedrooms) &&
		matchesPrice(l, c.MinPrice, c.MaxPrice)
}

func matchesSearchTerm(l models.Listing, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range []string{
		l.PropertyName,
		l.Location,
		l.PropertyType,
		l.Description,
		l.Features.Bedrooms,
		l.Features.Bathrooms,
		l.Features.Size,
	} {
		if field != "" && strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// The location criterion is independent of the free-text search term; both
// apply when both are supplied.
func matchesLocation(l models.Listing, location string) bool {
	if location == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Location), strings.ToLower(location))
}

func matchesPropertyType(l models.Listing, propertyType string) bool {
	if propertyType == "" || propertyType == Any {
		return true
	}
	return l.PropertyType == propertyType
}

func matchesBedrooms(l models.Listing, bedrooms string) bool {
	if bedrooms == "" || bedrooms == Any {
		return true
	}
	n, ok := parseLeadingInt(l.Features.Bedrooms)
	if !ok {
		return false
	}
	if bedrooms == "4+" {
		return n >= 4
	}
	want, ok := parseLeadingInt(bedrooms)
	if !ok {
		return false
	}
	return n == want
}

func matchesPrice(l models.Listing, min, max *float64) bool {
	if min == nil && max == nil {
		return true
	}
	// A price with no numeric content cannot be measured against a bound,
	// so it fails any bound that is supplied.
	price, ok := ParsePrice(l.Price)
	if !ok {
		return false
	}
	if min != nil && price < *min {
		return false
	}
	if max != nil && price > *max {
		return false
	}
	return true
}
