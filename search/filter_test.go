package search

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/etori-p/HomeLend/models"
)

func listing(name, location, propertyType, price, bedrooms string) models.Listing {
	return models.Listing{
		PropertyName: name,
		Location:     location,
		PropertyType: propertyType,
		Price:        price,
		Features:     models.ListingFeatures{Bedrooms: bedrooms},
	}
}

func names(listings []models.Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.PropertyName)
	}
	return out
}

func floatPtr(f float64) *float64 { return &f }

func TestFilter_emptyCriteriaIsIdentity(t *testing.T) {
	t.Parallel()

	listings := []models.Listing{
		listing("Lavington Flat", "Lavington", "Apartment", "KES 60,000", "2"),
		listing("Kilimani House", "Kilimani", "House", "KES 120,000", "4"),
	}

	got := Filter(listings, Criteria{})
	if !reflect.DeepEqual(got, listings) {
		t.Errorf("got %v, want input unchanged", names(got))
	}

	got = Filter(listings, Criteria{PropertyType: Any, Bedrooms: Any})
	if !reflect.DeepEqual(got, listings) {
		t.Errorf("got %v, want input unchanged for Any criteria", names(got))
	}
}

func TestFilter_searchTerm(t *testing.T) {
	t.Parallel()

	listings := []models.Listing{
		listing("Sunny Apartment", "Westlands", "Apartment", "KES 50,000", "1"),
		listing("Kilimani House", "Kilimani", "House", "KES 120,000", "4"),
		{
			PropertyName: "Loft",
			Location:     "CBD",
			Description:  "Spacious penthouse views",
			Features:     models.ListingFeatures{Bathrooms: "3", Size: "200 sqm"},
		},
	}

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"matches name case-insensitively", "apart", []string{"Sunny Apartment"}},
		{"matches location", "kilimani", []string{"Kilimani House"}},
		{"matches description", "penthouse", []string{"Loft"}},
		{"matches stringified bathrooms", "3", []string{"Loft"}},
		{"matches size text", "sqm", []string{"Loft"}},
		{"no match", "nairobi west", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Filter(listings, Criteria{SearchTerm: tt.term}))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("term %q: got %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestFilter_locationIsAdditiveToSearchTerm(t *testing.T) {
	t.Parallel()

	listings := []models.Listing{
		listing("Lavington Flat", "Lavington", "Apartment", "KES 60,000", "2"),
		listing("Lavington Villa", "Karen", "House", "KES 200,000", "5"),
	}

	got := names(Filter(listings, Criteria{SearchTerm: "lavington", Location: "karen"}))
	want := []string{"Lavington Villa"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFilter_propertyTypeIsExactMatch(t *testing.T) {
	t.Parallel()

	listings := []models.Listing{
		listing("Lavington Flat", "Lavington", "Apartment", "KES 60,000", "2"),
		listing("Kilimani House", "Kilimani", "House", "KES 120,000", "4"),
	}

	got := names(Filter(listings, Criteria{PropertyType: "Apartment"}))
	want := []string{"Lavington Flat"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// Stored casing is authoritative; the criterion does not fold case.
	if got := Filter(listings, Criteria{PropertyType: "apartment"}); len(got) != 0 {
		t.Errorf("lowercased type matched %v, want no matches", names(got))
	}
}

func TestFilter_bedrooms(t *testing.T) {
	t.Parallel()

	listings := []models.Listing{
		listing("Three Bed", "Karen", "House", "KES 90,000", "3"),
		listing("Five Bed", "Karen", "House", "KES 150,000", "5"),
		listing("Unknown Beds", "Karen", "House", "KES 70,000", "studio"),
	}

	tests := []struct {
		name     string
		bedrooms string
		want     []string
	}{
		{"exact match", "3", []string{"Three Bed"}},
		{"4+ means at least four", "4+", []string{"Five Bed"}},
		{"non-numeric bedroomCount never matches", "2", []string{}},
		{"Any passes everything", Any, []string{"Three Bed", "Five Bed", "Unknown Beds"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Filter(listings, Criteria{Bedrooms: tt.bedrooms}))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("bedrooms %q: got %v, want %v", tt.bedrooms, got, tt.want)
			}
		})
	}
}

func TestFilter_priceBounds(t *testing.T) {
	t.Parallel()

	listings := []models.Listing{
		listing("In Range", "Karen", "House", "KSh 45,000", "3"),
		listing("Too Expensive", "Karen", "House", "KSh 55,000", "3"),
		listing("No Price", "Karen", "House", "Contact for price", "3"),
	}

	tests := []struct {
		name     string
		min, max *float64
		want     []string
	}{
		{"within both bounds", floatPtr(30000), floatPtr(50000), []string{"In Range"}},
		{"min only", floatPtr(50000), nil, []string{"Too Expensive"}},
		{"max only", nil, floatPtr(50000), []string{"In Range"}},
		{"bounds are inclusive", floatPtr(45000), floatPtr(45000), []string{"In Range"}},
		{"no bounds passes unparseable price", nil, nil, []string{"In Range", "Too Expensive", "No Price"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Filter(listings, Criteria{MinPrice: tt.min, MaxPrice: tt.max}))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_isStable(t *testing.T) {
	t.Parallel()

	listings := []models.Listing{
		listing("A", "Westlands", "Studio", "KES 20,000", "1"),
		listing("B", "Karen", "House", "KES 90,000", "3"),
		listing("C", "Karen", "House", "KES 95,000", "4"),
	}

	got := names(Filter(listings, Criteria{Location: "karen"}))
	want := []string{"B", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v in input order", got, want)
	}
}

func TestFilter_exampleScenario(t *testing.T) {
	t.Parallel()

	listings := []models.Listing{
		listing("Lavington Flat", "Lavington", "Apartment", "KES 60,000", "2"),
		listing("Kilimani House", "Kilimani", "House", "KES 120,000", "4"),
	}

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"by property type", Criteria{PropertyType: "Apartment"}, []string{"Lavington Flat"}},
		{"by 4+ bedrooms", Criteria{Bedrooms: "4+"}, []string{"Kilimani House"}},
		{"by min price", Criteria{MinPrice: floatPtr(70000)}, []string{"Kilimani House"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Filter(listings, tt.criteria))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromQuery(t *testing.T) {
	t.Parallel()

	q := url.Values{}
	q.Set("search", "flat")
	q.Set("location", "Karen")
	q.Set("propertyType", "House")
	q.Set("bedrooms", "4+")
	q.Set("minPrice", "30000")
	q.Set("maxPrice", "not-a-number")

	c := FromQuery(q)
	if c.SearchTerm != "flat" || c.Location != "Karen" || c.PropertyType != "House" || c.Bedrooms != "4+" {
		t.Errorf("unexpected criteria: %+v", c)
	}
	if c.MinPrice == nil || *c.MinPrice != 30000 {
		t.Errorf("minPrice not parsed: %+v", c.MinPrice)
	}
	if c.MaxPrice != nil {
		t.Errorf("unparseable maxPrice should be dropped, got %v", *c.MaxPrice)
	}
}
