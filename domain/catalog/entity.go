// Package catalog defines the product types shared across modules.
// Products are owned by the backend; the client holds read-through copies.
package catalog

import "strings"

// Category is one of the fixed product categories the backend accepts.
type Category string

const (
	CategoryLaptop      Category = "Laptop"
	CategoryHeadphone   Category = "Headphone"
	CategoryMobile      Category = "Mobile"
	CategoryElectronics Category = "Electronics"
	CategoryToys        Category = "Toys"
	CategoryFashion     Category = "Fashion"
)

// Categories lists every valid product category.
var Categories = []Category{
	CategoryLaptop,
	CategoryHeadphone,
	CategoryMobile,
	CategoryElectronics,
	CategoryToys,
	CategoryFashion,
}

// ValidCategory reports whether s names a known category, ignoring case.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return true
		}
	}
	return false
}

// Product is a backend-owned product record. JSON tags follow the backend
// wire names.
type Product struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Brand            string  `json:"brand"`
	Description      string  `json:"description"`
	Price            float64 `json:"price"`
	Category         string  `json:"category"`
	ReleaseDate      string  `json:"releaseDate"`
	ProductAvailable bool    `json:"productAvailable"`
	StockQuantity    int     `json:"stockQuantity"`
	ImageName        string  `json:"imageName"`
	ImageType        string  `json:"imageType"`
	ImageURL         string  `json:"imageUrl"`
}

// MatchesCategory reports whether the product belongs to the given
// category, ignoring case. An empty filter matches everything.
func (p Product) MatchesCategory(category string) bool {
	if category == "" {
		return true
	}
	return strings.EqualFold(p.Category, category)
}
