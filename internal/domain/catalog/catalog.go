package catalog

import "context"

// Asset is an image reference served by the shop's asset pipeline
type Asset struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Source  string `json:"source,omitempty"`
	Preview string `json:"preview"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// Variant is a purchasable product variant. Prices are minor currency units.
type Variant struct {
	ID            string `json:"id"`
	SKU           string `json:"sku,omitempty"`
	Name          string `json:"name"`
	PriceWithTax  int64  `json:"priceWithTax"`
	CurrencyCode  string `json:"currencyCode"`
	FeaturedAsset *Asset `json:"featuredAsset,omitempty"`
}

// Product is a catalog entry with its variants
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	FeaturedAsset *Asset    `json:"featuredAsset,omitempty"`
	Variants      []Variant `json:"variants"`
}

// Collection groups product variants under a slug
type Collection struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	FeaturedAsset *Asset    `json:"featuredAsset,omitempty"`
	Variants      []Variant `json:"productVariants,omitempty"`
}

// Repository is the read-only shop-API surface for catalog browsing.
// A missing product or collection returns (nil, nil); the caller decides
// whether absence is an error.
type Repository interface {
	Products(ctx context.Context) ([]Product, error)
	ProductBySlug(ctx context.Context, slug string) (*Product, error)
	Collections(ctx context.Context) ([]Collection, error)
	CollectionBySlug(ctx context.Context, slug string) (*Collection, error)
}
