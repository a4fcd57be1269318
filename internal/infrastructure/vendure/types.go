package vendure

import (
	"github.com/cahoico/storefront/internal/domain/cart"
	"github.com/cahoico/storefront/internal/domain/catalog"
	"github.com/cahoico/storefront/internal/domain/shared"
)

// Wire types mirror the shop-API JSON shapes. They stay inside this
// package; conversion into domain types happens at the boundary.

type wireAsset struct {
	Preview string `json:"preview"`
}

type wireVariant struct {
	ID            string     `json:"id"`
	SKU           string     `json:"sku"`
	Name          string     `json:"name"`
	PriceWithTax  int64      `json:"priceWithTax"`
	CurrencyCode  string     `json:"currencyCode"`
	FeaturedAsset *wireAsset `json:"featuredAsset"`
}

type wireLine struct {
	ID               string      `json:"id"`
	Quantity         int         `json:"quantity"`
	LinePriceWithTax int64       `json:"linePriceWithTax"`
	ProductVariant   wireVariant `json:"productVariant"`
}

type wireOrder struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	State         string     `json:"state"`
	CurrencyCode  string     `json:"currencyCode"`
	TotalWithTax  int64      `json:"totalWithTax"`
	TotalQuantity int        `json:"totalQuantity"`
	Lines         []wireLine `json:"lines"`
}

// orderResult decodes the Order | ErrorResult union. ErrorCode is empty
// on the Order branch, so its presence decides which branch arrived.
type orderResult struct {
	wireOrder
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// asCart splits the union: typed rejections become shared.DomainError,
// the Order branch becomes a domain cart.
func (r *orderResult) asCart() (*cart.Cart, error) {
	if r.ErrorCode != "" {
		return nil, shared.NewDomainError(r.ErrorCode, r.Message)
	}
	c := toCart(r.wireOrder)
	return &c, nil
}

// asError is asCart for mutations whose order payload the caller
// does not need.
func (r *orderResult) asError() error {
	if r.ErrorCode != "" {
		return shared.NewDomainError(r.ErrorCode, r.Message)
	}
	return nil
}

func toCart(o wireOrder) cart.Cart {
	items := make([]cart.LineItem, 0, len(o.Lines))
	for _, line := range o.Lines {
		items = append(items, cart.LineItem{
			ID:       line.ID,
			Quantity: line.Quantity,
			Variant:  toCartVariant(line.ProductVariant),
		})
	}
	return cart.Cart{
		OrderID:       o.ID,
		Code:          o.Code,
		State:         o.State,
		CurrencyCode:  o.CurrencyCode,
		Items:         items,
		Total:         o.TotalWithTax,
		TotalQuantity: o.TotalQuantity,
	}
}

func toCartVariant(v wireVariant) cart.Variant {
	out := cart.Variant{
		ID:           v.ID,
		SKU:          v.SKU,
		Name:         v.Name,
		PriceWithTax: v.PriceWithTax,
		CurrencyCode: v.CurrencyCode,
	}
	if v.FeaturedAsset != nil {
		out.Preview = v.FeaturedAsset.Preview
	}
	return out
}

type wireProduct struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Description   string        `json:"description"`
	FeaturedAsset *wireAsset    `json:"featuredAsset"`
	Variants      []wireVariant `json:"variants"`
}

type wireCollection struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	FeaturedAsset   *wireAsset `json:"featuredAsset"`
	ProductVariants *struct {
		Items []wireVariant `json:"items"`
	} `json:"productVariants"`
}

func toCatalogAsset(a *wireAsset) *catalog.Asset {
	if a == nil {
		return nil
	}
	return &catalog.Asset{Preview: a.Preview}
}

func toCatalogVariant(v wireVariant) catalog.Variant {
	return catalog.Variant{
		ID:            v.ID,
		SKU:           v.SKU,
		Name:          v.Name,
		PriceWithTax:  v.PriceWithTax,
		CurrencyCode:  v.CurrencyCode,
		FeaturedAsset: toCatalogAsset(v.FeaturedAsset),
	}
}

func toCatalogProduct(p wireProduct) catalog.Product {
	variants := make([]catalog.Variant, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, toCatalogVariant(v))
	}
	return catalog.Product{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		FeaturedAsset: toCatalogAsset(p.FeaturedAsset),
		Variants:      variants,
	}
}

func toCatalogCollection(c wireCollection) catalog.Collection {
	out := catalog.Collection{
		ID:            c.ID,
		Name:          c.Name,
		Slug:          c.Slug,
		FeaturedAsset: toCatalogAsset(c.FeaturedAsset),
	}
	if c.ProductVariants != nil {
		out.Variants = make([]catalog.Variant, 0, len(c.ProductVariants.Items))
		for _, v := range c.ProductVariants.Items {
			out.Variants = append(out.Variants, toCatalogVariant(v))
		}
	}
	return out
}
