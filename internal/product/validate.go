package product

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/validation"
)

// Input is a normalized create/update request.
type Input struct {
	Name        string
	Description string
	Image       string
	Price       decimal.Decimal
}

var (
	productNamePattern = regexp.MustCompile(`^[A-Za-z0-9À-ÖØ-öø-ÿ .,'\-&()/_]+$`)
	letter             = regexp.MustCompile(`[A-Za-zÀ-ÖØ-öø-ÿ]`)
	maxPrice           = decimal.NewFromInt(100_000_000)
)

func nameRule() *validation.StringRule {
	return validation.String(validation.Messages{
		Required: "Product name is required",
		Invalid:  "Product name must be a string",
	}).Trim().
		Min(2, "Product name must be at least 2 characters").
		Max(120, "Product name must be at most 120 characters").
		Match(productNamePattern, "Product name contains invalid characters").
		Refine(letter.MatchString, "Product name must contain at least one letter").
		CollapseSpaces()
}

func descriptionRule() *validation.StringRule {
	return validation.String(validation.Messages{
		Required: "Description is required",
		Invalid:  "Description must be a string",
	}).Trim().
		Min(5, "Description must be at least 5 characters").
		Max(500, "Description must be at most 500 characters").
		CollapseSpaces()
}

func imageRule() *validation.StringRule {
	return validation.String(validation.Messages{
		Required: "Product image URL is required",
		Invalid:  "Image URL must be a string",
	}).Trim().
		URL("Please provide a valid image URL").
		Refine(validation.HasHTTPScheme, "Image URL must start with http or https").
		Refine(validation.HasImageExtension, "Image URL must point to an image (jpg, jpeg, png, webp, gif, avif)")
}

// priceRule accepts a JSON number or a numeric string.
func priceRule() *validation.NumberRule {
	return validation.Number(validation.Messages{
		Required: "Price is required",
		Invalid:  "Price must be a number",
	}).
		Positive("Price must be greater than 0").
		Max(maxPrice, "Price seems too high")
}

// Parse validates a decoded product body.
func Parse(raw any) (Input, validation.Issues) {
	o := validation.Root(raw, "Request body must be a JSON object")
	in := Input{
		Name:        o.String("name", nameRule()),
		Price:       o.Number("price", priceRule()),
		Description: o.String("description", descriptionRule()),
		Image:       o.String("image", imageRule()),
	}
	return in, o.Issues()
}
