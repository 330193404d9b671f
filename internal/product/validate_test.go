package product

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/validation"
)

func validBody() map[string]any {
	return map[string]any{
		"name":        "  Levi's   511 (Slim) ",
		"description": "Stretch   denim jeans",
		"image":       "https://cdn.example.com/p/levis.JPG?w=400",
		"price":       json.Number("2499.50"),
	}
}

func TestParse_Valid(t *testing.T) {
	in, issues := Parse(validBody())
	require.Empty(t, issues)
	assert.Equal(t, "Levi's 511 (Slim)", in.Name)
	assert.Equal(t, "Stretch denim jeans", in.Description)
	assert.Equal(t, "https://cdn.example.com/p/levis.JPG?w=400", in.Image)
	assert.True(t, decimal.RequireFromString("2499.5").Equal(in.Price))
}

func TestParse_PriceAsString(t *testing.T) {
	body := validBody()
	body["price"] = "19.99"
	in, issues := Parse(body)
	require.Empty(t, issues)
	assert.Equal(t, "19.99", in.Price.String())
}

func TestParse_PriceRules(t *testing.T) {
	tests := []struct {
		name  string
		price any
		want  string
	}{
		{"zero", json.Number("0"), "Price must be greater than 0"},
		{"blank string", "", "Price must be greater than 0"},
		{"negative", json.Number("-1"), "Price must be greater than 0"},
		{"huge", json.Number("100000000.01"), "Price seems too high"},
		{"text", "abc", "Price must be a number"},
		{"bool", true, "Price must be a number"},
		{"null", nil, "Price must be a number"},
		{"huge exponent", json.Number("1e200000000"), "Price must be a number"},
		{"huge exponent string", "9.99e200000000", "Price must be a number"},
		{"tiny exponent", json.Number("1e-200000000"), "Price must be a number"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := validBody()
			body["price"] = tc.price
			_, issues := Parse(body)
			fields := validation.Project(issues, validation.FirstSegment)
			assert.Equal(t, map[string]string{"price": tc.want}, fields)
		})
	}
}

func TestParse_CollectsEveryField(t *testing.T) {
	_, issues := Parse(map[string]any{
		"name":        "123",
		"description": "abc",
		"image":       "ftp://example.com/file.txt",
	})
	fields := validation.Project(issues, validation.FirstSegment)
	assert.Equal(t, "Product name must contain at least one letter", fields["name"])
	assert.Equal(t, "Description must be at least 5 characters", fields["description"])
	assert.Equal(t, "Image URL must start with http or https, "+
		"Image URL must point to an image (jpg, jpeg, png, webp, gif, avif)", fields["image"])
	assert.Equal(t, "Price is required", fields["price"])
}

func TestParse_ImageNotURL(t *testing.T) {
	body := validBody()
	body["image"] = "not a url"
	_, issues := Parse(body)
	fields := validation.Project(issues, validation.FirstSegment)
	assert.Contains(t, fields["image"], "Please provide a valid image URL")
}
