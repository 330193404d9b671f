package order

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/order/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/validation"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

// MaxQuantity caps a single line.
const MaxQuantity = 10000

// ItemInput is one requested cart line.
type ItemInput struct {
	ProductID string
	Quantity  int64
}

// CheckoutInput is a normalized checkout request.
type CheckoutInput struct {
	Items    []ItemInput
	Shipping entity.Shipping
}

var (
	fullNamePattern = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ .,'\-]+$`)
	cityPattern     = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ .'\-]+$`)
	letter          = regexp.MustCompile(`[A-Za-zÀ-ÖØ-öø-ÿ]`)
	phonePattern    = regexp.MustCompile(`^[0-9+\-() ]{10,20}$`)
	pincodePattern  = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

var (
	itemsRule = validation.ArrayRule{
		Messages: validation.Messages{
			Required: "Items are required",
			Invalid:  "Items must be an array",
		},
		Min:            1,
		MinMessage:     "Order must contain at least one item",
		ElementInvalid: "Each item must be an object",
	}
	shippingMessages = validation.Messages{
		Required: "Shipping details are required",
		Invalid:  "Shipping details must be an object",
	}
)

func productIDRule() *validation.StringRule {
	return validation.String(validation.Messages{
		Required: "Product id is required",
		Invalid:  "Product id must be a string",
	}).Match(utilities.ObjectIDPattern(), "Invalid product id")
}

func quantityRule() *validation.NumberRule {
	// coerced: absent reports Invalid, null counts as 0
	return validation.CoercedNumber(validation.Messages{
		Invalid: "Quantity must be a number",
	}).
		Int("Quantity must be an integer").
		Min(decimal.NewFromInt(1), "Quantity must be at least 1").
		Max(decimal.NewFromInt(MaxQuantity), "Quantity must be at most 10000")
}

func fullNameRule() *validation.StringRule {
	return validation.String(validation.Messages{
		Required: "Full name is required",
		Invalid:  "Full name must be a string",
	}).Trim().
		Min(2, "Full name must be at least 2 characters").
		Max(80, "Full name must be at most 80 characters").
		Match(fullNamePattern, "Full name can only contain letters, spaces, dots, commas, apostrophes and hyphens").
		Refine(letter.MatchString, "Full name must contain at least one letter").
		CollapseSpaces()
}

func phoneRule() *validation.StringRule {
	return validation.String(validation.Messages{
		Required: "Phone is required",
		Invalid:  "Phone must be a string",
	}).Trim().
		Match(phonePattern, "Phone can contain digits, spaces, +, -, () and must be 10–20 characters").
		Refine(func(s string) bool {
			n := validation.CountDigits(s)
			return n >= 10 && n <= 15
		}, "Phone must contain 10–15 digits")
}

func cityRule() *validation.StringRule {
	return validation.String(validation.Messages{
		Required: "City is required",
		Invalid:  "City must be a string",
	}).Trim().
		Min(2, "City must be at least 2 characters").
		Max(80, "City must be at most 80 characters").
		Match(cityPattern, "City can only contain letters, spaces, dots, apostrophes and hyphens").
		Refine(letter.MatchString, "City must contain at least one letter").
		CollapseSpaces()
}

func pincodeRule() *validation.StringRule {
	return validation.String(validation.Messages{
		Required: "Pincode is required",
		Invalid:  "Pincode must be a string",
	}).Trim().
		Match(pincodePattern, "Pincode must be a valid 6-digit code")
}

func addressRule() *validation.StringRule {
	return validation.String(validation.Messages{
		Required: "Address is required",
		Invalid:  "Address must be a string",
	}).Trim().
		Min(5, "Address must be at least 5 characters").
		Max(200, "Address must be at most 200 characters").
		CollapseSpaces()
}

// ParseCheckout validates a decoded checkout body. Issue paths are nested,
// e.g. items[1].quantity or shipping.pincode.
func ParseCheckout(raw any) (CheckoutInput, validation.Issues) {
	o := validation.Root(raw, "Request body must be a JSON object")

	var in CheckoutInput
	for _, item := range o.Objects("items", itemsRule) {
		id := item.String("productId", productIDRule())
		qty := item.Number("quantity", quantityRule())
		in.Items = append(in.Items, ItemInput{ProductID: id, Quantity: qty.IntPart()})
	}

	s := o.Object("shipping", shippingMessages)
	in.Shipping = entity.Shipping{
		FullName:    s.String("fullName", fullNameRule()),
		Phone:       s.String("phone", phoneRule()),
		City:        s.String("city", cityRule()),
		Pincode:     s.String("pincode", pincodeRule()),
		AddressLine: s.String("addressLine", addressRule()),
	}
	return in, o.Issues()
}
