package product

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product/entity"
)

// DecodeSeed parses a JSON array of product bodies and runs every entry
// through the same validation as the admin endpoints. One bad entry rejects
// the whole file.
func DecodeSeed(data []byte) ([]Input, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	out := make([]Input, 0, len(raw))
	for i, r := range raw {
		in, issues := Parse(r)
		if len(issues) > 0 {
			return nil, fmt.Errorf("seed entry %d: %s", i, issues.Join(", "))
		}
		out = append(out, in)
	}
	return out, nil
}

// Seed inserts every input in order and returns the created products.
func (s *ProductService) Seed(ctx context.Context, inputs []Input) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(inputs))
	for _, in := range inputs {
		p, err := s.Create(ctx, in)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, nil
}
