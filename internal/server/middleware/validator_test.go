package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorMarketplaceTag(t *testing.T) {
	v := NewValidator()

	type req struct {
		Sources []string `json:"sources" validate:"dive,marketplace"`
	}

	assert.NoError(t, v.Validate(req{Sources: []string{"aliexpress", "ebay"}}))
	assert.NoError(t, v.Validate(req{Sources: []string{"EBAY"}}))
	assert.Error(t, v.Validate(req{Sources: []string{"amazon"}}))
}

func TestValidatorSortModeTag(t *testing.T) {
	v := NewValidator()

	type req struct {
		Sort string `json:"sort" validate:"omitempty,sortmode"`
	}

	assert.NoError(t, v.Validate(req{}))
	assert.NoError(t, v.Validate(req{Sort: "priceAsc"}))
	assert.NoError(t, v.Validate(req{Sort: "soldDesc"}))
	assert.Error(t, v.Validate(req{Sort: "alphabetical"}))
}
