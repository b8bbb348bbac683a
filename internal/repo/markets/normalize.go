package markets

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/pkg/util"
)

// gatewayEnvelope tolerates the wrapper shapes the gateways emit. Exactly
// one of the list fields is populated per gateway; bare-array bodies are
// handled separately.
type gatewayEnvelope struct {
	Products []json.RawMessage `json:"products"`
	Items    []json.RawMessage `json:"items"`
	Results  []json.RawMessage `json:"results"`
}

func decodeItems(body []byte) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("failed to decode bare list: %w", err)
		}
		return items, nil
	}

	var envelope gatewayEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	switch {
	case envelope.Products != nil:
		return envelope.Products, nil
	case envelope.Items != nil:
		return envelope.Items, nil
	case envelope.Results != nil:
		return envelope.Results, nil
	}
	// an envelope with no recognized list is an empty page
	return nil, nil
}

// flexFloat accepts numeric or string-encoded numbers; some gateways quote
// prices.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*f = flexFloat(v)
	return nil
}

// flexInt accepts plain integers or strings like "1500" and "1500+".
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.TrimSuffix(strings.Trim(s, `"`), "+")
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %q", s)
	}
	*f = flexInt(v)
	return nil
}

// gatewayItem is the union of the item fields the gateways emit.
type gatewayItem struct {
	ProductID     string          `json:"product_id"`
	ID            string          `json:"id"`
	ItemID        string          `json:"item_id"`
	Title         string          `json:"title"`
	Name          string          `json:"name"`
	SalePrice     *flexFloat      `json:"sale_price"`
	Price         *flexFloat      `json:"price"`
	OriginalPrice *flexFloat      `json:"original_price"`
	SoldCount     *flexInt        `json:"sold_count"`
	Orders        *flexInt        `json:"orders"`
	Categories    json.RawMessage `json:"categories"`
	Category      json.RawMessage `json:"category"`
}

func normalizeItems(m models.Marketplace, rawItems []json.RawMessage) ([]models.Product, int) {
	products := make([]models.Product, 0, len(rawItems))
	dropped := 0
	for _, raw := range rawItems {
		p, ok := normalizeItem(m, raw)
		if !ok {
			dropped++
			continue
		}
		products = append(products, p)
	}
	return products, dropped
}

// normalizeItem maps one raw gateway record to a Product. Records missing
// identity fields are dropped rather than propagated; one bad record must
// not fail the page.
func normalizeItem(m models.Marketplace, raw json.RawMessage) (models.Product, bool) {
	var item gatewayItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return models.Product{}, false
	}

	id := firstNonEmpty(item.ProductID, item.ID, item.ItemID)
	title := firstNonEmpty(item.Title, item.Name)
	if id == "" || title == "" {
		return models.Product{}, false
	}

	p := models.Product{
		ProductID:   id,
		Marketplace: m,
		Title:       title,
		Categories:  decodeCategories(item.Categories, item.Category),
	}
	if sale := firstFlexFloat(item.SalePrice, item.Price); sale != nil {
		p.SalePrice = util.Ptr(float64(*sale))
	}
	if item.OriginalPrice != nil {
		p.OriginalPrice = util.Ptr(float64(*item.OriginalPrice))
	}
	if sold := firstFlexInt(item.SoldCount, item.Orders); sold != nil {
		p.SoldCount = util.Ptr(int(*sold))
	}
	return p, true
}

// decodeCategories flattens the heterogeneous category field: a single
// string, a list of strings, or a level-to-name mapping. Mapping values
// come out sorted by key so the result is deterministic.
func decodeCategories(candidates ...json.RawMessage) []string {
	for _, raw := range candidates {
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}

		var single string
		if err := json.Unmarshal(raw, &single); err == nil {
			if single = strings.TrimSpace(single); single != "" {
				return []string{single}
			}
			continue
		}

		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			out := make([]string, 0, len(list))
			for _, c := range list {
				if c = strings.TrimSpace(c); c != "" {
					out = append(out, c)
				}
			}
			if len(out) > 0 {
				return out
			}
			continue
		}

		var byLevel map[string]string
		if err := json.Unmarshal(raw, &byLevel); err == nil {
			keys := make([]string, 0, len(byLevel))
			for k := range byLevel {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			out := make([]string, 0, len(keys))
			for _, k := range keys {
				if c := strings.TrimSpace(byLevel[k]); c != "" {
					out = append(out, c)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstFlexFloat(values ...*flexFloat) *flexFloat {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstFlexInt(values ...*flexInt) *flexInt {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
