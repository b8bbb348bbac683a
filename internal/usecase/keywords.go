package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxKeywords = 4

// stopWords are marketing filler and grammar tokens that carry no search
// signal in a listing title.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {},
	"new": {}, "hot": {}, "top": {}, "best": {}, "sale": {}, "deal": {},
	"free": {}, "shipping": {}, "original": {}, "official": {}, "genuine": {},
	"portable": {}, "universal": {}, "luxury": {}, "fashion": {},
	"pro": {}, "max": {}, "plus": {}, "mini": {}, "ultra": {}, "lite": {},
	"pcs": {}, "set": {}, "lot": {}, "color": {}, "style": {},
}

// productTypeTerms is the high-value vocabulary. Tokens found here are
// ranked before everything else when building a similar-products query.
var productTypeTerms = map[string]struct{}{
	"phone": {}, "iphone": {}, "smartphone": {}, "tablet": {}, "ipad": {},
	"case": {}, "cover": {}, "protector": {}, "charger": {}, "cable": {},
	"adapter": {}, "holder": {}, "stand": {}, "mount": {},
	"watch": {}, "smartwatch": {}, "band": {}, "strap": {}, "tracker": {},
	"laptop": {}, "keyboard": {}, "mouse": {}, "monitor": {}, "webcam": {},
	"hub": {}, "ssd": {}, "drive": {},
	"headphone": {}, "headphones": {}, "earbuds": {}, "earphone": {},
	"speaker": {}, "microphone": {},
	"camera": {}, "drone": {}, "projector": {}, "console": {}, "controller": {},
	"lamp": {}, "light": {}, "organizer": {}, "pillow": {}, "blanket": {},
	"backpack": {}, "bag": {}, "wallet": {}, "sneaker": {}, "shoes": {},
	"jacket": {}, "hoodie": {}, "dress": {}, "sunglasses": {},
	"toy": {}, "puzzle": {}, "doll": {},
}

// ExtractKeywords derives the short, de-duplicated, priority-ordered
// keyword set a similar-products query is built from. Deterministic: the
// same title always yields the same list.
func ExtractKeywords(title string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, title)

	seen := make(map[string]struct{})
	var primary, secondary []string
	for _, token := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(token) <= 2 {
			continue
		}
		if _, ok := stopWords[token]; ok {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		if _, ok := productTypeTerms[token]; ok {
			primary = append(primary, token)
		} else {
			secondary = append(secondary, token)
		}
	}

	keywords := append(primary, secondary...)
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// BuildSimilarQuery joins the extracted keywords into the query text sent
// to the marketplace gateways.
func BuildSimilarQuery(title string) string {
	return strings.Join(ExtractKeywords(title), " ")
}
