package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Keys under which extraction providers have been observed to nest the offer
// array when they return an object instead of a bare list.
var offerContainerKeys = []string{"products", "offers"}

// DecodeOffers normalizes a raw extraction payload into a price-sorted offer
// list. The provider may return either a bare JSON array of offers or an
// object carrying the array under a known key; both shapes decode to the same
// sequence. The sort is stable: offers with equal prices keep their input
// order. An empty or absent payload decodes to an empty slice; callers decide
// whether that is an error.
func DecodeOffers(raw json.RawMessage) ([]Offer, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var offers []Offer
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &offers); err != nil {
			return nil, fmt.Errorf("%w: decode offer array: %v", ErrParse, err)
		}
	case '{':
		var container map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &container); err != nil {
			return nil, fmt.Errorf("%w: decode offer container: %v", ErrParse, err)
		}
		inner, ok := lookupContainer(container)
		if !ok {
			return nil, nil
		}
		if err := json.Unmarshal(inner, &offers); err != nil {
			return nil, fmt.Errorf("%w: decode nested offer array: %v", ErrParse, err)
		}
	default:
		return nil, fmt.Errorf("%w: unexpected payload shape", ErrParse)
	}

	SortOffers(offers)
	return offers, nil
}

// SortOffers orders offers ascending by price, preserving the relative order
// of equal prices.
func SortOffers(offers []Offer) {
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Price < offers[j].Price
	})
}

func lookupContainer(container map[string]json.RawMessage) (json.RawMessage, bool) {
	for _, key := range offerContainerKeys {
		if inner, ok := container[key]; ok {
			trimmed := bytes.TrimSpace(inner)
			if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
				return nil, false
			}
			return trimmed, true
		}
	}
	return nil, false
}
