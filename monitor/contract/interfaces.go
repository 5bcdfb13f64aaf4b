package contract

import (
	"context"
	"encoding/json"
)

// PriceStore reads the reference price for a product from the system of
// record. Absence of a record is ErrNotFound; connectivity or query failures
// are ErrDataSource.
type PriceStore interface {
	Lookup(ctx context.Context, productCode string) (PriceRecord, error)
}

// OfferSource fetches the raw extraction payload for a product's marketplace
// search page. The payload is not yet normalized; see DecodeOffers.
type OfferSource interface {
	Scrape(ctx context.Context, productCode string) (json.RawMessage, error)
}

// AlertSender delivers a single alert. One attempt, no retry.
type AlertSender interface {
	Send(ctx context.Context, alert AlertMessage) error
}
