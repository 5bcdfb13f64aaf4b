package monitornode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/yeonjae-dev/price-monitor-mcp/monitor/contract"
)

// CompareAndNotify picks the best (lowest-priced) offer, computes the
// discount, and sends the alert when the live price undercuts the reference
// price. A failed delivery is recorded in the state but never fails the run:
// the detection itself is the signal worth reporting.
func CompareAndNotify(
	ctx context.Context,
	in *GraphState,
	sender contractx.AlertSender,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("graph state is nil")
	}
	if len(in.Offers) == 0 {
		return nil, fmt.Errorf("offers missing from graph state")
	}

	in.Best = in.Offers[0]
	in.PriceDiff = in.DBPrice - in.Best.Price
	if in.DBPrice != 0 {
		in.DiscountRate = in.PriceDiff / in.DBPrice * 100
	} else {
		in.DiscountRate = 0
	}

	if in.Best.Price >= in.DBPrice {
		return in, nil
	}

	err := sender.Send(ctx, contractx.AlertMessage{
		ProductName:  in.Best.Title,
		DBPrice:      in.DBPrice,
		CurrentPrice: in.Best.Price,
		PriceDiff:    in.PriceDiff,
		DiscountRate: in.DiscountRate,
		Seller:       in.Best.Seller,
		URL:          in.Best.URL,
	})
	if err != nil {
		log.Warn().Err(err).Str("product_code", in.ProductCode).Msg("alert delivery failed")
		in.AlertSent = false
		in.AlertResult = &contractx.AlertResult{Success: false, Message: err.Error()}
		return in, nil
	}

	in.AlertSent = true
	in.AlertResult = &contractx.AlertResult{Success: true, Message: "alert delivered"}
	return in, nil
}
