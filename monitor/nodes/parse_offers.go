package monitornode

import (
	"fmt"

	contractx "github.com/yeonjae-dev/price-monitor-mcp/monitor/contract"
)

func ParseOffers(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("graph state is nil")
	}

	offers, err := contractx.DecodeOffers(in.RawOffers)
	if err != nil {
		return nil, contractx.NewStepError(contractx.StepParse, err)
	}
	// An empty result is a scraping outcome, not a parse failure: the page
	// rendered but carried no listings.
	if len(offers) == 0 {
		return nil, contractx.NewStepError(contractx.StepCrawl,
			fmt.Errorf("%w: product_code=%s", contractx.ErrNoOffers, in.ProductCode))
	}

	in.Offers = offers
	return in, nil
}
