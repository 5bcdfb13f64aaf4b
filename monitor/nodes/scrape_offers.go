package monitornode

import (
	"context"
	"fmt"

	contractx "github.com/yeonjae-dev/price-monitor-mcp/monitor/contract"
)

func ScrapeOffers(
	ctx context.Context,
	in *GraphState,
	source contractx.OfferSource,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("graph state is nil")
	}

	raw, err := source.Scrape(ctx, in.ProductCode)
	if err != nil {
		return nil, contractx.NewStepError(contractx.StepCrawl, err)
	}

	in.RawOffers = raw
	return in, nil
}
