package monitornode

import (
	"context"
	"fmt"

	contractx "github.com/yeonjae-dev/price-monitor-mcp/monitor/contract"
)

func LookupPrice(
	ctx context.Context,
	in *GraphState,
	store contractx.PriceStore,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("graph state is nil")
	}

	record, err := store.Lookup(ctx, in.ProductCode)
	if err != nil {
		return nil, contractx.NewStepError(contractx.StepGetDBPrice, err)
	}

	in.DBPrice = record.Price
	in.PriceUpdatedAt = record.UpdatedAt
	return in, nil
}
