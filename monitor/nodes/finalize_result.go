package monitornode

import (
	"fmt"

	contractx "github.com/yeonjae-dev/price-monitor-mcp/monitor/contract"
)

func FinalizeResult(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("graph state is nil")
	}

	return contractx.WorkflowResult{
		Success:      true,
		DBPrice:      in.DBPrice,
		CurrentPrice: in.Best.Price,
		PriceDiff:    in.PriceDiff,
		DiscountRate: in.DiscountRate,
		Seller:       in.Best.Seller,
		URL:          in.Best.URL,
		ProductName:  in.Best.Title,
		AlertSent:    in.AlertSent,
		AlertResult:  in.AlertResult,
	}, nil
}
