package monitornode

import (
	"encoding/json"

	contractx "github.com/yeonjae-dev/price-monitor-mcp/monitor/contract"
)

type GraphInput struct {
	ProductCode string
}

type GraphOutput = contractx.WorkflowResult

// GraphState is threaded through the workflow nodes. Each node fills in the
// fields its step produces.
type GraphState struct {
	ProductCode string

	DBPrice        float64
	PriceUpdatedAt string

	RawOffers json.RawMessage
	Offers    []contractx.Offer

	Best         contractx.Offer
	PriceDiff    float64
	DiscountRate float64
	AlertSent    bool
	AlertResult  *contractx.AlertResult
}
