package monitornode

import (
	"errors"
	"strings"

	contractx "github.com/yeonjae-dev/price-monitor-mcp/monitor/contract"
)

func ValidateRequest(in GraphInput) (*GraphState, error) {
	code := strings.TrimSpace(in.ProductCode)
	if code == "" {
		return nil, contractx.NewStepError(contractx.StepGetDBPrice, errors.New("product code is required"))
	}

	return &GraphState{ProductCode: code}, nil
}
