// Package workflow runs the full price-monitoring sequence: reference-price
// lookup, offer scraping, normalization, comparison, and conditional alert.
package workflow

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/yeonjae-dev/price-monitor-mcp/monitor/contract"
	monitornode "github.com/yeonjae-dev/price-monitor-mcp/monitor/nodes"
)

type Service struct {
	store  contractx.PriceStore
	source contractx.OfferSource
	sender contractx.AlertSender

	graphRunner compose.Runnable[monitornode.GraphInput, monitornode.GraphOutput]
}

func New(
	store contractx.PriceStore,
	source contractx.OfferSource,
	sender contractx.AlertSender,
) (*Service, error) {
	if store == nil {
		return nil, errors.New("price store is required")
	}
	if source == nil {
		return nil, errors.New("offer source is required")
	}
	if sender == nil {
		return nil, errors.New("alert sender is required")
	}

	s := &Service{
		store:  store,
		source: source,
		sender: sender,
	}

	graphRunner, err := s.compileMonitorGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

// Run executes one monitoring pass. Step-level failures come back as a
// failure result with the originating step tag; they are never Go errors,
// so the session transport stays alive on broken dependencies.
func (s *Service) Run(ctx context.Context, productCode string) (contractx.WorkflowResult, error) {
	out, err := s.graphRunner.Invoke(ctx, monitornode.GraphInput{
		ProductCode: productCode,
	})
	if err != nil {
		var stepErr *contractx.StepError
		if errors.As(err, &stepErr) {
			return contractx.WorkflowResult{
				Success: false,
				Step:    stepErr.Step,
				Message: stepErr.Message,
			}, nil
		}
		return contractx.WorkflowResult{}, err
	}
	return out, nil
}
