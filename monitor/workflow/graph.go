package workflow

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	monitornode "github.com/yeonjae-dev/price-monitor-mcp/monitor/nodes"
)

func (s *Service) compileMonitorGraph(
	ctx context.Context,
) (compose.Runnable[monitornode.GraphInput, monitornode.GraphOutput], error) {
	graph := compose.NewGraph[monitornode.GraphInput, monitornode.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in monitornode.GraphInput) (*monitornode.GraphState, error) {
			return monitornode.ValidateRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("lookup_price",
		compose.InvokableLambda(func(ctx context.Context, in *monitornode.GraphState) (*monitornode.GraphState, error) {
			return monitornode.LookupPrice(ctx, in, s.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node lookup_price: %w", err)
	}

	if err := graph.AddLambdaNode("scrape_offers",
		compose.InvokableLambda(func(ctx context.Context, in *monitornode.GraphState) (*monitornode.GraphState, error) {
			return monitornode.ScrapeOffers(ctx, in, s.source)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node scrape_offers: %w", err)
	}

	if err := graph.AddLambdaNode("parse_offers",
		compose.InvokableLambda(func(ctx context.Context, in *monitornode.GraphState) (*monitornode.GraphState, error) {
			return monitornode.ParseOffers(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node parse_offers: %w", err)
	}

	if err := graph.AddLambdaNode("compare_and_notify",
		compose.InvokableLambda(func(ctx context.Context, in *monitornode.GraphState) (*monitornode.GraphState, error) {
			return monitornode.CompareAndNotify(ctx, in, s.sender)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node compare_and_notify: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_result",
		compose.InvokableLambda(func(ctx context.Context, in *monitornode.GraphState) (monitornode.GraphOutput, error) {
			return monitornode.FinalizeResult(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_result: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "lookup_price"},
		{"lookup_price", "scrape_offers"},
		{"scrape_offers", "parse_offers"},
		{"parse_offers", "compare_and_notify"},
		{"compare_and_notify", "finalize_result"},
		{"finalize_result", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("monitor.price_workflow"))
	if err != nil {
		return nil, fmt.Errorf("compile monitor graph: %w", err)
	}
	return runner, nil
}
