package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	mcpserver "github.com/ThinkInAIXYZ/go-mcp/server"
	"github.com/rs/zerolog/log"

	contractx "github.com/yeonjae-dev/price-monitor-mcp/monitor/contract"
)

type productCodeRequest struct {
	ProductCode string `json:"product_code" description:"Product code to look up"`
}

type sendAlertRequest struct {
	Message contractx.AlertMessage `json:"message" description:"Alert payload to deliver"`
}

// Tool result envelopes. Failures are envelopes too: a broken dependency is a
// normal, reportable outcome and must never surface as a protocol error.
type priceResult struct {
	Success   bool    `json:"success"`
	Price     float64 `json:"price,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
	Message   string  `json:"message,omitempty"`
}

type crawlResult struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s *Server) registerTools(mcpServer *mcpserver.Server) error {
	type toolDef struct {
		name    string
		desc    string
		req     any
		handler func(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error)
	}

	defs := []toolDef{
		{
			name:    "get_db_price",
			desc:    "Look up the reference price for a product in the database",
			req:     productCodeRequest{},
			handler: s.handleGetDBPrice,
		},
		{
			name:    "crawl_gmarket_price",
			desc:    "Scrape current Gmarket offers for a product, sorted by ascending price",
			req:     productCodeRequest{},
			handler: s.handleCrawlPrice,
		},
		{
			name:    "send_slack_alert",
			desc:    "Send a price-drop alert to the configured Slack webhook",
			req:     sendAlertRequest{},
			handler: s.handleSendAlert,
		},
		{
			name:    "monitor_price_workflow",
			desc:    "Run the full price monitoring workflow for a product",
			req:     productCodeRequest{},
			handler: s.handleMonitorWorkflow,
		},
	}

	for _, def := range defs {
		tool, err := protocol.NewTool(def.name, def.desc, def.req)
		if err != nil {
			return fmt.Errorf("create tool %s: %w", def.name, err)
		}
		mcpServer.RegisterTool(tool, def.handler)
	}

	return nil
}

func (s *Server) handleGetDBPrice(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var args productCodeRequest
	if err := protocol.VerifyAndUnmarshal(req.RawArguments, &args); err != nil {
		return toolResult(priceResult{Success: false, Message: err.Error()})
	}

	record, err := s.store.Lookup(ctx, args.ProductCode)
	if err != nil {
		log.Warn().Err(err).Str("product_code", args.ProductCode).Msg("price lookup failed")
		return toolResult(priceResult{Success: false, Message: err.Error()})
	}

	return toolResult(priceResult{
		Success:   true,
		Price:     record.Price,
		UpdatedAt: record.UpdatedAt,
	})
}

func (s *Server) handleCrawlPrice(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var args productCodeRequest
	if err := protocol.VerifyAndUnmarshal(req.RawArguments, &args); err != nil {
		return toolResult(crawlResult{Success: false, Message: err.Error()})
	}

	offers, err := s.crawler.ScrapeOffers(ctx, args.ProductCode)
	if err != nil {
		log.Warn().Err(err).Str("product_code", args.ProductCode).Msg("offer scrape failed")
		return toolResult(crawlResult{Success: false, Message: err.Error()})
	}

	data, err := json.Marshal(offers)
	if err != nil {
		return toolResult(crawlResult{Success: false, Message: fmt.Sprintf("encode offers: %v", err)})
	}

	return toolResult(crawlResult{Success: true, Data: string(data)})
}

func (s *Server) handleSendAlert(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var args sendAlertRequest
	if err := protocol.VerifyAndUnmarshal(req.RawArguments, &args); err != nil {
		return toolResult(contractx.AlertResult{Success: false, Message: err.Error()})
	}

	if err := s.sender.Send(ctx, args.Message); err != nil {
		log.Warn().Err(err).Str("product", args.Message.ProductName).Msg("alert send failed")
		return toolResult(contractx.AlertResult{Success: false, Message: err.Error()})
	}

	return toolResult(contractx.AlertResult{Success: true, Message: "alert delivered"})
}

func (s *Server) handleMonitorWorkflow(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var args productCodeRequest
	if err := protocol.VerifyAndUnmarshal(req.RawArguments, &args); err != nil {
		return toolResult(contractx.WorkflowResult{Success: false, Message: err.Error()})
	}

	result, err := s.workflow.Run(ctx, args.ProductCode)
	if err != nil {
		log.Error().Err(err).Str("product_code", args.ProductCode).Msg("workflow run failed")
		return toolResult(contractx.WorkflowResult{Success: false, Message: err.Error()})
	}

	return toolResult(result)
}

func toolResult(v any) (*protocol.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			&protocol.TextContent{
				Type: "text",
				Text: string(data),
			},
		},
	}, nil
}
