package server

import (
	"context"
	_ "embed"
	"strings"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	mcpserver "github.com/ThinkInAIXYZ/go-mcp/server"
)

//go:embed template/monitor_price.txt
var monitorPromptRaw string

// MonitorPromptText renders the monitor_price prompt for a product code.
func MonitorPromptText(productCode string) string {
	return strings.ReplaceAll(strings.TrimSpace(monitorPromptRaw), "{product_code}", productCode)
}

func (s *Server) registerPrompts(mcpServer *mcpserver.Server) error {
	mcpServer.RegisterPrompt(&protocol.Prompt{
		Name:        "monitor_price",
		Description: "Step-by-step procedure for monitoring a product's price with the individual tools",
		Arguments: []protocol.PromptArgument{
			{
				Name:        "product_code",
				Description: "Product code to monitor",
				Required:    true,
			},
		},
	}, s.handleMonitorPrompt)

	return nil
}

func (s *Server) handleMonitorPrompt(ctx context.Context, req *protocol.GetPromptRequest) (*protocol.GetPromptResult, error) {
	productCode := strings.TrimSpace(req.Arguments["product_code"])

	return &protocol.GetPromptResult{
		Description: "Price monitoring procedure",
		Messages: []protocol.PromptMessage{
			{
				Role: protocol.RoleUser,
				Content: &protocol.TextContent{
					Type: "text",
					Text: MonitorPromptText(productCode),
				},
			},
		},
	}, nil
}
