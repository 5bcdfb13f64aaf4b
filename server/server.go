// Package server exposes the price-monitoring tools over an MCP session:
// SSE transport behind gin, one named tool per workflow step plus the full
// workflow, and the monitor_price prompt for agents driving the tools
// manually.
package server

import (
	"context"
	"fmt"

	mcpserver "github.com/ThinkInAIXYZ/go-mcp/server"
	"github.com/ThinkInAIXYZ/go-mcp/transport"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	contractx "github.com/yeonjae-dev/price-monitor-mcp/monitor/contract"
)

type Config struct {
	Addr            string `envconfig:"ADDR" split_words:"true" default:":8080"`
	MessageEndpoint string `envconfig:"MESSAGE_ENDPOINT" split_words:"true" default:"/message"`
}

// OfferCrawler is the slice of the scraper the standalone crawl tool needs.
type OfferCrawler interface {
	ScrapeOffers(ctx context.Context, productCode string) ([]contractx.Offer, error)
}

// WorkflowRunner runs one full monitoring pass.
type WorkflowRunner interface {
	Run(ctx context.Context, productCode string) (contractx.WorkflowResult, error)
}

type Server struct {
	store    contractx.PriceStore
	crawler  OfferCrawler
	sender   contractx.AlertSender
	workflow WorkflowRunner

	addr            string
	messageEndpoint string
}

func New(
	store contractx.PriceStore,
	crawler OfferCrawler,
	sender contractx.AlertSender,
	wf WorkflowRunner,
	cfg Config,
) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("price store is required")
	}
	if crawler == nil {
		return nil, fmt.Errorf("offer crawler is required")
	}
	if sender == nil {
		return nil, fmt.Errorf("alert sender is required")
	}
	if wf == nil {
		return nil, fmt.Errorf("workflow runner is required")
	}

	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	endpoint := cfg.MessageEndpoint
	if endpoint == "" {
		endpoint = "/message"
	}

	return &Server{
		store:           store,
		crawler:         crawler,
		sender:          sender,
		workflow:        wf,
		addr:            addr,
		messageEndpoint: endpoint,
	}, nil
}

// Run hosts the MCP endpoint until the process is terminated.
func (s *Server) Run(ctx context.Context) error {
	sseTransport, mcpHandler, err := transport.NewSSEServerTransportAndHandler(s.messageEndpoint)
	if err != nil {
		return fmt.Errorf("create sse transport: %w", err)
	}

	mcpServer, err := mcpserver.NewServer(sseTransport)
	if err != nil {
		return fmt.Errorf("create mcp server: %w", err)
	}

	if err := s.registerTools(mcpServer); err != nil {
		return err
	}
	if err := s.registerPrompts(mcpServer); err != nil {
		return err
	}

	go func() {
		if err := mcpServer.Run(); err != nil {
			log.Error().Err(err).Msg("mcp server stopped")
		}
	}()
	defer func() {
		if err := mcpServer.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("mcp server shutdown failed")
		}
	}()

	r := gin.Default()
	r.GET("/sse", func(c *gin.Context) {
		mcpHandler.HandleSSE().ServeHTTP(c.Writer, c.Request)
	})
	r.POST(s.messageEndpoint, func(c *gin.Context) {
		mcpHandler.HandleMessage().ServeHTTP(c.Writer, c.Request)
	})

	log.Info().Str("addr", s.addr).Msg("price monitor listening")
	return r.Run(s.addr)
}
