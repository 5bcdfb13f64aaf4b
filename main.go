package main

import (
	"context"

	"github.com/rs/zerolog/log"

	notifyx "github.com/yeonjae-dev/price-monitor-mcp/monitor/notify"
	scraperx "github.com/yeonjae-dev/price-monitor-mcp/monitor/scraper"
	storex "github.com/yeonjae-dev/price-monitor-mcp/monitor/store"
	workflowx "github.com/yeonjae-dev/price-monitor-mcp/monitor/workflow"
	configx "github.com/yeonjae-dev/price-monitor-mcp/pkg/config"
	firecrawlx "github.com/yeonjae-dev/price-monitor-mcp/pkg/firecrawl"
	logx "github.com/yeonjae-dev/price-monitor-mcp/pkg/logger"
	slackx "github.com/yeonjae-dev/price-monitor-mcp/pkg/slack"
	serverx "github.com/yeonjae-dev/price-monitor-mcp/server"
)

func main() {
	logCfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*logCfg)

	dbCfg := configx.MustNew[storex.Config]("DB")
	priceStore := storex.NewPostgresStore(*dbCfg)
	defer priceStore.Close()

	fcCfg := configx.MustNew[firecrawlx.Config]("FIRECRAWL")
	fcClient := firecrawlx.MustNew(*fcCfg)

	scraperCfg := configx.MustNew[scraperx.Config]("SCRAPER")
	gmarket, err := scraperx.New(fcClient, *scraperCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init scraper")
	}

	slackCfg := configx.MustNew[slackx.Config]("SLACK")
	notifier, err := notifyx.New(slackx.NewClient(*slackCfg))
	if err != nil {
		log.Fatal().Err(err).Msg("init notifier")
	}

	wf, err := workflowx.New(priceStore, gmarket, notifier)
	if err != nil {
		log.Fatal().Err(err).Msg("init workflow")
	}

	srvCfg := configx.MustNew[serverx.Config]("SERVER")
	srv, err := serverx.New(priceStore, gmarket, notifier, wf, *srvCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init server")
	}

	if err := srv.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
