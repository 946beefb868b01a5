package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"RiskScreener/internal/config"
	"RiskScreener/internal/history"
	"RiskScreener/internal/notifier"
	"RiskScreener/internal/scheduler"
	"RiskScreener/internal/screener"
	"RiskScreener/internal/universe"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	lookup := flag.String("lookup", "", "fuzzy-search the metadata table for a listing name and exit")
	flag.Parse()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Metadata lookup mode
	if *lookup != "" {
		runLookup(cfg, *lookup)
		return
	}

	start, end, err := cfg.Dates()
	if err != nil {
		log.Fatalf("[FATAL] parse dates: %v", err)
	}

	// Init provider
	var provider history.Provider
	switch cfg.Source.Kind {
	case "api":
		provider = history.NewAPIProvider(cfg.Source.APIBaseURL, cfg.Proxy, cfg.RequestTimeout())
	default:
		provider = history.NewScrapeProvider(cfg.Source.BaseURL, cfg.Proxy,
			cfg.Screen.PageSize, cfg.Screen.Workers, cfg.RequestTimeout())
	}
	log.Printf("[INFO] data source: %s", provider.Name())

	// Load universe
	symbols, err := universe.LoadTickerList(cfg.Universe.TickersFile, cfg.Universe.MaxSymbols)
	if err != nil {
		log.Fatalf("[FATAL] load ticker list: %v", err)
	}
	log.Printf("[INFO] universe: %d symbols from %s", len(symbols), cfg.Universe.TickersFile)

	scr := &screener.Screener{
		Provider:      provider,
		Confidence:    cfg.Screen.Confidence,
		Threshold:     cfg.Screen.Threshold,
		SymbolTimeout: cfg.SymbolTimeout(),
		HistogramDir:  cfg.Screen.HistogramDir,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One-shot mode: screen once, print the ordered result list, exit.
	if cfg.Schedule.Cron == "" {
		results, outcomes := scr.Screen(ctx, symbols, start, end)
		fmt.Printf("Gathered %d good stocks out of %d assessed\n", len(results), len(outcomes))
		for _, r := range results {
			fmt.Printf("%-6s %+.5f\n", r.Symbol, r.Statistic)
		}
		return
	}

	// Daemon mode: run on the cron schedule and report via Telegram.
	if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == "" {
		log.Fatalf("[FATAL] daemon mode requires telegram.bot_token and telegram.chat_id")
	}
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	sched := scheduler.NewScheduler(ctx, scr, tn, symbols, start, end)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing screen now")
		go sched.RunNow()
	}

	log.Println("[INFO] RiskScreener is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] RiskScreener stopped")
}

func runLookup(cfg *config.Config, query string) {
	if cfg.Universe.MetadataFile == "" {
		log.Fatalf("[FATAL] universe.metadata_file is not configured")
	}
	listings, err := universe.LoadListings(cfg.Universe.MetadataFile)
	if err != nil {
		log.Fatalf("[FATAL] load metadata: %v", err)
	}
	matches := universe.Search(listings, query)
	for _, m := range matches {
		fmt.Printf("%3d%%  %-10s %s\n", m.Ratio, m.Listing.Code, m.Listing.Name)
	}
}
