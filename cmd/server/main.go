package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"fantassist-backend/lib/configutil"
	"fantassist-backend/lib/scrapers/fantacalcio"
	"fantassist-backend/lib/serviceutil"
	"fantassist-backend/lib/telemetry"
	"fantassist-backend/services/players"
)

type Config struct {
	Port    int    `json:"port"`
	BaseUrl string `json:"base_url"`
	// scrape request timeout in seconds
	Timeout int `json:"timeout"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	telemetry.InitSlog(*verbose)
	tel, err := telemetry.SetupFromEnv(ctx, "server")
	if os.IsNotExist(err) {
		slog.InfoContext(ctx, "no telemetry.json5 found, running with logging only")
	} else if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	} else {
		go func() {
			<-ctx.Done()
			tel.ShutdownAndLog(context.Background())
		}()
	}

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("read config", err)
	}
	port := cfg.Port
	if port == 0 {
		port = 8000
	}

	client := fantacalcio.NewClient(fantacalcio.ClientOptions{
		BaseUrl: cfg.BaseUrl,
		Timeout: time.Duration(cfg.Timeout) * time.Second,
	})
	slog.InfoContext(ctx, "starting server", "port", port, "base_url", client.BaseUrl)

	go serviceutil.StartHttpServer(port, players.NewService(client).Handler())
	<-ctx.Done()
}
