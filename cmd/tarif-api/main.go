// README: Entry point; loads config, wires services and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"tarif/internal/config"
	httptransport "tarif/internal/http"
	"tarif/internal/infra"
	"tarif/internal/modules/invoice"
	"tarif/internal/modules/pricing"
	"tarif/internal/modules/ratesheet"
	"tarif/internal/modules/routing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Printf("route cache disabled: %v", err)
		} else {
			defer redisClient.Close()
		}
	}

	oracle, err := infra.NewRouteOracle(cfg.Routing, redisClient)
	if err != nil {
		log.Fatal(err)
	}

	ratesSvc := ratesheet.NewService(ratesheet.NewStore())
	pricingSvc := pricing.NewService(pricing.FlatRateTariff(cfg.FlatRate))
	routingSvc := routing.NewService(oracle)
	invoiceSvc := invoice.NewService(cfg.Invoice.Issuer, cfg.Invoice.Currency)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Rates:          ratesSvc,
		Pricing:        pricingSvc,
		Routes:         routingSvc,
		Invoices:       invoiceSvc,
		DefaultTaxPct:  cfg.DefaultTaxPct,
		MaxUploadBytes: int64(cfg.HTTP.MaxUploadMiB) << 20,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("tarif-api listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
