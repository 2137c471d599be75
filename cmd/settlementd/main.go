package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bazario/settlement-daemon/config"
	httpadapter "github.com/bazario/settlement-daemon/internal/adapter/http"
	"github.com/bazario/settlement-daemon/internal/core/application"
	"github.com/bazario/settlement-daemon/internal/core/ports"
	checkoutapi "github.com/bazario/settlement-daemon/internal/infrastructure/checkout-api"
	paymentgateway "github.com/bazario/settlement-daemon/internal/infrastructure/gateway"
	httpratesource "github.com/bazario/settlement-daemon/internal/infrastructure/rate-source/http"
	wsratesource "github.com/bazario/settlement-daemon/internal/infrastructure/rate-source/websocket"
	dbbadger "github.com/bazario/settlement-daemon/internal/infrastructure/storage/db/badger"
	"github.com/bazario/settlement-daemon/internal/infrastructure/storage/db/inmemory"
	"github.com/bazario/settlement-daemon/pkg/stats"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	if err := config.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	repoManager, err := getRepoManager()
	if err != nil {
		log.WithError(err).Fatal("error while opening storage")
	}
	defer repoManager.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	group, _ := errgroup.WithContext(ctx)
	rateSource, stopRateSource, err := getRateSource(group)
	if err != nil {
		log.WithError(err).Fatal("error while setting up rate source")
	}

	discountFunding, err := application.ParseDiscountFunding(
		config.GetString(config.DiscountFundingKey),
	)
	if err != nil {
		log.WithError(err).Fatal("invalid discount funding mode")
	}

	gateway := paymentgateway.NewPaymentGateway(
		config.GetString(config.GatewayURLKey),
		config.GetMillisDuration(config.GatewayRequestTimeoutKey),
		config.GetInt(config.GatewayRateLimitKey),
	)
	checkoutAPI := checkoutapi.NewService(
		config.GetString(config.CheckoutAPIURLKey),
		config.GetMillisDuration(config.CheckoutRequestTimeoutKey),
	)

	pricingSvc := application.NewPricingService(discountFunding)
	rateLockSvc := application.NewRateLockService(
		rateSource, repoManager.RateRepository(),
	)
	settlementSvc := application.NewSettlementService(repoManager, gateway)
	analyticsSvc := application.NewAnalyticsService()
	checkoutSvc := application.NewCheckoutService(
		pricingSvc, rateLockSvc, checkoutAPI, checkoutAPI,
		repoManager.QuoteRepository(),
	)

	statsInterval := time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second
	stats.EnableSettlementStatistics(
		ctx, statsInterval, repoManager.EscrowRepository(), analyticsSvc,
	)

	router := httpadapter.NewRouter(
		httpadapter.NewCheckoutHandler(checkoutSvc, repoManager.RateRepository()),
		httpadapter.NewEscrowHandler(
			settlementSvc, analyticsSvc,
			config.GetInt(config.SettleMaxRetriesKey),
		),
	)
	server := &http.Server{
		Addr:    config.GetString(config.ListenAddressKey),
		Handler: router,
	}
	group.Go(func() error {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	log.WithField("address", server.Addr).Info("settlement daemon started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(), 10*time.Second,
	)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("error while stopping http server")
	}

	cancel()
	if stopRateSource != nil {
		stopRateSource()
	}
	if err := group.Wait(); err != nil {
		log.WithError(err).Warn("stopped with error")
	}
}

func getRepoManager() (ports.RepoManager, error) {
	if config.GetString(config.DbTypeKey) == config.DbTypeInMemory {
		return inmemory.NewRepoManager(), nil
	}
	return dbbadger.NewRepoManager(config.GetDbDir(), nil)
}

func getRateSource(group *errgroup.Group) (ports.RateSource, func(), error) {
	url := config.GetString(config.RateSourceURLKey)

	if config.GetString(config.RateSourceKindKey) == config.RateSourceWebsocket {
		feed, err := wsratesource.NewRateSource(url)
		if err != nil {
			return nil, nil, err
		}
		group.Go(feed.Start)
		return feed, feed.Stop, nil
	}

	source := httpratesource.NewRateSource(
		url, config.GetMillisDuration(config.RateRequestTimeoutKey),
	)
	return source, nil, nil
}
