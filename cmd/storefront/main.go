package main

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rnitealiii/EliteMart/internal/app"
	"github.com/rnitealiii/EliteMart/internal/cart"
	"github.com/rnitealiii/EliteMart/internal/catalog"
	"github.com/rnitealiii/EliteMart/internal/checkout"
	"github.com/rnitealiii/EliteMart/internal/notify"
	"github.com/rnitealiii/EliteMart/internal/ops"
	"github.com/rnitealiii/EliteMart/pkg/config"
	"github.com/rnitealiii/EliteMart/pkg/enums"
	"github.com/rnitealiii/EliteMart/pkg/logger"
	"github.com/rnitealiii/EliteMart/pkg/metrics"
	"github.com/rnitealiii/EliteMart/pkg/storage"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	registry := prometheus.NewRegistry()
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	kv, err := openStorage(ctx, cfg)
	if err != nil {
		logg.Error(ctx, "failed to open durable storage", err)
		os.Exit(1)
	}

	hub := notify.NewHub(cfg.Notify, logg, storefrontMetrics)
	renderer := newTerminalRenderer(os.Stdout)
	hub.Subscribe(renderer)

	loader, err := catalog.NewLoader(cfg.Catalog, logg, storefrontMetrics)
	if err != nil {
		logg.Error(ctx, "failed to build catalog loader", err)
		os.Exit(1)
	}

	// The cart's lookup closes over the controller built below; the catalog
	// is empty until Init completes, so early lookups miss harmlessly.
	var controller *app.Controller
	lookup := func(id int) (catalog.Product, bool) {
		if controller == nil {
			return catalog.Product{}, false
		}
		return controller.Lookup(id)
	}

	cartStore, err := cart.NewStore(ctx, kv, lookup, hub, logg, storefrontMetrics)
	if err != nil {
		logg.Error(ctx, "failed to build cart store", err)
		os.Exit(1)
	}

	flow, err := checkout.NewFlow(cfg.Checkout, cartStore, kv, hub, logg, storefrontMetrics)
	if err != nil {
		logg.Error(ctx, "failed to build checkout flow", err)
		os.Exit(1)
	}

	controller, err = app.NewController(app.Params{
		Loader:   loader,
		Cart:     cartStore,
		Flow:     flow,
		Hub:      hub,
		Renderer: renderer,
		Closers:  []io.Closer{kv},
		Logger:   logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to build controller", err)
		os.Exit(1)
	}

	if cfg.Ops.Addr != "" {
		opsRouter := ops.NewRouter(logg, registry, func() ops.State {
			snapshot := cartStore.Snapshot()
			return ops.State{
				CatalogLoaded: controller.Loaded(),
				CatalogSize:   controller.CatalogSize(),
				Stage:         flow.Stage().String(),
				Cart: ops.CartState{
					Lines:     len(snapshot.Lines),
					ItemCount: snapshot.ItemCount,
					Total:     snapshot.FormattedTotal(),
				},
			}
		})
		go func() {
			logg.Info(logg.WithField(ctx, "addr", cfg.Ops.Addr), "starting ops listener")
			if err := http.ListenAndServe(cfg.Ops.Addr, opsRouter); err != nil && err != http.ErrServerClosed {
				logg.Error(ctx, "ops listener stopped unexpectedly", err)
			}
		}()
	}

	// One-shot catalog load; a failure already surfaced as a toast and the
	// storefront stays interactive with an empty catalog.
	if err := controller.Init(ctx); err != nil {
		logg.Warn(ctx, "starting with an empty catalog")
	}

	runREPL(ctx, controller, os.Stdin, os.Stdout)

	if err := controller.Close(ctx); err != nil {
		logg.Error(ctx, "shutdown finished with errors", err)
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.KV, error) {
	switch cfg.Storage.ParsedBackend() {
	case enums.StorageSQLite:
		return storage.OpenSQLite(cfg.Storage.Path)
	case enums.StorageRedis:
		return storage.OpenRedis(ctx, cfg.Redis)
	default:
		return storage.OpenFile(cfg.Storage.Path)
	}
}
