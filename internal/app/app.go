// Package app wires configuration, storage, services and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mwd-interiors/quotedesk/internal/app/config"
	apphttp "mwd-interiors/quotedesk/internal/app/http"
	"mwd-interiors/quotedesk/internal/app/http/handlers"
	"mwd-interiors/quotedesk/internal/domain/catalog"
	"mwd-interiors/quotedesk/internal/domain/quote"
	"mwd-interiors/quotedesk/internal/domain/quote/document"
	"mwd-interiors/quotedesk/internal/domain/quote/document/excel"
	"mwd-interiors/quotedesk/internal/domain/quote/document/gofpdf"
	"mwd-interiors/quotedesk/internal/domain/quote/document/worddoc"
	"mwd-interiors/quotedesk/internal/infra/db/postgres"
	"mwd-interiors/quotedesk/internal/infra/store/local"
	"mwd-interiors/quotedesk/internal/service"
)

// App is a fully wired quotation desk.
type App struct {
	Handler http.Handler
	close   func()
}

func (a *App) Close() {
	if a.close != nil {
		a.close()
	}
}

// New opens the configured storage, seeds the catalog when asked and
// builds the router.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	policy, err := quote.ParsePercentPolicy(cfg.PercentPolicy)
	if err != nil {
		return nil, err
	}

	repos, closeStore, err := openStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if cfg.SeedDemoData {
		if err := service.SeedCatalog(ctx, repos, log); err != nil {
			closeStore()
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	generators := []document.Generator{
		gofpdf.New(cfg.PDFFontDir, log),
		worddoc.New(log),
		excel.New(log),
	}
	quotations := service.NewQuotationService(repos, quote.NewWorkspace(), service.QuotationOptions{
		Defaults: quote.Defaults{
			Company: quote.Company{
				Name:    cfg.CompanyName,
				Address: cfg.CompanyAddress,
				Phone:   cfg.CompanyPhone,
				Email:   cfg.CompanyEmail,
				Website: cfg.CompanyWebsite,
			},
			Terms:              cfg.DefaultTerms,
			InstallationCharge: cfg.DefaultInstallationCharge,
			TaxPercent:         cfg.DefaultTaxPercent,
		},
		NumberPrefix:  cfg.QuoteNumberPrefix,
		PercentPolicy: policy,
	}, generators, log)

	h := handlers.New(
		service.NewCatalogService[catalog.Customer, *catalog.Customer]("customer", repos.Customers, log),
		service.NewCatalogService[catalog.Product, *catalog.Product]("product", repos.Products, log),
		service.NewCatalogService[catalog.Salesperson, *catalog.Salesperson]("salesperson", repos.Salespeople, log),
		quotations,
		policy,
		log,
	)

	return &App{
		Handler: apphttp.NewRouter(cfg, h, log),
		close:   closeStore,
	}, nil
}

func openStorage(ctx context.Context, cfg config.Config, log *zap.Logger) (service.Repositories, func(), error) {
	switch cfg.StorageDriver {
	case "postgres":
		db, err := postgres.New(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return service.Repositories{}, nil, fmt.Errorf("db: %w", err)
		}
		if err := db.Migrate(ctx, "up"); err != nil {
			db.Close()
			return service.Repositories{}, nil, err
		}
		r := db.Repositories()
		log.Info("storage ready", zap.String("driver", "postgres"))
		return service.Repositories{
			Customers:   r.Customers,
			Products:    r.Products,
			Salespeople: r.Salespeople,
			Quotations:  r.Quotations,
		}, db.Close, nil
	case "file", "memory":
		path := cfg.StoragePath
		if cfg.StorageDriver == "memory" {
			path = ""
		}
		st, err := local.Open(path, log)
		if err != nil {
			return service.Repositories{}, nil, fmt.Errorf("store: %w", err)
		}
		log.Info("storage ready", zap.String("driver", cfg.StorageDriver), zap.String("path", path))
		return service.Repositories{
			Customers:   st.Customers,
			Products:    st.Products,
			Salespeople: st.Salespeople,
			Quotations:  st.Quotations,
		}, func() {}, nil
	default:
		return service.Repositories{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
func Run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	a, err := New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// Migrate runs a goose command against DATABASE_URL.
func Migrate(ctx context.Context, cfg config.Config, command string, log *zap.Logger) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	db, err := postgres.New(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer db.Close()
	return db.Migrate(ctx, command)
}
