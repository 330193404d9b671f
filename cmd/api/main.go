package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/config"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/order"
	orderrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/order/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product"
	productrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/product/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/router"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/session"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/user"
	userrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/user/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// prices render as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// init logger
	logCfg, err := utilities.ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read log config: %v\n", err)
		os.Exit(1)
	}
	lg, err := utilities.Init(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting service-shop-go")

	appCfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("config: %v", err)
	}

	// init db
	dbCfg, err := database.ConfigFromEnv()
	if err != nil {
		sugar.Fatalf("db config: %v", err)
	}
	sqlDB, err := database.Connect(dbCfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	// wrap with sqlx for convenience in repos/services
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, err := wire(ctx, appCfg, sqlxDB, sugar)
	if err != nil {
		sugar.Fatalf("init: %v", err)
	}

	srv := &http.Server{
		Addr:              appCfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// run server in background
	go func() {
		sugar.Infow("http server listening", "addr", appCfg.HTTPAddr, "env", appCfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for in-flight requests
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}

// wire builds repositories, services and handlers, creating missing tables
// on the way.
func wire(ctx context.Context, cfg config.App, db *sqlx.DB, logger *zap.SugaredLogger) (http.Handler, error) {
	users := userrepo.NewUserRepo(db)
	products := productrepo.NewProductRepo(db)
	orders := orderrepo.NewOrderRepo(db)

	// orders references users, so it goes last
	tables := []struct {
		name   string
		ensure func(context.Context) error
	}{
		{"users", users.EnsureTable},
		{"products", products.EnsureTable},
		{"orders", orders.EnsureTable},
	}
	for _, t := range tables {
		if err := t.ensure(ctx); err != nil {
			return nil, fmt.Errorf("ensure %s table: %w", t.name, err)
		}
	}

	issuer := session.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	userSvc := user.NewUserService(users, user.BcryptHasher{Cost: 10}, issuer)
	productSvc := product.NewProductService(products)
	checkoutSvc := order.NewCheckoutService(productSvc, orders, logger)

	return router.RegisterRoutes(logger, issuer, router.Handlers{
		User:    user.NewHandler(userSvc, session.PolicyFor(cfg.Production()), logger),
		Product: product.NewHandler(productSvc, logger),
		Order:   order.NewHandler(checkoutSvc, logger),
	}, router.Options{
		FrontendURL: cfg.FrontendURL,
		BodyLimit:   cfg.BodyLimit,
		Node:        utilities.NewSnowflakeNode(cfg.NodeID),
	}), nil
}
