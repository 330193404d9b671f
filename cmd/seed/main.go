// Command seed loads a starter catalog into the products table.
package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product"
	productrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/product/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

//go:embed products.json
var defaultCatalog []byte

var (
	seedReset bool
	seedFile  string
)

var rootCmd = &cobra.Command{
	Use:           "seed",
	Short:         "Insert the starter product catalog",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSeed,
}

func init() {
	rootCmd.Flags().BoolVar(&seedReset, "reset", false, "Delete every existing product before inserting")
	rootCmd.Flags().StringVar(&seedFile, "file", "", "Read the catalog from this JSON file instead of the built-in one")
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	logCfg, err := utilities.ConfigFromEnv()
	if err != nil {
		return err
	}
	lg, err := utilities.Init(logCfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer lg.Sync()
	sugar := lg.Sugar()

	data := defaultCatalog
	if seedFile != "" {
		if data, err = os.ReadFile(seedFile); err != nil {
			return fmt.Errorf("read catalog: %w", err)
		}
	}
	// validate everything before touching the database
	inputs, err := product.DecodeSeed(data)
	if err != nil {
		return err
	}

	dbCfg, err := database.ConfigFromEnv()
	if err != nil {
		return err
	}
	sqlDB, err := database.Connect(dbCfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	repo := productrepo.NewProductRepo(sqlx.NewDb(sqlDB, "postgres"))
	if err := repo.EnsureTable(ctx); err != nil {
		return fmt.Errorf("ensure products table: %w", err)
	}
	if seedReset {
		n, err := repo.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("reset catalog: %w", err)
		}
		sugar.Infow("old products deleted", "count", n)
	}

	created, err := product.NewProductService(repo).Seed(ctx, inputs)
	if err != nil {
		return fmt.Errorf("after %d products: %w", len(created), err)
	}
	sugar.Infow("products inserted", "count", len(created))
	return nil
}
