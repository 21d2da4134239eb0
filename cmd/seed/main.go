// Seeds a fresh remote bin with the default storefront document and prints
// its id. Run once when provisioning a new environment, then put the id in
// REMOTE_BIN_ID.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/maktabat-alamal/storefront/internal/config"
	"github.com/maktabat-alamal/storefront/internal/models"
	"github.com/maktabat-alamal/storefront/internal/remote"
	"github.com/maktabat-alamal/storefront/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.Remote.APIKey == "" {
		logger.Fatalf("REMOTE_API_KEY is required to create a bin")
	}

	rc, err := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.BinID, cfg.Remote.APIKey, cfg.Remote.Timeout)
	if err != nil {
		logger.Fatalf("invalid remote store config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	doc := models.DefaultDocument()

	if cfg.Remote.BinID != "" {
		// existing bin: overwrite with defaults
		if err := rc.Replace(ctx, doc); err != nil {
			logger.Fatalf("seed existing bin: %v", err)
		}
		fmt.Println("seeded bin", cfg.Remote.BinID)
		return
	}
	if err := rc.Create(ctx, doc); err != nil {
		logger.Fatalf("create bin: %v", err)
	}
	fmt.Println("created and seeded a new bin; check the API dashboard for its id")
}
