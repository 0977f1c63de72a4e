package app

import (
	"context"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/minimart/checkout/data"
	"github.com/minimart/checkout/internal/cli"
	"github.com/minimart/checkout/internal/domain/catalog"
	"github.com/minimart/checkout/internal/domain/order"
	"github.com/minimart/checkout/internal/journal"
)

// Run loads the catalog, wires the services, and drives the interactive
// checkout session. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	ctx = zctx.Base(ctx, lg)

	var (
		cat *catalog.Catalog
		err error
	)
	if cfg.ProductsFile != "" {
		cat, err = catalog.Load(ctx, cfg.ProductsFile, cfg.PromotionsFile, nil)
	} else {
		cat, err = catalog.Build(
			strings.NewReader(data.Products),
			strings.NewReader(data.Promotions),
			nil,
		)
	}
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}
	lg.Info("catalog loaded", zap.Int("products", len(cat.Products())))

	var j *journal.Writer
	if cfg.ReceiptLog != "" {
		j, err = journal.Open(cfg.ReceiptLog)
		if err != nil {
			return errors.Wrap(err, "open receipt journal")
		}
		defer func() { _ = j.Close() }()
		lg.Info("receipt journal enabled", zap.String("path", cfg.ReceiptLog))
	}

	prompter := cli.NewPrompter(os.Stdin, os.Stdout)
	renderer := cli.NewRenderer(os.Stdout, cfg.StoreName)
	orders := order.NewService(cat, prompter)

	session := cli.NewSession(cat, orders, prompter, renderer, j)
	return session.Run(ctx)
}
