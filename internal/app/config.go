package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (STORE_ prefix), flags, or YAML config files.
type Config struct {
	StoreName      string `default:"W Mart" usage:"Store name shown in the banner and on receipts" flag:"store-name"`
	ProductsFile   string `default:"" usage:"Path to the products feed (.gz supported); empty uses the embedded catalog" flag:"products-file"`
	PromotionsFile string `default:"" usage:"Path to the promotions feed (.gz supported); empty uses the embedded catalog" flag:"promotions-file"`
	ReceiptLog     string `default:"" usage:"Path to the JSON Lines receipt journal; empty disables journaling" flag:"receipt-log"`
}

// LoadConfig loads configuration from environment variables, flags, and
// YAML config files.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "STORE",
		Files:     []string{"config.yaml", "/etc/checkout/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if (cfg.ProductsFile == "") != (cfg.PromotionsFile == "") {
		return nil, errors.New("products and promotions feeds must be configured together")
	}

	return &cfg, nil
}
