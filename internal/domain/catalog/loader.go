package catalog

import (
	"bufio"
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

// Load reads both catalog feeds concurrently and builds the catalog.
// Feeds ending in .gz are decompressed transparently.
func Load(ctx context.Context, productsPath, promotionsPath string, now func() time.Time) (*Catalog, error) {
	var (
		records    []Product
		promotions []Promotion
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readFeed(productsPath, func(r io.Reader) error {
			var err error
			records, err = ParseProducts(r)
			return err
		})
	})
	g.Go(func() error {
		return readFeed(promotionsPath, func(r io.Reader) error {
			var err error
			promotions, err = ParsePromotions(r)
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return New(records, promotions, now), nil
}

// Build parses both feeds from in-memory sources and builds the catalog.
func Build(productsFeed, promotionsFeed io.Reader, now func() time.Time) (*Catalog, error) {
	records, err := ParseProducts(productsFeed)
	if err != nil {
		return nil, err
	}
	promotions, err := ParsePromotions(promotionsFeed)
	if err != nil {
		return nil, err
	}
	return New(records, promotions, now), nil
}

// readFeed opens the file at path and calls parse with its contents,
// wrapping the reader in a gzip decompressor for .gz files.
func readFeed(path string, parse func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open feed %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return errors.Wrapf(err, "create gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	return parse(r)
}

// ParseProducts parses the products feed: a header line followed by
// name,price,quantity,promotion rows. A missing promotion column or the
// literal "null" means no promotion.
func ParseProducts(r io.Reader) ([]Product, error) {
	var records []Product

	err := scanRows(r, func(fields []string) error {
		if len(fields) < 3 {
			return errors.Errorf("expected at least 3 columns, got %d", len(fields))
		}

		price, err := parsePrice(fields[1])
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(fields[2])
		if err != nil {
			return errors.Wrapf(err, "parse quantity %q", fields[2])
		}
		if qty < 0 {
			return errors.Errorf("negative quantity %d", qty)
		}

		promotion := ""
		if len(fields) > 3 {
			promotion = fields[3]
			if strings.EqualFold(promotion, "null") {
				promotion = ""
			}
		}

		records = append(records, Product{
			Name:      fields[0],
			Price:     price,
			Quantity:  qty,
			Promotion: promotion,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "products feed")
	}

	return records, nil
}

// ParsePromotions parses the promotions feed: a header line followed by
// name,buy,get,start_date,end_date rows.
func ParsePromotions(r io.Reader) ([]Promotion, error) {
	var promotions []Promotion

	err := scanRows(r, func(fields []string) error {
		if len(fields) < 5 {
			return errors.Errorf("expected 5 columns, got %d", len(fields))
		}

		buy, err := strconv.Atoi(fields[1])
		if err != nil {
			return errors.Wrapf(err, "parse buy quantity %q", fields[1])
		}
		get, err := strconv.Atoi(fields[2])
		if err != nil {
			return errors.Wrapf(err, "parse get quantity %q", fields[2])
		}
		if buy <= 0 || get <= 0 {
			return errors.Errorf("buy and get quantities must be positive, got %d/%d", buy, get)
		}

		start, err := time.Parse(dateLayout, fields[3])
		if err != nil {
			return errors.Wrapf(err, "parse start date %q", fields[3])
		}
		end, err := time.Parse(dateLayout, fields[4])
		if err != nil {
			return errors.Wrapf(err, "parse end date %q", fields[4])
		}
		if end.Before(start) {
			return errors.Errorf("end date %s before start date %s", fields[4], fields[3])
		}

		promotions = append(promotions, Promotion{
			Name:      fields[0],
			Buy:       buy,
			Get:       get,
			StartDate: start,
			EndDate:   end,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "promotions feed")
	}

	return promotions, nil
}

// scanRows streams comma-delimited rows to fn, skipping the header line and
// blank lines. Fields are trimmed of surrounding whitespace.
func scanRows(r io.Reader, fn func(fields []string) error) error {
	scanner := bufio.NewScanner(r)
	header := true
	row := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		row++
		if header {
			header = false
			continue
		}
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if err := fn(fields); err != nil {
			return errors.Wrapf(err, "row %d", row)
		}
	}

	return errors.Wrap(scanner.Err(), "scan feed")
}

func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "parse price %q", s)
	}
	if price.IsNegative() {
		return decimal.Zero, errors.Errorf("negative price %s", s)
	}
	return price, nil
}
