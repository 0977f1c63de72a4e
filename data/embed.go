// Package data provides the embedded default catalog feeds, used when no
// feed files are configured.
package data

import _ "embed"

// Products contains the default products feed.
//
//go:embed products.md
var Products string

// Promotions contains the default promotions feed.
//
//go:embed promotions.md
var Promotions string
