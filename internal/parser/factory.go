package parser

import (
	"fmt"

	"lifehub/spending/internal/kookminparser"
	"lifehub/spending/internal/logging"
)

// Format identifies a supported bank-export layout.
type Format string

const (
	// Kookmin is the KB Kookmin card spreadsheet export.
	Kookmin Format = "kookmin"
)

// Get returns a parser for the given format. New bank layouts get their own
// package and a case here.
func Get(format Format, logger logging.Logger) (Parser, error) {
	switch format {
	case Kookmin:
		return kookminparser.New(logger), nil
	default:
		return nil, fmt.Errorf("unknown statement format: %s", format)
	}
}
