package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/dsp-client/internal/constants"
)

// Common string constants used throughout the commands package.
const (
	Masked = "***"

	defaultYAMLIndent = 2
)

// Common static errors used throughout the commands package.
var (
	ErrUnknownConfigKey = errors.New("unknown configuration key")
	ErrUsernameRequired = errors.New("username is required")
	ErrVersionSingleIRI = errors.New("--version takes a single IRI")
)

// writeOutput renders v in the configured output format. table is used for
// the table format.
func writeOutput(w io.Writer, v interface{}, table func(io.Writer) error) error {
	switch strings.ToLower(viper.GetString("output")) {
	case constants.FormatJSON:
		return encodeJSON(w, v)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(defaultYAMLIndent)

		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}

		return encoder.Close()
	case constants.FormatTable, "":
		return table(w)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, viper.GetString("output"))
	}
}

func valueOrNA(s string) string {
	if s == "" {
		return constants.NotAvailable
	}

	return s
}

func truncate(s string) string {
	if len(s) <= constants.StringTruncationLimit {
		return s
	}

	return s[:constants.StringTruncationLimit] + "..."
}
