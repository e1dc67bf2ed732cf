package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/dsp-client/internal/constants"
	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
	"github.com/fivetwenty-io/dsp-client/pkg/dspclient"
)

// createClient builds a client from the CLI configuration. The session token
// is read from and written back to the configuration file.
func createClient(ctx context.Context) (dsp.Client, error) {
	config, err := clientConfig(viper.GetString("api"))
	if err != nil {
		return nil, err
	}

	return dspclient.New(ctx, config)
}

func clientConfig(endpoint string) (*dsp.Config, error) {
	if endpoint == "" {
		return nil, constants.ErrNoAPIConfigured
	}

	config, err := dspclient.ConfigFromEndpoint(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid API endpoint: %w", err)
	}

	config.Token = viper.GetString("token")
	config.TokenPersister = NewConfigPersister()
	config.HTTPTimeout = constants.DefaultHTTPTimeout

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = NewLogger(os.Stderr, hclog.Debug)
	} else {
		config.Logger = NewLogger(os.Stderr, hclog.Warn)
	}

	config.DefinitionCache = cacheConfig()

	return config, nil
}

// cacheConfig maps the cache section to a definition store. Without one the
// definitions are only kept for the lifetime of the process.
func cacheConfig() *dsp.CacheConfig {
	natsURL := viper.GetString("cache.nats_url")
	cacheType := dsp.CacheType(viper.GetString("cache.type"))

	if cacheType == "" && natsURL != "" {
		cacheType = dsp.CacheTypeNATS
	}

	switch cacheType {
	case "":
		return nil
	case dsp.CacheTypeNATS:
		bucket := viper.GetString("cache.bucket")
		if bucket == "" {
			bucket = constants.DefaultNATSBucket
		}

		return &dsp.CacheConfig{
			Type: dsp.CacheTypeNATS,
			NATS: &dsp.NATSKVConfig{
				URL:     natsURL,
				Bucket:  bucket,
				Timeout: constants.DefaultNATSTimeout,
				Name:    "dsp-cli",
			},
		}
	case dsp.CacheTypeMemory:
		return &dsp.CacheConfig{
			Type:   dsp.CacheTypeMemory,
			Memory: &dsp.MemoryCacheConfig{MaxSize: constants.DefaultCacheSize},
		}
	default:
		return &dsp.CacheConfig{Type: cacheType}
	}
}
