package dsp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/fivetwenty-io/dsp-client/internal/constants"
)

// NATSKVConfig configures the NATS JetStream key/value cache.
type NATSKVConfig struct {
	// URL is the NATS server URL, e.g. "nats://127.0.0.1:4222".
	URL string
	// Bucket is the KV bucket name. Defaults to "dsp-definitions".
	Bucket string
	// Timeout bounds each KV operation. Defaults to five seconds.
	Timeout time.Duration
	// Name is the connection name reported to the server.
	Name string
}

// NATSKVCache stores cache entries in a JetStream KV bucket so that several
// processes can share resolved definitions.
type NATSKVCache struct {
	bucket  jetstream.KeyValue
	timeout time.Duration
	conn    *nats.Conn
}

// NewNATSKVCache connects to NATS and opens, creating if needed, the bucket.
func NewNATSKVCache(ctx context.Context, config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil {
		return nil, ErrNATSConfigRequired
	}

	if config.URL == "" {
		return nil, ErrNATSURLRequired
	}

	bucketName := config.Bucket
	if bucketName == "" {
		bucketName = constants.DefaultNATSBucket
	}

	opts := []nats.Option{}
	if config.Name != "" {
		opts = append(opts, nats.Name(config.Name))
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", config.URL, err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	bucket, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucketName,
		Description: "DSP class and list node definitions",
	})
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("opening KV bucket %s: %w", bucketName, err)
	}

	cache := NewNATSKVCacheFromBucket(bucket, config.Timeout)
	cache.conn = conn

	return cache, nil
}

// NewNATSKVCacheFromBucket wraps an already opened bucket. The caller keeps
// ownership of the underlying connection.
func NewNATSKVCacheFromBucket(bucket jetstream.KeyValue, timeout time.Duration) *NATSKVCache {
	if timeout <= 0 {
		timeout = constants.DefaultNATSTimeout
	}

	return &NATSKVCache{
		bucket:  bucket,
		timeout: timeout,
	}
}

// kvKey maps an IRI onto the KV key alphabet, which excludes ':' and '#'.
func kvKey(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

// Get retrieves an entry.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	kvEntry, err := c.bucket.Get(ctx, kvKey(key))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrCacheMiss
		}

		return nil, fmt.Errorf("kv get %s: %w", key, err)
	}

	var entry CacheEntry
	if err := json.Unmarshal(kvEntry.Value(), &entry); err != nil {
		return nil, fmt.Errorf("decoding kv entry %s: %w", key, err)
	}

	if entry.Expired(time.Now()) {
		_ = c.bucket.Delete(ctx, kvKey(key))

		return nil, ErrCacheEntryExpired
	}

	return &entry, nil
}

// Set stores an entry.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding kv entry %s: %w", key, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.bucket.Put(ctx, kvKey(key), data); err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}

	return nil
}

// Delete removes an entry.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.bucket.Delete(ctx, kvKey(key))
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}

	return nil
}

// Clear purges every key in the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	lister, err := c.bucket.ListKeys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("kv list keys: %w", err)
	}

	defer func() { _ = lister.Stop() }()

	for key := range lister.Keys() {
		if err := c.bucket.Purge(ctx, key); err != nil {
			return fmt.Errorf("kv purge %s: %w", key, err)
		}
	}

	return nil
}

// Has checks for a live entry.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close closes the connection if the cache opened it.
func (c *NATSKVCache) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}
