// Package dspclient provides the entry point for constructing a DSP resource
// API client that implements the dsp.Client interface.
//
// It wires the authenticated request layer, the session credential and the
// ontology and list node definition caches behind the interfaces defined in
// the dsp package.
//
// # Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/dsp-client/pkg/dsp"
//	  "github.com/fivetwenty-io/dsp-client/pkg/dspclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := dspclient.New(ctx, &dsp.Config{Host: "0.0.0.0", Port: 3333})
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  if _, err := cli.Auth().Login(ctx, "root", "test"); err != nil { log.Fatal(err) }
//
//	  res, err := cli.Resources().GetResource(ctx, "http://rdfh.ch/0001/H6gBWUuJSuuO-CilHV8kQw")
//	  if err != nil { log.Fatal(err) }
//	  log.Printf("%s is a %s", res.Label, res.ResourceClassLabel)
//	}
//
// # Definition caches
//
// Class and list node definitions are fetched at most once per connection.
// Set Config.DefinitionCache to share them between processes through a NATS
// JetStream key-value bucket:
//
//	cfg.DefinitionCache = &dsp.CacheConfig{
//	  Type: dsp.CacheTypeNATS,
//	  NATS: &dsp.NATSKVConfig{URL: "nats://localhost:4222", Bucket: "dsp-definitions"},
//	}
package dspclient
