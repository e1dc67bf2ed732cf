// Package dsp provides types, interfaces, and helpers for working with the
// DSP (Knora) v2 resource API.
//
// # Overview
//
// The dsp package defines the resource and value models exchanged with the
// server (ReadResource, CreateResource, the ReadValue and CreateValue
// variants), the cached ontology definitions, the response envelope and the
// interfaces of the endpoint clients. A concrete implementation is provided
// by the dspclient package, which wires configuration, transport, the
// credential slot and the definition caches.
//
// # Getting a client
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
//	  cli, err := dspclient.New(ctx, &dsp.Config{Host: "0.0.0.0", Port: 3333})
//	  if err != nil { log.Fatal(err) }
//
//	  if _, err := cli.Auth().Login(ctx, "root", "test"); err != nil { log.Fatal(err) }
//
//	  res, err := cli.Resources().GetResource(ctx, "http://rdfh.ch/0001/H6gBWUuJSuuO-CilHV8kQw")
//	  if err != nil { log.Fatal(err) }
//	  log.Println(res.Label, res.ResourceClassLabel)
//	}
//
// # Values
//
// Property values are a closed set of types. Use a type switch or ValuesOf
// to access the payload:
//
//	for _, b := range dsp.ValuesOf[*dsp.ReadBooleanValue](res, prop) {
//	  fmt.Println(b.Bool)
//	}
//
// # Errors
//
// Every endpoint operation returns either its result or a *ResponseError
// carrying the HTTP status (StatusNetworkFailure for transport failures,
// StatusDecodeFailure for malformed bodies). Request models are checked
// before anything is sent; those failures are *ValidationError values.
// Use IsNotFound, IsUnauthorized, IsBadRequest and IsDecodeError to branch on
// the outcome.
//
// # Caching
//
// Class and list node definitions are cached for the lifetime of a client.
// Config.DefinitionCache adds a second level, either a bounded in-memory
// cache or a NATS JetStream key/value bucket shared between processes.
package dsp
