// Package strapikit provides a high-level façade over the GraphQL client and
// the application state store of a Strapi-backed front end. Most
// applications interact with this package by:
//  1. Creating a Kit via New() (optionally overriding configuration, storage,
//     notifier and logger)
//  2. Sending queries with Query or Do against the configured endpoint
//  3. Reading and updating user, session and current-post state via State()
//
// The client and the store are independent; the Kit only wires them to the
// same configuration. Defaults are safe for local development and testing;
// production deployments typically supply durable storage and a structured
// logger.
package strapikit

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hupe1980/strapikit/config"
	"github.com/hupe1980/strapikit/core"
	"github.com/hupe1980/strapikit/graphql"
	"github.com/hupe1980/strapikit/logging"
	"github.com/hupe1980/strapikit/state"
	"github.com/hupe1980/strapikit/storage"
	"github.com/prometheus/client_golang/prometheus"
)

// Options configures the Kit instance.
type Options struct {
	// Config holds endpoints and timeouts (defaults to config.Default()).
	Config config.Config

	// Storage persists the session (defaults to an in-memory store).
	Storage core.Storage

	// Notifier surfaces GraphQL error messages (nil disables notifications).
	Notifier core.Notifier

	// HTTPClient performs requests (defaults to http.DefaultClient).
	HTTPClient *http.Client

	// Registerer receives the client metrics. Nil disables metrics.
	Registerer prometheus.Registerer

	// Registry holds the state slots (defaults to a fresh registry).
	Registry *state.Registry

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Kit is the high-level façade aggregating the GraphQL client and the state store.
type Kit struct {
	opts   Options
	client *graphql.Client
	state  *state.Store
}

// New creates a new Kit with optional overrides.
func New(optFns ...func(o *Options)) *Kit {
	opts := Options{
		Config:  config.Default(),
		Storage: storage.NewInMemoryStore(),
		Logger:  logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)

	var metrics *graphql.Metrics
	if opts.Registerer != nil {
		metrics = graphql.NewMetrics(graphql.WithRegistry(opts.Registerer))
	}

	client := graphql.NewClient(func(o *graphql.Options) {
		o.HTTPClient = opts.HTTPClient
		o.Timeout = opts.Config.Timeout
		o.Notifier = opts.Notifier
		o.Logger = opts.Logger
		o.Metrics = metrics
		o.UserAgent = "strapikit"
	})

	st := state.New(opts.Storage, func(o *state.Options) {
		o.Registry = opts.Registry
		o.Logger = opts.Logger
	})

	return &Kit{opts: opts, client: client, state: st}
}

// Config returns the configuration the Kit was built with.
func (k *Kit) Config() config.Config { return k.opts.Config }

// Client returns the underlying GraphQL client.
func (k *Kit) Client() *graphql.Client { return k.client }

// State returns the application state store.
func (k *Kit) State() *state.Store { return k.state }

// Send posts opts to the configured GraphQL endpoint.
func (k *Kit) Send(ctx context.Context, opts graphql.RequestOptions) (json.RawMessage, error) {
	return k.client.Send(ctx, k.opts.Config.GraphQLURL, opts)
}

// Query sends a GraphQL document with variables to the configured endpoint.
// When a session with a token is active the token is sent as a bearer
// credential.
func (k *Kit) Query(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	opts, err := k.queryOptions(query, variables)
	if err != nil {
		return nil, err
	}
	return k.Send(ctx, opts)
}

func (k *Kit) queryOptions(query string, variables map[string]any) (graphql.RequestOptions, error) {
	opts, err := graphql.NewQuery(query, variables)
	if err != nil {
		return opts, err
	}
	if sess := k.state.GetSession(); !sess.Pending {
		if token := sess.Data.Token(); token != "" {
			opts = opts.WithBearer(token)
		}
	}
	return opts, nil
}

// Do runs Query and decodes the data value into T.
func Do[T any](ctx context.Context, k *Kit, query string, variables map[string]any) (T, error) {
	opts, err := k.queryOptions(query, variables)
	if err != nil {
		var zero T
		return zero, err
	}
	return graphql.Do[T](ctx, k.client, k.opts.Config.GraphQLURL, opts)
}
