// Package graphql sends GraphQL requests over HTTP and maps responses to a
// payload or a typed error.
//
// A request is always a POST; any method supplied in RequestOptions is
// ignored. The response body is decoded as {data, errors}. When the errors
// list is non-empty every message is passed to the configured core.Notifier
// (if any) in order and Send returns a *ResponseError. Transport, decode and
// notification failures are reported as *TransportError with Op set to
// "transport", "decode" or "notify". Callers that only want to know whether
// "errors" is present can use ErrorsOf.
//
//	c := graphql.NewClient(graphql.WithTimeout(10 * time.Second))
//	opts, _ := graphql.NewQuery(`query { posts { data { id } } }`, nil)
//	data, err := c.Send(ctx, cfg.GraphQLURL, opts)
package graphql
