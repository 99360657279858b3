package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/strapikit/graphql"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

func queryCmd() *cobra.Command {
	var (
		file    string
		vars    []string
		sel     string
		noAuth  bool
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "query [document]",
		Short: "Send a GraphQL query",
		Long: `Send a GraphQL query or mutation to the configured endpoint and print
the data field of the response.

The document is taken from the first argument or from --file. Variables are
given as key=value pairs; values that parse as JSON are sent as JSON.
When a session is stored its token is sent as a bearer credential.

Examples:
  strapikit query 'query { posts { data { id } } }'
  strapikit query --file posts.graphql --var limit=5
  strapikit query --file post.graphql --var slug=hello --select post.data.attributes.title`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := readDocument(args, file)
			if err != nil {
				return err
			}
			variables, err := parseVars(vars)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			k := newKit(cmd, cfg)

			opts, err := graphql.NewQuery(document, variables)
			if err != nil {
				return err
			}
			if !noAuth {
				if sess, err := readStoredSession(cmd.Context(), k); err == nil && sess.Token() != "" {
					opts = opts.WithBearer(sess.Token())
				}
			}

			data, err := k.Send(cmd.Context(), opts)
			if err != nil {
				if graphql.IsResponseError(err) {
					// Messages were already printed by the notifier.
					return errors.New("query returned errors")
				}
				return err
			}
			return printData(cmd, data, sel, compact)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the document from a file")
	cmd.Flags().StringArrayVar(&vars, "var", nil, "Variable as key=value (repeatable)")
	cmd.Flags().StringVarP(&sel, "select", "s", "", "Print only the value at this path (gjson syntax)")
	cmd.Flags().BoolVar(&noAuth, "no-auth", false, "Do not send the stored session token")
	cmd.Flags().BoolVar(&compact, "compact", false, "Print compact JSON")

	return cmd
}

func readDocument(args []string, file string) (string, error) {
	switch {
	case len(args) == 1 && file != "":
		return "", errors.New("pass the document as an argument or with --file, not both")
	case len(args) == 1:
		return args[0], nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", errors.New("no GraphQL document given")
	}
}

func parseVars(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, raw, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid variable %q, want key=value", p)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		out[key] = v
	}
	return out, nil
}

func printData(cmd *cobra.Command, data json.RawMessage, sel string, compact bool) error {
	out := cmd.OutOrStdout()
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	if sel != "" {
		res := gjson.GetBytes(data, sel)
		if !res.Exists() {
			return fmt.Errorf("path %q not found in response", sel)
		}
		if res.Type == gjson.String {
			_, err := fmt.Fprintln(out, res.Str)
			return err
		}
		data = json.RawMessage(res.Raw)
	}

	var buf bytes.Buffer
	var err error
	if compact {
		err = json.Compact(&buf, data)
	} else {
		err = json.Indent(&buf, data, "", "  ")
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, buf.String())
	return err
}
