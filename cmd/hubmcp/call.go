package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// errToolFailed is returned when the envelope reports an error. The envelope
// itself has already been printed.
var errToolFailed = errors.New("tool call failed")

func callCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "call <tool> [json-arguments|-]",
		Short: "Invoke one tool against the hub and print the result",
		Long: `Invoke one tool against the hub and print the result envelope.

Arguments are a JSON object; "-" reads them from stdin. Omitted arguments
default to {}. The command exits non-zero when the result is an error.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			raw, err := readArguments(args[1:], cmd.InOrStdin())
			if err != nil {
				return err
			}

			tools, err := newToolBox(cfg, newLogger(cfg.Log, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			result := tools.Call(cmd.Context(), args[0], raw)

			out := cmd.OutOrStdout()
			if asJSON {
				envelope := struct {
					Content []string `json:"content"`
					IsError bool     `json:"isError"`
				}{result.Content, result.IsError}

				if err := json.NewEncoder(out).Encode(envelope); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, result.Text())
			}

			if result.IsError {
				return errToolFailed
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the envelope as JSON")

	return cmd
}

// readArguments returns the JSON arguments from the command line or stdin.
func readArguments(args []string, stdin io.Reader) (json.RawMessage, error) {
	if len(args) == 0 {
		return json.RawMessage("{}"), nil
	}

	data := []byte(args[0])
	if args[0] == "-" {
		var err error
		if data, err = io.ReadAll(stdin); err != nil {
			return nil, fmt.Errorf("read arguments: %w", err)
		}
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("arguments are not valid JSON")
	}

	return json.RawMessage(data), nil
}

