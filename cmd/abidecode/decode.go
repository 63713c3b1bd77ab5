package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/branched-services/go-evmabi"
	"github.com/spf13/cobra"
)

var errUnresolved = errors.New("selector not registered")

func newCallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call <hex|->",
		Short: "Decode call data",
		Long:  "Decode hex call data, read from the argument or from stdin when it is -.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args[0], false)
			if err != nil {
				return err
			}

			call, err := a.decoder.DecodeCallHex(string(input))
			if err != nil {
				return fmt.Errorf("decode call: %w", err)
			}
			if call == nil {
				return errUnresolved
			}
			return writeJSON(cmd.OutOrStdout(), call)
		},
	}
}

func newLogsCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "logs <file|->",
		Short: "Decode a JSON array of event logs",
		Long: `Decode a JSON array of logs with data, topics and address fields, such as
the logs of an eth_getTransactionReceipt response. Logs that match no
registered event are left out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args[0], true)
			if err != nil {
				return err
			}

			decoder := a.decoder
			if strict {
				decoder = evmabi.NewDecoder(a.decoder.Registry(),
					evmabi.WithLogger(a.logger),
					evmabi.WithMaxDepth(a.flags.maxDepth),
					evmabi.WithStrictLogs(),
				)
			}

			logs, err := decoder.DecodeLogsJSON(input)
			if err != nil {
				return fmt.Errorf("decode logs: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), logs)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on the first malformed log instead of skipping it")
	return cmd
}

func newSelectorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selector <signature>",
		Short: "Print the selector and topic of a signature",
		Long:  `Print the 4-byte selector and 32-byte event topic of a canonical signature such as "transfer(address,uint256)".`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig := strings.TrimSpace(args[0])
			sel := evmabi.Selector(sig)
			return writeJSON(cmd.OutOrStdout(), map[string]string{
				"signature": sig,
				"selector":  evmabi.EncodeHex(sel[:]),
				"topic":     evmabi.Topic(sig).Hex(),
			})
		},
	}
}

// readInput returns arg itself, or the contents of stdin for "-". When
// isFile is set, any other arg is a path to read.
func readInput(cmd *cobra.Command, arg string, isFile bool) ([]byte, error) {
	switch {
	case arg == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	case isFile:
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return data, nil
	}
	return []byte(arg), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
