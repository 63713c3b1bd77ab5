// Command abidecode decodes Ethereum call data and event logs against
// registered JSON ABI documents.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/branched-services/go-evmabi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type globalFlags struct {
	abis     []string
	verbose  bool
	maxDepth int
}

// app holds the state shared by subcommands once flags are parsed.
type app struct {
	flags   globalFlags
	logger  *zap.Logger
	decoder *evmabi.Decoder
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "abidecode",
		Short: "Decode EVM call data and logs",
		Long: `abidecode resolves call data and event logs against JSON ABI files.

ABIs are registered with --abi, either as a bare path or as id=path where
id is usually the contract address. Batch calls named multicall are
decoded recursively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringArrayVar(&a.flags.abis, "abi", nil, "ABI file to register, as path or id=path (repeatable)")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log resolution details to stderr")
	root.PersistentFlags().IntVar(&a.flags.maxDepth, "max-depth", evmabi.DefaultMaxDepth, "maximum nested batch depth (0 for no limit)")

	root.AddCommand(newCallCmd(a))
	root.AddCommand(newLogsCmd(a))
	root.AddCommand(newSelectorCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	level := zapcore.WarnLevel
	if a.flags.verbose {
		level = zapcore.DebugLevel
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(cmd.ErrOrStderr()), zap.NewAtomicLevelAt(level))
	a.logger = zap.New(core)

	reg := evmabi.NewRegistry(evmabi.WithRegistryLogger(a.logger))
	for _, arg := range a.flags.abis {
		if err := registerABI(reg, arg); err != nil {
			return err
		}
	}

	a.decoder = evmabi.NewDecoder(reg,
		evmabi.WithLogger(a.logger),
		evmabi.WithMaxDepth(a.flags.maxDepth),
	)
	return nil
}

// registerABI loads one --abi value. Without an id the document is
// registered under its content hash.
func registerABI(reg *evmabi.Registry, arg string) error {
	id, path, hasID := strings.Cut(arg, "=")
	if !hasID {
		path = arg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read abi: %w", err)
	}

	if !hasID {
		_, err = reg.AddAnonymousJSON(data)
	} else {
		err = reg.AddJSON(strings.ToLower(id), data)
	}
	if err != nil {
		return fmt.Errorf("load abi %s: %w", path, err)
	}
	return nil
}
