// Package commands implements the blsct command line tool.
package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/internal/config"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
	"github.com/nav-io/libblsct-bindings/internal/metrics"
)

type rootOptions struct {
	configPath  string
	chain       string
	library     string
	showMetrics bool
}

func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Every invocation gets a fresh tree so
// tests can run commands side by side.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "blsct",
		Short:        "Keys, addresses, range proofs and transactions over libblsct",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.apply()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.showMetrics {
				printMetrics(cmd)
			}
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&opts.chain, "chain", "", "chain override (mainnet, testnet, signet, regtest)")
	root.PersistentFlags().StringVar(&opts.library, "library", "", "library override (native or soft)")
	root.PersistentFlags().BoolVar(&opts.showMetrics, "metrics", false, "print handle counters after the command")

	root.AddCommand(keygenCmd(), addressCmd(), rangeProofCmd(), txCmd())
	return root
}

func (o *rootOptions) apply() error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.chain != "" {
		c, err := ffi.ParseChain(strings.ToLower(o.chain))
		if err != nil {
			return err
		}
		cfg.Chain = c
	}
	if o.library != "" {
		cfg.Library = o.library
	}
	return blsct.Configure(cfg)
}

func printMetrics(cmd *cobra.Command) {
	families, err := metrics.Registry.Gather()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "gather metrics: %v\n", err)
		return
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(cmd.ErrOrStderr(), l)
	}
}
