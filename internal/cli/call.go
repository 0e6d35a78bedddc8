package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eisbock/stockaid"
)

func newCallCmd(configPath *string) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "call <provider> <api> [param=value...]",
		Short: "Call a registered API and print the result as CSV",
		Example: `  stockaid call TDA quote symbol=MMM
  stockaid call TDA history symbol=MMM periodType=year period=20 frequencyType=daily
  stockaid call index sp500 --refresh`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[2:])
			if err != nil {
				return err
			}

			c, err := buildCache(*configPath)
			if err != nil {
				return err
			}

			tbl, err := c.Call(cmd.Context(), args[0], args[1], params, refresh)
			if errors.Is(err, stockaid.ErrNoData) {
				return fmt.Errorf("%s/%s returned no data", args[0], args[1])
			}
			if err != nil {
				return err
			}

			out, err := tbl.MarshalCSV()
			if err != nil {
				return err
			}
			cmd.Print(string(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results and refetch")
	return cmd
}

// parseParams turns param=value arguments into call parameters.
func parseParams(args []string) (stockaid.Params, error) {
	params := make(stockaid.Params, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid parameter %q, want param=value", arg)
		}
		params[k] = v
	}
	return params, nil
}

func newProvidersCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List registered providers and their APIs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := buildCache(*configPath)
			if err != nil {
				return err
			}
			for _, name := range c.Providers() {
				apis, err := c.APIs(name)
				if err != nil {
					return err
				}
				cmd.Printf("%s: %s\n", name, strings.Join(apis, ", "))
			}
			return nil
		},
	}
}
