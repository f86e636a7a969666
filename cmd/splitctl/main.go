// splitctl splits an expense from the command line and prints the result as JSON
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hxuan190/fairsplit/internal/domain"
	"github.com/hxuan190/fairsplit/internal/services/splitter"
)

const (
	red   = color.FgRed
	green = color.FgGreen
)

var (
	amount       float64
	currency     string
	participants []string
	useColor     bool
)

var rootCmd = &cobra.Command{
	Use:           "splitctl",
	Short:         "Split a shared expense between participants",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		color.NoColor = !useColor
	},
}

func splitCmd(method domain.SplitMethod, short, example string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     string(method),
		Short:   short,
		Example: example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseParticipants(participants, method)
			if err != nil {
				return err
			}
			return runSplit(cmd.OutOrStdout(), method, amount, parsed, currency)
		},
	}
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Amount to split")
	cmd.Flags().StringVarP(&currency, "currency", "c", splitter.DefaultCurrency, "Currency code")
	cmd.Flags().StringArrayVarP(&participants, "participant", "p", nil, "Participant as id:name[:value], repeatable")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("participant")
	return cmd
}

var currenciesCmd = &cobra.Command{
	Use:   "currencies",
	Short: "List the currency precision table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd.OutOrStdout(), splitter.Currencies())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&useColor, "color", true, "Colorize status output")

	rootCmd.AddCommand(
		splitCmd(domain.SplitMethodEqual, "Everyone pays the same share",
			"splitctl equal -a 100 -p a:Alice -p b:Bob -p c:Carol"),
		splitCmd(domain.SplitMethodWeighted, "Shares follow participant weights (default 1)",
			"splitctl weighted -a 100 -p a:Alice:3 -p b:Bob:2 -p c:Carol"),
		splitCmd(domain.SplitMethodPercentage, "Shares follow percentages summing to 100",
			"splitctl percentage -a 100 -c EUR -p a:Alice:60 -p b:Bob:40"),
		currenciesCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(red).Sprintf("error: %s", err))
		os.Exit(1)
	}
}

// runSplit prints the split envelope and reports a failed split as an error.
func runSplit(out io.Writer, method domain.SplitMethod, amount float64, participants []domain.Participant, currency string) error {
	result, err := splitter.Split(method, amount, participants, currency)
	if perr := printJSON(out, domain.NewSplitEnvelope(result, err)); perr != nil {
		return perr
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, color.New(green).Sprintf("split %s between %d participants", formatTotal(result), result.ParticipantCount))
	return nil
}

func formatTotal(result *domain.SplitResult) string {
	return strconv.FormatFloat(result.Total, 'f', splitter.CurrencyPrecision(result.Currency), 64) + " " + result.Currency
}

func printJSON(out io.Writer, v interface{}) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// parseParticipants turns id:name[:value] arguments into participants. The
// value is a weight for weighted splits and a percentage for percentage splits.
// Ids that parse as numbers become numeric ids.
func parseParticipants(args []string, method domain.SplitMethod) ([]domain.Participant, error) {
	out := make([]domain.Participant, 0, len(args))
	for _, arg := range args {
		parts := strings.Split(arg, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("participant %q: expected id:name[:value]", arg)
		}

		id, name := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		p := domain.Participant{Name: name, ID: domain.StringID(id)}
		if n, err := strconv.ParseFloat(id, 64); err == nil {
			p.ID = domain.NumericID(n)
		}

		if len(parts) == 3 {
			v, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
			if err != nil {
				return nil, fmt.Errorf("participant %q: invalid value: %w", arg, err)
			}
			switch method {
			case domain.SplitMethodWeighted:
				p.Weight = domain.Float64Ptr(v)
			case domain.SplitMethodPercentage:
				p.Percentage = domain.Float64Ptr(v)
			default:
				return nil, fmt.Errorf("participant %q: %s split takes no value", arg, method)
			}
		}
		out = append(out, p)
	}
	return out, nil
}
