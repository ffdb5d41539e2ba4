package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/perfkit/boostd/internal/domain"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(policyCmd)
}

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Show the workload policy table",
	RunE:  runPolicy,
}

func runPolicy(cmd *cobra.Command, args []string) error {
	var specs map[string]domain.HintSpec
	if err := apiGet("/api/policy", &specs); err != nil {
		return err
	}

	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKLOAD\tHINT\tKIND\tDEFAULT DURATION")
	for _, name := range names {
		spec := specs[name]
		fmt.Fprintf(w, "%s\t%d\t%s\t%dms\n", name, spec.Hint, spec.Kind, spec.DurationMs)
	}
	return w.Flush()
}
