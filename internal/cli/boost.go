package cli

import (
	"fmt"

	"github.com/perfkit/boostd/internal/domain"
	"github.com/spf13/cobra"
)

func init() {
	boostCmd.Flags().IntVar(&boostDurationMs, "duration", 0, "Decay window in ms (overrides the policy default)")
	rootCmd.AddCommand(boostCmd)
}

var boostDurationMs int

var boostCmd = &cobra.Command{
	Use:   "boost <workload>",
	Short: "Request a performance boost for a workload",
	Long: `Send a classified workload event to the daemon, e.g.:

  boostd boost launch
  boostd boost game --duration 60000

The request is fire-and-forget: it is dropped silently when a window is
already open or no hint sink is reachable.`,
	Args: cobra.ExactArgs(1),
	RunE: runBoost,
}

func runBoost(cmd *cobra.Command, args []string) error {
	name := args[0]
	if _, ok := domain.ParseWorkload(name); !ok {
		// Print known names locally; the daemon would drop it silently.
		fmt.Printf("Unknown workload %q. Known workloads:\n", name)
		for _, w := range domain.AllWorkloads() {
			fmt.Printf("  %s\n", w)
		}
		return nil
	}

	body := map[string]interface{}{"workload": name}
	if cmd.Flags().Changed("duration") {
		body["duration_ms"] = boostDurationMs
	}
	if err := apiPost("/api/boost", body, nil); err != nil {
		return err
	}
	fmt.Printf("Requested boost for %s\n", name)
	return nil
}
