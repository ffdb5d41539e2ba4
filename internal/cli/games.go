package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	gamesCmd.AddCommand(gamesAddCmd)
	gamesCmd.AddCommand(gamesListCmd)
	gamesCmd.AddCommand(gamesCheckCmd)
	rootCmd.AddCommand(gamesCmd)
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Manage the game package list",
}

var gamesAddCmd = &cobra.Command{
	Use:   "add <package>",
	Short: "Add a package to the game list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := apiPost("/api/games/", map[string]string{"package": args[0]}, nil); err != nil {
			return err
		}
		fmt.Printf("Added %s\n", args[0])
		return nil
	},
}

var gamesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered game packages",
	RunE: func(cmd *cobra.Command, args []string) error {
		var pkgs []string
		if err := apiGet("/api/games/", &pkgs); err != nil {
			return err
		}
		if len(pkgs) == 0 {
			fmt.Println("No game packages registered.")
			return nil
		}
		for _, p := range pkgs {
			fmt.Println(p)
		}
		return nil
	},
}

var gamesCheckCmd = &cobra.Command{
	Use:   "check <package>",
	Short: "Check whether a package is on the game list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var res map[string]bool
		if err := apiGet("/api/games/"+args[0], &res); err != nil {
			return err
		}
		if res["game"] {
			fmt.Printf("%s is on the game list\n", args[0])
		} else {
			fmt.Printf("%s is not on the game list\n", args[0])
		}
		return nil
	},
}
