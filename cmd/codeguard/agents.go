package main

import (
	"fmt"

	"github.com/manu042k/CodeGaurd/internal/analyzer"
	"github.com/spf13/cobra"
)

func agentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List the available analyzers",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Available analyzers:")
			for _, id := range analyzer.AvailableIDs() {
				description, _ := analyzer.Describe(id)
				fmt.Printf("  %-16s %s\n", id, description)
			}
			fmt.Println("\nEnable a subset with: codeguard analyze --agents security,performance <path>")
		},
	}
}
