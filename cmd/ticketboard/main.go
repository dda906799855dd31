package main

import (
	"fmt"
	"os"

	_ "ticketboard/docs"

	"github.com/spf13/cobra"
)

// @title           Ticketboard API
// @version         1.0
// @description     Multi-workspace ticket kanban with ordered status columns.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	rootCmd := &cobra.Command{
		Use:           "ticketboard",
		Short:         "Ticket kanban service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(notifyCmd())
	rootCmd.AddCommand(rebalanceCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
