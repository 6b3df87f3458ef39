package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the identity CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Account registration and bearer token service",
		Long: `identity finds or creates an account for a password and an email or
login, answers with a signed bearer token and serves the account profile
to holders of a valid token.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
