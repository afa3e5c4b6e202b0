package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/staffdesk/core/cmd/api/commands"
)

// @title StaffDesk API
// @version 1.0
// @description Employee, task and geographic reference administration backend

// @contact.name StaffDesk Support
// @contact.url https://github.com/staffdesk/core

// @license.name MIT
// @license.url https://github.com/staffdesk/core/blob/main/LICENSE

// @host localhost:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "staffdesk",
		Short: "StaffDesk API Server",
		Long:  `StaffDesk is an internal administration backend for employee directories, task tracking and geographic reference data.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
