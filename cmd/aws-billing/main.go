package main

import (
	"fmt"
	"os"

	"github.com/diillson/aws-billing-dashboard-go/internal/adapter/driven/config"
	"github.com/diillson/aws-billing-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/aws-billing-dashboard-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-billing-dashboard-go/pkg/console"
	"github.com/diillson/aws-billing-dashboard-go/pkg/version"
)

func main() {
	app := cli.NewCLIApp(version.Version)

	configRepo := config.NewConfigRepository()
	exportRepo := export.NewExportRepository()
	consoleImpl := console.NewConsole()

	app.SetRepositories(configRepo, exportRepo, consoleImpl)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
