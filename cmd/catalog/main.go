package main

import (
	"os"

	"go-price-checker/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	logger.Setup(os.Getenv("LOG_LEVEL"))

	root := &cobra.Command{
		Use:          "catalog",
		Short:        "Inspect and convert product spreadsheets",
		SilenceUsage: true,
	}
	root.AddCommand(newPreviewCommand())
	root.AddCommand(newExportCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
