package cmd

import (
	"github.com/carousell/ct-go/pkg/logger/log"
	"github.com/spf13/cobra"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/app"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/server"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:           "dealhunt-aggregator",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		app.Invoke(
			server.StartServer,
			usecase.StartJanitor,
		).Run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
