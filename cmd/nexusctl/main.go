package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/api"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/config"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/services"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/store"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/tokens"
)

// app bundles everything a command needs: the store's slices over the
// configured transport.
type app struct {
	store  *store.Store
	client *api.Client
	logger *zap.Logger
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := zap.NewDevelopment(zap.IncreaseLevel(zap.WarnLevel))
	if err != nil {
		return nil, err
	}

	tokenStore, err := tokens.NewFileStore(cfg.TokenFilePath)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(logger, tokenStore, api.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		OnAuthExpired: func() {
			fmt.Fprintln(os.Stderr, "session expired, run `nexusctl login` again")
		},
	})

	jobs := services.NewJobService(client, logger)
	applications := services.NewApplicationService(client, logger)

	return &app{
		store:  store.New(client, jobs, applications, logger),
		client: client,
		logger: logger,
	}, nil
}

func main() {
	a, err := newApp()
	if err != nil {
		log.Fatal(err)
	}

	rootCmd := &cobra.Command{
		Use:           "nexusctl",
		Short:         "Terminal client for the Nexus job board",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(loginCmd(a))
	rootCmd.AddCommand(logoutCmd(a))
	rootCmd.AddCommand(registerCmd(a))
	rootCmd.AddCommand(whoamiCmd(a))
	rootCmd.AddCommand(jobsCmd(a))
	rootCmd.AddCommand(applyCmd(a))
	rootCmd.AddCommand(applicationsCmd(a))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
