package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dcode-github/hostel_listing_system/backend/config"
	"github.com/dcode-github/hostel_listing_system/backend/models"
	"github.com/dcode-github/hostel_listing_system/backend/repository"
	"github.com/dcode-github/hostel_listing_system/backend/utils"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	cmd.AddCommand(adminCreateCmd())
	return cmd
}

func adminCreateCmd() *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				fmt.Print("Username: ")
				reader := bufio.NewReader(os.Stdin)
				value, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				username = strings.TrimSpace(value)
			}
			if password == "" {
				fmt.Print("Password: ")
				bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Println()
				if err != nil {
					return err
				}
				password = strings.TrimSpace(string(bytes))
			}
			if username == "" || password == "" {
				return fmt.Errorf("username and password are required")
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger, err := config.NewLogger(cfg.Log.Level, cfg.Log.Format, "hostel-admin")
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			client, err := config.ConnectDB(ctx, cfg.Mongo.URI, logger)
			if err != nil {
				return err
			}
			defer config.CloseDBConnection(client, logger)

			hash, err := utils.HashPassword(password)
			if err != nil {
				return err
			}
			admins := repository.NewMongoAdminStore(config.InitCollections(client, cfg.Mongo.Database).Admins)
			if err := admins.Create(ctx, &models.Admin{Username: username, PasswordHash: hash}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin %s created.\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Admin username")
	cmd.Flags().StringVar(&password, "password", os.Getenv("ADMIN_PASSWORD"), "Admin password (prompted when empty)")
	return cmd
}
