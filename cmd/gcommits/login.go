package main

import (
	"fmt"
	"strings"

	"github.com/alimgiray/gcommits/internal/models"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var creds models.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store username and token in the OS keychain",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds.Username = strings.TrimSpace(creds.Username)
			creds.Token = strings.TrimSpace(creds.Token)
			if creds.Username == "" || creds.Token == "" {
				return fmt.Errorf("both --username and --token are required")
			}

			if err := a.credentials.Save(creds); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored credentials for %s\n", creds.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "platform username")
	cmd.Flags().StringVarP(&creds.Token, "token", "t", "", "personal access token")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.credentials.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Stored credentials removed")
			return nil
		},
	}
}
