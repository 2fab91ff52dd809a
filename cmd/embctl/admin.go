package main

import (
	"fmt"
	"slices"
	"strings"

	"emb-site/internal/domain/access"
	"emb-site/internal/domain/settings"
	"emb-site/internal/infra/pgstore"

	"github.com/spf13/cobra"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage dashboard administrators",
	}
	cmd.AddCommand(adminAddCmd())
	return cmd
}

func adminAddCmd() *cobra.Command {
	var (
		name     string
		password string
	)
	cmd := &cobra.Command{
		Use:   "add [email]",
		Short: "Allow-list an email, optionally with a password sign-in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			email := args[0]
			st := settings.NewService(pgstore.NewSettings(db))

			admins, err := st.Admins(ctx)
			if err != nil {
				return err
			}
			if slices.Contains(admins.Emails, strings.ToLower(email)) {
				fmt.Println(skipStyle.Render("already allow-listed"), email)
			} else {
				if err := st.SaveAdmins(ctx, append(admins.Emails, email)); err != nil {
					return err
				}
				fmt.Println(okStyle.Render("allow-listed"), email)
			}

			if password == "" {
				return nil
			}
			// SetPassword does not issue a session, so no guard is needed.
			signin := access.NewSignIn(nil, st, nil, pgstore.NewAccounts(db))
			if err := signin.SetPassword(ctx, email, name, password); err != nil {
				return err
			}
			fmt.Println(okStyle.Render("password set"), email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&password, "password", "", "Password for the password sign-in")
	return cmd
}
