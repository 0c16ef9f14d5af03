package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pushcast/pushcast/internal/auth"
	"github.com/pushcast/pushcast/internal/db"
)

func init() { //nolint:gochecknoinits
	for _, c := range []*cobra.Command{userAddCmd, userPasswordCmd} {
		c.Flags().StringVar(&username, "username", "", "login name")
		c.Flags().StringVar(&password, "password", "", "password")
		_ = c.MarkFlagRequired("username")
		_ = c.MarkFlagRequired("password")
		userCmd.AddCommand(c)
	}

	rootCmd.AddCommand(userCmd)
}

var (
	username string //nolint:gochecknoglobals
	password string //nolint:gochecknoglobals

	userCmd = &cobra.Command{ //nolint:gochecknoglobals
		Use:   "user",
		Short: "Manage administrator accounts",
	}

	userAddCmd = &cobra.Command{ //nolint:gochecknoglobals
		Use:   "add",
		Short: "Create an administrator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			local, err := localProvider()
			if err != nil {
				return err
			}

			user, err := local.CreateUser(username, password, true)
			if errors.Is(err, auth.ErrUserExists) {
				return fmt.Errorf("%w, use \"user password\" to change it", err)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created administrator %q (id %d)\n", user.Username, user.ID)

			return err
		},
	}

	userPasswordCmd = &cobra.Command{ //nolint:gochecknoglobals
		Use:   "password",
		Short: "Reset the password of an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			local, err := localProvider()
			if err != nil {
				return err
			}

			if err = local.ResetPassword(username, password); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "password of %q changed\n", username)

			return err
		},
	}
)

func localProvider() (*auth.LocalProvider, error) {
	if err := loadConfig(); err != nil {
		return nil, err
	}

	gdb, err := db.Open(&cfg)
	if err != nil {
		return nil, err
	}

	return auth.NewLocalProvider(gdb), nil
}
