package cli

import (
	"fmt"

	"github.com/dmitrijs2005/newsroom/internal/common"
	"github.com/spf13/cobra"
)

// promptEmail returns the --email flag value, prompting when it is empty.
func (a *App) promptEmail(email string) (string, error) {
	if email != "" {
		return email, nil
	}
	return getSimpleText(a.reader, "Enter email", a.out)
}

func (a *App) newRegisterCmd() *cobra.Command {
	var (
		email   string
		isAdmin bool
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := a.promptEmail(email)
			if err != nil {
				return err
			}
			password, err := getPassword(a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			// Granting admin needs an administrator's token; plain
			// registration is anonymous.
			var token string
			if isAdmin {
				if token, err = a.tokens.Load(); err != nil {
					return err
				}
			}

			u, err := a.api.Register(cmd.Context(), token, email, string(password), isAdmin)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintf(a.out, "Registered %s (id %d)\n", u.Email, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().BoolVar(&isAdmin, "admin", false, "grant administrator rights (requires an administrator login)")
	return cmd
}

func (a *App) newLoginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := a.promptEmail(email)
			if err != nil {
				return err
			}
			password, err := getPassword(a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			tok, err := a.api.Login(cmd.Context(), email, string(password))
			if err != nil {
				return explain(err)
			}
			if err := a.tokens.Save(tok.AccessToken); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Login successful, token valid for %ds\n", tok.ExpiresIn)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func (a *App) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.tokens.Remove(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func (a *App) newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.tokens.Load()
			if err != nil {
				return err
			}
			u, err := a.api.Me(cmd.Context(), token)
			if err != nil {
				return explain(err)
			}
			role := "user"
			if u.IsAdmin {
				role = "admin"
			}
			fmt.Fprintf(a.out, "%s (id %d, %s)\n", u.Email, u.ID, role)
			return nil
		},
	}
}
