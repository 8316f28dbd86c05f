package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/devlink-labs/devlink/internal/auth"
	"github.com/devlink-labs/devlink/internal/clihome"
	"github.com/devlink-labs/devlink/internal/config"
)

var newAuthService = func() auth.Service {
	return auth.New(config.Get(config.KeyAuthURL), clihome.CredentialsPath(env.CLIHome))
}

var (
	loginUsername string
	loginPassword string
)

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Account name (prompted when omitted)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the identity service",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds := auth.Credentials{Username: loginUsername, Password: loginPassword}
		if err := promptCredentials(&creds); err != nil {
			return err
		}
		if err := newAuthService().Login(cmd.Context(), creds); err != nil {
			return err
		}
		log.Success("logged in", "user", creds.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := newAuthService().Logout(cmd.Context())
		if errors.Is(err, auth.ErrUnauthenticated) {
			log.Notice("not logged in")
			return nil
		}
		if err != nil {
			return err
		}
		log.Success("logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newAuthService().Whoami(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatProfile(p))
		return nil
	},
}

func formatProfile(p *auth.Profile) string {
	if p.User.Email == "" {
		return p.User.Username
	}
	return fmt.Sprintf("%s <%s>", p.User.Username, p.User.Email)
}

// promptCredentials asks for whichever of username and password is missing.
func promptCredentials(creds *auth.Credentials) error {
	var fields []huh.Field
	if creds.Username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&creds.Username).
			Validate(required("username")))
	}
	if creds.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.Password).
			Validate(required("password")))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func required(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
