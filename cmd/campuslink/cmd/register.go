package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campuslink/campuslink/internal/adapter/outbound/authgw"
)

var (
	registerPassword  string
	registerFirstName string
	registerLastName  string
)

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a new account",
	Long: `Create a new account on the auth service.

Registration does not sign you in; follow up with "campuslink login".`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "password (prompted when omitted)")
	registerCmd.Flags().StringVar(&registerFirstName, "first", "", "first name")
	registerCmd.Flags().StringVar(&registerLastName, "last", "", "last name")
	_ = registerCmd.MarkFlagRequired("first")
	_ = registerCmd.MarkFlagRequired("last")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	loginPassword = registerPassword
	password, err := resolvePassword()
	if err != nil {
		return err
	}

	identity, err := a.sessions.Register(ctx, authgw.RegisterRequest{
		Username:  args[0],
		Password:  password,
		FirstName: registerFirstName,
		LastName:  registerLastName,
	})
	switch {
	case errors.Is(err, authgw.ErrUsernameTaken):
		return fmt.Errorf("username %q is already taken", args[0])
	case errors.Is(err, authgw.ErrUnreachable):
		return fmt.Errorf("auth service unreachable at %s", a.cfg.Services.Auth)
	case err != nil:
		return err
	}

	fmt.Printf("Account created for %s. Sign in with: campuslink login %s\n",
		identity.DisplayName(), identity.Username)
	return nil
}
