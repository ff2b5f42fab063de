package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pakkurthi/jobquest-client/internal/authz"
	"github.com/pakkurthi/jobquest-client/internal/domain"
)

var errSessionResolving = fmt.Errorf("session is still resolving, try again")

func errNotSignedIn(required authz.Capability) error {
	switch required {
	case authz.JobProvider:
		return fmt.Errorf("this command requires a signed-in job provider account")
	case authz.JobSeeker:
		return fmt.Errorf("this command requires a signed-in job seeker account")
	default:
		return fmt.Errorf("not signed in, run 'jobquest login' first")
	}
}

var (
	loginEmail    string
	loginPassword string

	registerEmail     string
	registerPassword  string
	registerFirstName string
	registerLastName  string
	registerRole      string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		identity, err := svc.Login(cmd.Context(), loginEmail, loginPassword)
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s %s (%s)\n", identity.FirstName, identity.LastName, identity.Role)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		identity, err := svc.Register(cmd.Context(), domain.SignUpRequest{
			Email:     registerEmail,
			Password:  registerPassword,
			FirstName: registerFirstName,
			LastName:  registerLastName,
			Role:      domain.Role(registerRole),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Registered %s as %s\n", identity.Email, identity.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the session and stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc.Logout(cmd.Context())
		fmt.Println("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := svc.Session()
		if snap.Resolving {
			return errSessionResolving
		}
		if !snap.Authenticated() {
			fmt.Println("Not signed in")
			return nil
		}
		id := snap.Identity
		fmt.Printf("%s %s <%s>\nRole: %s\n", id.FirstName, id.LastName, id.Email, id.Role)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "account password")
	registerCmd.Flags().StringVar(&registerFirstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&registerLastName, "last-name", "", "last name")
	registerCmd.Flags().StringVar(&registerRole, "role", string(domain.RoleJobSeeker),
		"account role, JOB_SEEKER or JOB_PROVIDER")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
}
