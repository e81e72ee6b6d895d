package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/models"
)

func loginCmd(a *app) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the job board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Auth.Login(cmd.Context(), models.LoginRequest{
				Username: username,
				Password: password,
			}); err != nil {
				return fmt.Errorf("%s", a.store.Auth.State().Error)
			}

			user := a.store.Auth.State().User
			fmt.Printf("logged in as %s (%s)\n", user.FullName, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "email or phone number")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Auth.Logout(cmd.Context()); err != nil {
				// Local tokens are cleared regardless.
				fmt.Println("logged out (server revocation failed)")
				return nil
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func registerCmd(a *app) *cobra.Command {
	var email, phone, password, firstName, lastName, role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.RegisterRequest{
				Email:       email,
				PhoneNumber: phone,
				Password:    password,
				FirstName:   firstName,
				LastName:    lastName,
				Role:        models.UserRole(role),
			}
			if err := a.store.Auth.Register(cmd.Context(), req); err != nil {
				return fmt.Errorf("%s", a.store.Auth.State().Error)
			}
			fmt.Println("registered; confirm your account, then log in")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&role, "role", string(models.RoleJobSeeker), "JOB_SEEKER or EMPLOYER")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")
	return cmd
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Auth.FetchCurrentUser(cmd.Context()); err != nil {
				return fmt.Errorf("%s", a.store.Auth.State().Error)
			}
			user := a.store.Auth.State().User
			fmt.Printf("%s <%s> role=%s\n", user.FullName, user.Email, user.Role)
			return nil
		},
	}
}
