package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arturbaldoramos/habitta-cli/internal/guard"
	"github.com/arturbaldoramos/habitta-cli/internal/session"
	"github.com/arturbaldoramos/habitta-cli/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage your portal session",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the Habitta portal",
	Long: `Log in to the Habitta portal with email and password.

When your account belongs to several condominiums, you will be asked to
pick the one this session should act in.

Examples:
  habitta auth login
  habitta auth login --email ana@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := a.requireAccess(guard.RequireAnonymous(), guard.LoginRoute); err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			email, err = tui.PromptForString(tui.Prompt{Message: "Email", Required: true})
			if err != nil {
				return err
			}
		}
		if password == "" {
			password, err = tui.PromptForPassword("Password")
			if err != nil {
				return err
			}
		}

		res, err := a.session.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}

		if res.PendingSelection() {
			tenantID, err := tui.SelectTenant(res.Candidates)
			if err != nil {
				return err
			}
			if _, err := a.session.LoginWithTenant(cmd.Context(), email, password, tenantID); err != nil {
				return err
			}
		}

		user := a.session.CurrentUser()
		fmt.Println(tui.SuccessStyle.Render("Logged in"))
		fmt.Printf("Welcome, %s\n", user.Name)
		if id, role, ok := a.session.ActiveTenant(); ok {
			fmt.Printf("Active condominium: %d (%s)\n", id, role)
		} else {
			fmt.Println(tui.MutedStyle.Render("No active condominium. Use 'habitta tenant list' to see yours."))
		}

		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		a.session.Logout()
		fmt.Println("Logged out.")
		return nil
	},
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create a new Habitta account.

Registration does not log you in and does not attach you to any
condominium; log in afterwards and accept an invite or create one.

Examples:
  habitta auth register --email ana@example.com --name "Ana Souza"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := a.requireAccess(guard.RequireAnonymous(), "/register"); err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		password, _ := cmd.Flags().GetString("password")
		phone, _ := cmd.Flags().GetString("phone")
		cpf, _ := cmd.Flags().GetString("cpf")

		if email == "" {
			email, err = tui.PromptForString(tui.Prompt{Message: "Email", Required: true})
			if err != nil {
				return err
			}
		}
		if name == "" {
			name, err = tui.PromptForString(tui.Prompt{Message: "Full name", Required: true})
			if err != nil {
				return err
			}
		}
		if password == "" {
			password, err = tui.PromptForPassword("Password")
			if err != nil {
				return err
			}
		}

		user, err := a.session.Register(cmd.Context(), session.RegisterRequest{
			Email:    email,
			Name:     name,
			Password: password,
			Phone:    phone,
			CPF:      cpf,
		})
		if err != nil {
			return err
		}

		fmt.Println(tui.SuccessStyle.Render("Account created"))
		fmt.Printf("Email: %s\n", user.Email)
		fmt.Println("Log in with 'habitta auth login'.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the session and tenant context",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		fmt.Println(tui.TitleStyle.Render("Session"))

		state := a.session.State()
		fmt.Printf("%s %s\n", tui.LabelStyle.Render("State:"), state)

		if !a.session.IsAuthenticated() {
			fmt.Println(tui.MutedStyle.Render("Use 'habitta auth login' to authenticate."))
			return nil
		}

		if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
			if _, err := a.session.RefreshUser(cmd.Context()); err != nil {
				return err
			}
		}

		user := a.session.CurrentUser()
		fmt.Printf("%s %s\n", tui.LabelStyle.Render("Email:"), user.Email)
		fmt.Printf("%s %s\n", tui.LabelStyle.Render("Name:"), user.Name)

		if id, role, ok := a.session.ActiveTenant(); ok {
			fmt.Printf("%s %d\n", tui.LabelStyle.Render("Condominium:"), id)
			fmt.Printf("%s %s\n", tui.LabelStyle.Render("Role:"), role)
		} else {
			fmt.Println(tui.MutedStyle.Render("No active condominium. Use 'habitta tenant switch <id>' after logging in."))
		}

		return nil
	},
}

func init() {
	authLoginCmd.Flags().String("email", "", "account email")
	authLoginCmd.Flags().String("password", "", "account password (prompted when omitted)")

	authRegisterCmd.Flags().String("email", "", "account email")
	authRegisterCmd.Flags().String("name", "", "full name")
	authRegisterCmd.Flags().String("password", "", "account password (prompted when omitted)")
	authRegisterCmd.Flags().String("phone", "", "phone number")
	authRegisterCmd.Flags().String("cpf", "", "CPF document number")

	authStatusCmd.Flags().Bool("refresh", false, "re-fetch the identity record from the portal")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
