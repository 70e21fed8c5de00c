package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arturbaldoramos/habitta-cli/internal/guard"
	"github.com/arturbaldoramos/habitta-cli/internal/portal"
	"github.com/arturbaldoramos/habitta-cli/internal/session"
	"github.com/arturbaldoramos/habitta-cli/internal/tui"
)

var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Invite people into a condominium and handle received invites",
}

var inviteCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Invite an email address into the active condominium",
	Long: `Invite an email address into the active condominium.

Requires an association manager or admin role in the active condominium.

Examples:
  habitta invite create --email joao@example.com --role resident`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		managerOnly := guard.Chain(
			guard.RequireAuth(),
			guard.RequireTenant(),
			guard.RequireRole(session.RoleAdmin, session.RoleAssociationManager),
		)
		if err := a.requireAccess(managerOnly, "/invites"); err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		roleLabel, _ := cmd.Flags().GetString("role")

		if email == "" {
			email, err = tui.PromptForString(tui.Prompt{Message: "Email to invite", Required: true})
			if err != nil {
				return err
			}
		}

		role, ok := session.ParseRole(roleLabel)
		if !ok {
			return fmt.Errorf("invalid argument: role must be admin, association_manager, or resident")
		}

		invite, err := a.client.CreateInvite(cmd.Context(), portal.CreateInviteRequest{
			Email: email,
			Role:  role,
		})
		if err != nil {
			return err
		}

		fmt.Println(tui.SuccessStyle.Render("Invite sent"))
		fmt.Printf("Email: %s\nRole: %s\nToken: %s\nExpires: %s\n",
			invite.Email, invite.Role, invite.Token, invite.ExpiresAt.Format("2006-01-02"))
		return nil
	},
}

var inviteShowCmd = &cobra.Command{
	Use:   "show <token>",
	Short: "Look up an invite by its token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		invite, err := a.client.InviteByToken(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Println(tui.TitleStyle.Render("Invite"))
		if invite.Tenant != nil {
			fmt.Printf("%s %s\n", tui.LabelStyle.Render("Condominium:"), invite.Tenant.Name)
		}
		fmt.Printf("%s %s\n", tui.LabelStyle.Render("Email:"), invite.Email)
		fmt.Printf("%s %s\n", tui.LabelStyle.Render("Role:"), invite.Role)
		fmt.Printf("%s %s\n", tui.LabelStyle.Render("Status:"), invite.Status)
		fmt.Printf("%s %s\n", tui.LabelStyle.Render("Expires:"), invite.ExpiresAt.Format("2006-01-02"))
		return nil
	},
}

var inviteAcceptCmd = &cobra.Command{
	Use:   "accept <token>",
	Short: "Accept an invite",
	Long: `Accept an invite by its token.

New users are asked for a name and password; an account is created along
with the membership. Existing users just gain the membership.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		var req portal.AcceptInviteRequest
		if !a.session.IsAuthenticated() {
			fmt.Println("You need an account to accept this invite.")
			req.Name, err = tui.PromptForString(tui.Prompt{Message: "Full name", Required: true})
			if err != nil {
				return err
			}
			req.Password, err = tui.PromptForPassword("Password")
			if err != nil {
				return err
			}
		}

		user, err := a.client.AcceptInvite(cmd.Context(), args[0], req)
		if err != nil {
			return err
		}

		fmt.Println(tui.SuccessStyle.Render("Invite accepted"))
		fmt.Printf("Account: %s\n", user.Email)
		if !a.session.IsAuthenticated() {
			fmt.Println("Log in with 'habitta auth login'.")
		}
		return nil
	},
}

var inviteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending invites addressed to you",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := a.requireAccess(guard.RequireAuth(), "/invites/me"); err != nil {
			return err
		}

		invites, err := a.client.MyInvites(cmd.Context())
		if err != nil {
			return err
		}

		if len(invites) == 0 {
			fmt.Println("No pending invites.")
			return nil
		}

		fmt.Println(tui.TitleStyle.Render("Pending invites"))
		for _, inv := range invites {
			name := fmt.Sprintf("tenant %d", inv.TenantID)
			if inv.Tenant != nil {
				name = inv.Tenant.Name
			}
			fmt.Printf("%s  as %s  (expires %s)\n", name, inv.Role, inv.ExpiresAt.Format("2006-01-02"))
			fmt.Println(tui.MutedStyle.Render("  accept: habitta invite accept " + inv.Token))
		}
		return nil
	},
}

var inviteRevokeCmd = &cobra.Command{
	Use:   "revoke <invite-id>",
	Short: "Cancel a pending invite of the active condominium",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		managerOnly := guard.Chain(
			guard.RequireAuth(),
			guard.RequireTenant(),
			guard.RequireRole(session.RoleAdmin, session.RoleAssociationManager),
		)
		if err := a.requireAccess(managerOnly, "/invites"); err != nil {
			return err
		}

		inviteID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid argument: invite id must be a number")
		}

		if err := a.client.RevokeInvite(cmd.Context(), uint(inviteID)); err != nil {
			return err
		}

		fmt.Println("Invite cancelled.")
		return nil
	},
}

func init() {
	inviteCreateCmd.Flags().String("email", "", "email address to invite")
	inviteCreateCmd.Flags().String("role", "resident", "role to grant: admin, association_manager, resident")

	inviteCmd.AddCommand(inviteCreateCmd)
	inviteCmd.AddCommand(inviteShowCmd)
	inviteCmd.AddCommand(inviteAcceptCmd)
	inviteCmd.AddCommand(inviteListCmd)
	inviteCmd.AddCommand(inviteRevokeCmd)
	rootCmd.AddCommand(inviteCmd)
}
