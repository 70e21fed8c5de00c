package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arturbaldoramos/habitta-cli/internal/guard"
	"github.com/arturbaldoramos/habitta-cli/internal/portal"
	"github.com/arturbaldoramos/habitta-cli/internal/tui"
)

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Manage your condominiums and the active tenant context",
}

var tenantListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the condominiums your account belongs to",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := a.requireAccess(guard.RequireAuth(), guard.TenantSelectionRoute); err != nil {
			return err
		}

		memberships, err := a.client.MyTenants(cmd.Context())
		if err != nil {
			return err
		}

		if len(memberships) == 0 {
			fmt.Println("You do not belong to any condominium yet.")
			fmt.Println(tui.MutedStyle.Render("Accept an invite or create one: habitta tenant create"))
			return nil
		}

		activeID, _, hasActive := a.session.ActiveTenant()

		fmt.Println(tui.TitleStyle.Render("Your condominiums"))
		for _, m := range memberships {
			name := fmt.Sprintf("tenant %d", m.TenantID)
			if m.Tenant != nil {
				name = m.Tenant.Name
			}
			marker := " "
			if hasActive && m.TenantID == activeID {
				marker = tui.SuccessStyle.Render("*")
			}
			fmt.Printf("%s %d  %s  (%s)\n", marker, m.TenantID, name, m.Role)
		}

		if !hasActive {
			fmt.Println(tui.MutedStyle.Render("Select one: habitta tenant switch <id>"))
		}

		return nil
	},
}

var tenantSwitchCmd = &cobra.Command{
	Use:   "switch <tenant-id>",
	Short: "Make a condominium the active tenant context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := a.requireAccess(guard.RequireAuth(), guard.TenantSelectionRoute); err != nil {
			return err
		}

		tenantID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid argument: tenant id must be a number")
		}

		if err := a.session.SwitchTenant(cmd.Context(), uint(tenantID)); err != nil {
			return err
		}

		_, role, _ := a.session.ActiveTenant()
		fmt.Println(tui.SuccessStyle.Render("Switched"))
		fmt.Printf("Active condominium: %d (%s)\n", tenantID, role)
		return nil
	},
}

var tenantCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new condominium",
	Long: `Create a new condominium. You become its association manager.

Only sessions without an active condominium may create one; switch out
or log in fresh first. Creating a condominium does not change the active
tenant context; run 'habitta tenant switch <id>' afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		orphanOnly := guard.Chain(guard.RequireAuth(), guard.RequireOrphan())
		if err := a.requireAccess(orphanOnly, "/tenants/create"); err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		cnpj, _ := cmd.Flags().GetString("cnpj")
		email, _ := cmd.Flags().GetString("email")
		phone, _ := cmd.Flags().GetString("phone")

		if name == "" {
			name, err = tui.PromptForString(tui.Prompt{Message: "Condominium name", Required: true})
			if err != nil {
				return err
			}
		}
		if cnpj == "" {
			cnpj, err = tui.PromptForString(tui.Prompt{Message: "CNPJ", Required: true})
			if err != nil {
				return err
			}
		}

		tenant, err := a.client.CreateTenant(cmd.Context(), portal.CreateTenantRequest{
			Name:  name,
			CNPJ:  cnpj,
			Email: email,
			Phone: phone,
		})
		if err != nil {
			return err
		}

		fmt.Println(tui.SuccessStyle.Render("Condominium created"))
		fmt.Printf("ID: %d\nName: %s\n", tenant.ID, tenant.Name)
		fmt.Println(tui.MutedStyle.Render(fmt.Sprintf("Activate it: habitta tenant switch %d", tenant.ID)))
		return nil
	},
}

func init() {
	tenantCreateCmd.Flags().String("name", "", "condominium name")
	tenantCreateCmd.Flags().String("cnpj", "", "CNPJ document number")
	tenantCreateCmd.Flags().String("email", "", "contact email")
	tenantCreateCmd.Flags().String("phone", "", "contact phone")

	tenantCmd.AddCommand(tenantListCmd)
	tenantCmd.AddCommand(tenantSwitchCmd)
	tenantCmd.AddCommand(tenantCreateCmd)
	rootCmd.AddCommand(tenantCmd)
}
