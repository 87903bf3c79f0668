package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeremiapane/foodcourt/database"
	"github.com/yeremiapane/foodcourt/database/seeders"
	"github.com/yeremiapane/foodcourt/services"
	"github.com/yeremiapane/foodcourt/utils"
)

// foodcourt migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := boot()
		if err != nil {
			return err
		}
		return database.Migrate(db)
	},
}

// foodcourt seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := boot()
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		if err := seeders.SeedCatalog(db); err != nil {
			return err
		}
		utils.InfoLogger.Println("Demo catalog seeded.")
		return nil
	},
}

// foodcourt create-admin <username>
var createAdminCmd = &cobra.Command{
	Use:   "create-admin <username>",
	Short: "Create a back-office account that can update orders and prices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := boot()
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimSpace(line)
		}

		user, err := services.NewAuthService(db).CreateAdmin(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Admin %q created (id %d)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().String("password", "", "password for the new account (prompted when empty)")
}
