// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lab-console/internal/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored bearer credential",
	Long: `Auth stores and inspects the bearer token used for mutations. The
console does not sign in itself; paste a token issued by the backend.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a bearer token",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			fmt.Fprint(os.Stderr, "token: ")
			scanner := bufio.NewScanner(os.Stdin)
			if scanner.Scan() {
				token = strings.TrimSpace(scanner.Text())
			}
		}
		if token == "" {
			return fmt.Errorf("no token provided")
		}

		store := credentials()
		if err := store.Save(token); err != nil {
			return err
		}

		if claims := auth.ParseClaims(token); claims != nil {
			fmt.Printf("stored token for %s", claims.Identity())
			if claims.Admin() {
				fmt.Print(" (admin)")
			}
			fmt.Println()
		} else {
			fmt.Println("stored token (payload not decodable)")
		}
		return nil
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the identity behind the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		token := credentials().Token()
		if token == "" {
			return fmt.Errorf("no token stored: run auth login")
		}

		claims := auth.ParseClaims(token)
		if claims == nil {
			fmt.Println("token stored, payload not decodable")
			return nil
		}
		fmt.Printf("identity: %s\n", claims.Identity())
		fmt.Printf("admin:    %v\n", claims.Admin())
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := credentials().Clear(); err != nil {
			return err
		}
		fmt.Println("token removed")
		return nil
	},
}

func init() {
	authLoginCmd.Flags().String("token", "", "bearer token (prompted when omitted)")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authWhoamiCmd)
	authCmd.AddCommand(authLogoutCmd)

	rootCmd.AddCommand(authCmd)
}
