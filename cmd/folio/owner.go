package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/eringen/folio"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var (
	ownerName  string
	ownerEmail string
)

var ownerCmd = &cobra.Command{
	Use:   "owner",
	Short: "Manage owner accounts",
}

var ownerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an owner account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		password, err := promptPassword(cmd, "Password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword(cmd, "Repeat password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		svc, closeStore, err := openServices(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeStore()
		o, err := svc.Owners.Create(cmd.Context(), ownerName, ownerEmail, password)
		if err != nil {
			return err
		}
		cmd.Printf("created owner %d <%s>\n", o.ID, o.Email)
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		password, err := promptPassword(cmd, "Password: ")
		if err != nil {
			return err
		}
		svc, closeStore, err := openServices(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		o, err := svc.Owners.Authenticate(cmd.Context(), ownerEmail, password)
		if err != nil {
			return err
		}
		tok, exp, err := folio.NewTokenIssuer(cfg.SessionSecret, cfg.TokenTTL).Issue(o)
		if err != nil {
			return err
		}
		cmd.Println(tok)
		cmd.PrintErrf("expires %s\n", exp.Format("2006-01-02 15:04 MST"))
		return nil
	},
}

func init() {
	ownerAddCmd.Flags().StringVar(&ownerName, "name", "", "display name")
	ownerAddCmd.Flags().StringVar(&ownerEmail, "email", "", "login email")
	_ = ownerAddCmd.MarkFlagRequired("email")

	tokenCmd.Flags().StringVar(&ownerEmail, "email", "", "owner email")
	_ = tokenCmd.MarkFlagRequired("email")
}

func promptPassword(cmd *cobra.Command, prompt string) (string, error) {
	cmd.PrintErr(prompt)
	b, err := readPassword(int(os.Stdin.Fd()))
	cmd.PrintErrln()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimSpace(string(b))
	if pw == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	return pw, nil
}
