package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/protocol"
)

var (
	accountProtocol string
	accountSettings []string
	accountDisabled bool
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage IM accounts",
	Long: `Lists, adds and removes the accounts parley logs in at startup.
Accounts are stored in ~/.parley/accounts.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAccounts(func(a *config.Accounts) error {
			return listAccounts(cmd.OutOrStdout(), a)
		})
	},
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAccounts(func(a *config.Accounts) error {
			return listAccounts(cmd.OutOrStdout(), a)
		})
	},
}

var accountsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an account",
	Example: `  parley accounts add work --protocol loopback
  parley accounts add home --protocol loopback --set nick=zed --set presence-interval=30s`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := newAccount(args[0], accountProtocol, accountSettings, accountDisabled)
		if err != nil {
			return err
		}
		return withAccounts(func(a *config.Accounts) error {
			return addAccount(cmd.OutOrStdout(), a, acc)
		})
	},
}

var accountsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAccounts(func(a *config.Accounts) error {
			return removeAccount(cmd.OutOrStdout(), os.Stdin, a, args[0], skipConfirm)
		})
	},
}

func init() {
	accountsAddCmd.Flags().StringVarP(&accountProtocol, "protocol", "p", "", "Protocol signature (required)")
	accountsAddCmd.Flags().StringArrayVar(&accountSettings, "set", nil, "Protocol setting as key=value (repeatable)")
	accountsAddCmd.Flags().BoolVar(&accountDisabled, "disabled", false, "Add the account without logging it in")
	accountsRemoveCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")

	accountsCmd.AddCommand(accountsListCmd, accountsAddCmd, accountsRemoveCmd)
	rootCmd.AddCommand(accountsCmd)
}

// withAccounts loads the accounts file and hands it to fn.
func withAccounts(fn func(*config.Accounts) error) error {
	accounts, err := config.LoadAccounts()
	if err != nil {
		return fmt.Errorf("error loading accounts: %w", err)
	}
	return fn(accounts)
}

// newAccount builds an account from command line values.
func newAccount(name, signature string, settings []string, disabled bool) (config.Account, error) {
	acc := config.Account{Name: name, Protocol: signature, Disabled: disabled}

	if signature == "" {
		return acc, fmt.Errorf("--protocol is required (available: %s)", strings.Join(protocol.Signatures(), ", "))
	}
	if !protocol.Registered(signature) {
		return acc, fmt.Errorf("unknown protocol %q (available: %s)", signature, strings.Join(protocol.Signatures(), ", "))
	}

	for _, kv := range settings {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return acc, fmt.Errorf("invalid setting %q, expected key=value", kv)
		}
		if acc.Settings == nil {
			acc.Settings = make(map[string]string)
		}
		acc.Settings[key] = value
	}
	return acc, nil
}

func listAccounts(out io.Writer, accounts *config.Accounts) error {
	all := accounts.All()
	if len(all) == 0 {
		fmt.Fprintln(out, "No accounts configured.")
		return nil
	}

	for _, acc := range all {
		line := fmt.Sprintf("%s (%s)", acc.Name, acc.Protocol)
		if acc.Disabled {
			line += " [disabled]"
		}
		fmt.Fprintln(out, line)

		keys := make([]string, 0, len(acc.Settings))
		for k := range acc.Settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "    %s = %s\n", k, acc.Settings[k])
		}
	}
	return nil
}

func addAccount(out io.Writer, accounts *config.Accounts, acc config.Account) error {
	if !accounts.Add(acc) {
		return fmt.Errorf("account %q already exists", acc.Name)
	}
	if err := accounts.Validate(); err != nil {
		return err
	}
	if err := accounts.Save(); err != nil {
		return fmt.Errorf("error saving accounts: %w", err)
	}
	fmt.Fprintf(out, "Added account %s (%s).\n", acc.Name, acc.Protocol)
	return nil
}

func removeAccount(out io.Writer, input io.Reader, accounts *config.Accounts, name string, yes bool) error {
	found := false
	for _, acc := range accounts.All() {
		if acc.Name == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("account %q not found", name)
	}

	if !yes && !confirm(out, input, fmt.Sprintf("Remove account %s?", name)) {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	accounts.Remove(name)
	if err := accounts.Save(); err != nil {
		return fmt.Errorf("error saving accounts: %w", err)
	}
	fmt.Fprintf(out, "Removed account %s.\n", name)
	return nil
}
