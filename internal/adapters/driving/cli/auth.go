package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the backend",
	Long: `Sign in with username and password.

The session is persisted under ~/.urbanista so later commands and the TUI
start already authenticated. The password is read from the terminal
without echo; it is never stored.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and purge the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	username := strings.TrimSpace(loginUsername)
	if username == "" {
		cmd.Print("Username: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return errors.New("username is required")
	}

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	session, err := sessionService.Login(cmd.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return errors.New("login failed: invalid username or password")
		case errors.Is(err, domain.ErrServiceUnavailable):
			return fmt.Errorf("login failed: backend unreachable: %w", err)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Printf("Signed in as %s\n", session.Identity)
	return nil
}

// readPassword prompts without echo when stdin is a terminal, and falls
// back to a plain line read otherwise (pipes, tests).
func readPassword(cmd *cobra.Command) (string, error) {
	cmd.Print("Password: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	if err := sessionService.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	cmd.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	session := sessionService.Current()
	if session.IsZero() {
		cmd.Println("Not signed in. Run 'urbanista login' first.")
		return nil
	}
	cmd.Printf("%s\n", session.Identity)
	return nil
}
