package cli

import (
	"bufio"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

var chatScope scopeFlags

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive conversation with the assistant.

Each answer is grounded on the documents of the selected territory. Type
'exit' or 'quit' (or press Ctrl-D) to leave.

Examples:
  urbanista chat --comune Tarquinia
  urbanista chat`,
	RunE: runChat,
}

func init() {
	chatScope.register(chatCmd)
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}
	if sessionService == nil {
		return errors.New("session service not configured")
	}
	if sessionService.Current().IsZero() {
		return errors.New("not signed in: run 'urbanista login' first")
	}

	scope, err := chatScope.resolve(cmd.Context())
	if err != nil {
		return err
	}
	chatService.AdoptScope(scope)

	// Replay what the session already holds: the greeting, and the scope
	// acknowledgment when one was just appended.
	for _, msg := range chatService.History() {
		if msg.Role == domain.RoleAssistant {
			cmd.Printf("assistente> %s\n", msg.Text)
		}
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	for {
		cmd.Printf("\n%s> ", promptLabel(chatService.Scope()))

		line, err := reader.ReadString('\n')
		if err != nil {
			// EOF ends the session like an explicit exit.
			cmd.Println()
			return nil
		}
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			cmd.Println("Arrivederci!")
			return nil
		}

		before := len(chatService.History()) // user + assistant get appended past this point
		if err := chatService.Send(cmd.Context(), text); err != nil {
			if errors.Is(err, domain.ErrAuthRequired) {
				return errors.New("session expired: run 'urbanista login' again")
			}
			cmd.PrintErrf("errore: %v\n", err)
			continue
		}

		for _, msg := range chatService.History()[before:] {
			if msg.Role == domain.RoleAssistant {
				printAssistantMessage(cmd, msg)
			}
		}
	}
}

// promptLabel names the working scope in the prompt, comune first.
func promptLabel(scope domain.Scope) string {
	switch {
	case scope.Municipality != "":
		return scope.Municipality
	case scope.Province != "":
		return scope.Province
	case scope.Region != "":
		return scope.Region
	default:
		return "italia"
	}
}
