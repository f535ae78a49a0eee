package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

var askScope scopeFlags

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one scoped question",
	Long: `Ask a single question about the regulation of a territory and print
the answer with its document citations.

Without scope flags the question uses the current shared scope.

Examples:
  urbanista ask "Quali sono le distanze minime dai confini?" --comune Tarquinia
  urbanista ask "Cosa dice il DPR 380?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askScope.register(askCmd)
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	scope, err := askScope.resolve(cmd.Context())
	if err != nil {
		return err
	}
	chatService.AdoptScope(scope)

	if err := chatService.Send(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			return errors.New("not signed in: run 'urbanista login' first")
		}
		return fmt.Errorf("ask failed: %w", err)
	}

	history := chatService.History()
	if len(history) == 0 {
		return errors.New("no answer received")
	}
	printAssistantMessage(cmd, history[len(history)-1])
	return nil
}

// printAssistantMessage renders one assistant answer with its citations.
func printAssistantMessage(cmd *cobra.Command, msg domain.ChatMessage) {
	cmd.Println(msg.Text)
	if len(msg.Sources) == 0 {
		return
	}
	cmd.Println()
	cmd.Println("Fonti:")
	for _, src := range msg.Sources {
		ref := fmt.Sprintf("  - %s", src.Filename)
		if src.Page > 0 {
			ref += fmt.Sprintf(", pag. %d", src.Page)
		}
		if src.Level != "" {
			ref += fmt.Sprintf(" [%s]", src.Level)
		}
		cmd.Println(ref)
	}
}
