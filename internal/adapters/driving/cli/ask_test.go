package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

func resetAskFlags() {
	askScope = scopeFlags{}
}

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_RequiresExactlyOneArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAskCmd_PrintsAnswerWithSources(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetAskFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "indice di edificabilità?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "0,8 mc/mq")
	assert.Contains(t, buf.String(), "Fonti:")
	assert.Contains(t, buf.String(), "nta_tarquinia.pdf, pag. 12 [comunale]")
}

func TestAskCmd_ComuneFlagScopesQuestion(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetAskFlags()

	chat := &fakeChatService{}
	chatService = chat

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "distanze dai confini?", "--comune", "Tarquinia"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	// The bare comune resolves to its full chain before the send.
	expected := domain.NewScope("Lazio", "Viterbo", "Tarquinia")
	assert.True(t, expected.Equal(chat.Scope()))
}

func TestAskCmd_UnknownComuneRejected(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetAskFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "domanda", "--comune", "Atlantide"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrScopeInconsistent)
}

func TestAskCmd_AuthRequiredHint(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetAskFlags()

	chatService = &fakeChatService{sendErr: domain.ErrAuthRequired}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "domanda"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "urbanista login")
}
