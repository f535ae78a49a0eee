package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

func resetLoginFlags() {
	loginUsername = ""
}

func TestLoginCmd_Use(t *testing.T) {
	assert.Equal(t, "login", loginCmd.Use)
}

func TestLoginCmd_SignsIn(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetLoginFlags()

	sessionService = &fakeSessionService{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("segreta\n"))
	rootCmd.SetArgs([]string{"login", "-u", "geometra"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Signed in as geometra")
}

func TestLoginCmd_PromptsForUsername(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetLoginFlags()

	sessionService = &fakeSessionService{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("geometra\nsegreta\n"))
	rootCmd.SetArgs([]string{"login"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Username: ")
	assert.Contains(t, buf.String(), "Signed in as geometra")
}

func TestLoginCmd_InvalidCredentials(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetLoginFlags()

	sessionService = &fakeSessionService{loginErr: domain.ErrInvalidCredentials}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader("sbagliata\n"))
	rootCmd.SetArgs([]string{"login", "-u", "geometra"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid username or password")
}

func TestLogoutCmd_SignsOut(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	session := &fakeSessionService{session: domain.Session{Token: "tok", Identity: "geometra"}}
	sessionService = session

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"logout"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Signed out.")
	assert.True(t, session.Current().IsZero())
}

func TestWhoamiCmd_SignedIn(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"whoami"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "geometra")
}

func TestWhoamiCmd_LoggedOut(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	sessionService = &fakeSessionService{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"whoami"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Not signed in")
}
