// Package cli provides the cobra command-line interface for Urbanista.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/civita-labs/urbanista-cli/internal/core/ports/driven"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
	"github.com/civita-labs/urbanista-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// SetVersion overrides the build version string.
func SetVersion(v string) {
	version = v
}

// Persistent flags.
var (
	verboseFlag bool
	serverFlag  string
)

// Injected services. Commands check for nil so the package stays testable
// without a full wiring.
var (
	sessionService   driving.SessionService
	hierarchyService driving.HierarchyService
	scopeBroker      driving.ScopeBroker
	scopeSelector    driving.ScopeSelector
	uploadService    driving.UploadService
	chatService      driving.ChatService
	ingestionAPI     driven.IngestionAPI
)

// Services bundles everything the commands need.
type Services struct {
	Session   driving.SessionService
	Hierarchy driving.HierarchyService
	Broker    driving.ScopeBroker
	Selector  driving.ScopeSelector
	Uploads   driving.UploadService
	Chat      driving.ChatService
	Ingestion driven.IngestionAPI
}

// SetServices injects the service implementations used by the commands.
func SetServices(s Services) {
	sessionService = s.Session
	hierarchyService = s.Hierarchy
	scopeBroker = s.Broker
	scopeSelector = s.Selector
	uploadService = s.Uploads
	chatService = s.Chat
	ingestionAPI = s.Ingestion
}

// ServerURL returns the backend URL from the --server flag, empty when
// the user kept the default.
func ServerURL() string {
	return serverFlag
}

// serviceFactory builds the services once flags are parsed, so --server
// can influence the wiring. Direct SetServices wins over the factory.
var serviceFactory func() (Services, error)

// SetServiceFactory registers a deferred wiring function invoked before
// the first command runs.
func SetServiceFactory(f func() (Services, error)) {
	serviceFactory = f
}

var rootCmd = &cobra.Command{
	Use:   "urbanista",
	Short: "Assistant for Italian urban-planning regulation",
	Long: `Urbanista is a terminal client for a document-grounded assistant on
Italian urban-planning and building regulation.

Pick a territory (regione, provincia, comune), upload normative documents
into the matching level, and ask questions scoped to the selected
territory. The selected scope is shared across every surface: the
selector, the uploader, and the chat stay in sync.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		if sessionService == nil && serviceFactory != nil {
			services, err := serviceFactory()
			if err != nil {
				return err
			}
			SetServices(services)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "backend server URL (overrides config)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
