// Command urbanista is the terminal client for the Urbanista regulatory
// assistant: territory browsing, scoped document uploads and scoped chat
// against the backend, from either one-shot commands or the full TUI.
package main

import (
	"fmt"
	"os"

	"github.com/civita-labs/urbanista-cli/internal/adapters/driven/api"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driven/config/file"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driven/storage/sqlite"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/cli"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driven"
	"github.com/civita-labs/urbanista-cli/internal/core/services"
	"github.com/civita-labs/urbanista-cli/internal/logger"
)

func main() {
	cli.SetServiceFactory(buildServices)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildServices wires adapters to core services. It runs from the root
// command's PersistentPreRunE, after flag parsing, so --server can steer
// the backend client.
func buildServices() (cli.Services, error) {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return cli.Services{}, fmt.Errorf("initialising config store: %w", err)
	}
	sessionRecord, err := file.NewSessionStore("")
	if err != nil {
		return cli.Services{}, fmt.Errorf("initialising session store: %w", err)
	}

	baseURL := cli.ServerURL()
	if baseURL == "" {
		baseURL = configStore.GetString("server.url")
	}
	client := api.NewClient(api.Config{
		BaseURL:           baseURL,
		RequestsPerSecond: float64(configStore.GetInt("server.requests_per_second")),
	})

	authAPI := api.NewAuthClient(client)
	chatAPI := api.NewChatClient(client)
	ingestionAPI := api.NewIngestionClient(client)
	hierarchySource := api.NewHierarchyClient(client, configStore.GetString("hierarchy.dataset_url"))

	// The territory cache is an optimisation; run without it rather
	// than refuse to start.
	var cache driven.TerritoryCache
	if store, cacheErr := sqlite.NewStore(""); cacheErr != nil {
		logger.Warn("territory cache unavailable, fetching live: %v", cacheErr)
	} else {
		cache = store
	}

	session := services.NewSessionStore(authAPI, sessionRecord)
	hierarchy := services.NewHierarchyIndex(hierarchySource, cache)
	broker := services.NewScopeBroker(hierarchy)
	selector := services.NewScopeSelector(hierarchy, broker)
	uploads := services.NewUploadCoordinator(broker, session, ingestionAPI)
	chat := services.NewChatSession(chatAPI, session)
	broker.Subscribe("chat", chat.FollowScope)

	return cli.Services{
		Session:   session,
		Hierarchy: hierarchy,
		Broker:    broker,
		Selector:  selector,
		Uploads:   uploads,
		Chat:      chat,
		Ingestion: ingestionAPI,
	}, nil
}
