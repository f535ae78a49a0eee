package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driven"
)

// Ensure HierarchyClient implements the interface.
var _ driven.HierarchySource = (*HierarchyClient)(nil)

// DefaultDatasetURL is the published comuni reference dataset: every
// Italian comune with its province and region.
const DefaultDatasetURL = "https://raw.githubusercontent.com/matteocontrini/comuni-json/master/comuni.json"

// HierarchyClient fetches the static territorial reference dataset.
type HierarchyClient struct {
	client     *Client
	datasetURL string
}

// NewHierarchyClient creates a hierarchy adapter. An empty datasetURL
// selects the default published dataset.
func NewHierarchyClient(client *Client, datasetURL string) *HierarchyClient {
	if datasetURL == "" {
		datasetURL = DefaultDatasetURL
	}
	return &HierarchyClient{client: client, datasetURL: datasetURL}
}

// datasetEntry is one comune row of the published dataset.
type datasetEntry struct {
	Nome      string `json:"nome"`
	Codice    string `json:"codice"`
	Provincia struct {
		Nome string `json:"nome"`
	} `json:"provincia"`
	Sigla   string `json:"sigla"`
	Regione struct {
		Nome   string `json:"nome"`
		Codice string `json:"codice"`
	} `json:"regione"`
}

// Fetch downloads and decodes the complete dataset.
func (h *HierarchyClient) Fetch(ctx context.Context) ([]domain.Territory, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.datasetURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create dataset request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w: %v", domain.ErrHierarchyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dataset: %w (status %d)", domain.ErrHierarchyUnavailable, resp.StatusCode)
	}

	var entries []datasetEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("fetch dataset: %w: empty dataset", domain.ErrHierarchyUnavailable)
	}

	territories := make([]domain.Territory, 0, len(entries))
	for _, e := range entries {
		territories = append(territories, domain.Territory{
			Municipality:     e.Nome,
			MunicipalityCode: e.Codice,
			Province:         e.Provincia.Nome,
			ProvinceCode:     e.Sigla,
			Region:           e.Regione.Nome,
			RegionCode:       e.Regione.Codice,
		})
	}
	return territories, nil
}
