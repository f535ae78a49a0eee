package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

// scopeFlags is the shared --regione/--provincia/--comune flag triple.
type scopeFlags struct {
	region       string
	province     string
	municipality string
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.region, "regione", "", "region to scope to")
	cmd.Flags().StringVar(&f.province, "provincia", "", "province to scope to")
	cmd.Flags().StringVar(&f.municipality, "comune", "", "comune to scope to")
}

func (f *scopeFlags) set() bool {
	return f.region != "" || f.province != "" || f.municipality != ""
}

// resolve turns the flag triple into a validated scope: the hierarchy is
// loaded on demand and inconsistent triples are rejected before any
// request goes out. Without flags the broker's canonical scope is used.
func (f *scopeFlags) resolve(ctx context.Context) (domain.Scope, error) {
	if !f.set() {
		if scopeBroker != nil {
			return scopeBroker.Current(), nil
		}
		return domain.NationalScope(), nil
	}

	if hierarchyService == nil {
		return domain.Scope{}, errors.New("hierarchy service not configured")
	}
	if err := hierarchyService.Load(ctx); err != nil {
		return domain.Scope{}, fmt.Errorf("loading territorial hierarchy: %w", err)
	}

	scope := domain.NewScope(f.region, f.province, f.municipality)

	// A bare comune is allowed on the command line: fill in its chain.
	if f.municipality != "" && (f.region == "" || f.province == "") {
		entry, ok := hierarchyService.FindMunicipality(f.municipality)
		if !ok {
			return domain.Scope{}, fmt.Errorf("unknown comune %q: %w", f.municipality, domain.ErrScopeInconsistent)
		}
		scope = domain.NewScope(entry.Region, entry.Province, entry.Municipality)
	}

	if err := hierarchyService.Validate(scope); err != nil {
		return domain.Scope{}, err
	}
	return scope, nil
}
