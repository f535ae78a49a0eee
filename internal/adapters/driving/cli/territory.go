package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var territoryCmd = &cobra.Command{
	Use:   "territory",
	Short: "Browse the territorial hierarchy",
	Long: `Browse the nazione → regione → provincia → comune hierarchy used to
scope uploads and questions.

Examples:
  urbanista territory regions
  urbanista territory provinces Lazio
  urbanista territory comuni Lazio Viterbo`,
}

var territoryRegionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List all regions",
	RunE:  runTerritoryRegions,
}

var territoryProvincesCmd = &cobra.Command{
	Use:   "provinces [region]",
	Short: "List the provinces of a region",
	Args:  cobra.ExactArgs(1),
	RunE:  runTerritoryProvinces,
}

var territoryComuniCmd = &cobra.Command{
	Use:   "comuni [region] [province]",
	Short: "List the comuni of a province",
	Args:  cobra.ExactArgs(2),
	RunE:  runTerritoryComuni,
}

func init() {
	territoryCmd.AddCommand(territoryRegionsCmd)
	territoryCmd.AddCommand(territoryProvincesCmd)
	territoryCmd.AddCommand(territoryComuniCmd)
	rootCmd.AddCommand(territoryCmd)
}

func loadHierarchy(cmd *cobra.Command) error {
	if hierarchyService == nil {
		return errors.New("hierarchy service not configured")
	}
	if err := hierarchyService.Load(cmd.Context()); err != nil {
		return fmt.Errorf("loading territorial hierarchy: %w", err)
	}
	return nil
}

func runTerritoryRegions(cmd *cobra.Command, _ []string) error {
	if err := loadHierarchy(cmd); err != nil {
		return err
	}
	for _, region := range hierarchyService.Regions() {
		cmd.Println(region)
	}
	return nil
}

func runTerritoryProvinces(cmd *cobra.Command, args []string) error {
	if err := loadHierarchy(cmd); err != nil {
		return err
	}
	provinces := hierarchyService.Provinces(args[0])
	if len(provinces) == 0 {
		return fmt.Errorf("unknown region %q", args[0])
	}
	for _, province := range provinces {
		cmd.Println(province)
	}
	return nil
}

func runTerritoryComuni(cmd *cobra.Command, args []string) error {
	if err := loadHierarchy(cmd); err != nil {
		return err
	}
	comuni := hierarchyService.Municipalities(args[0], args[1])
	if len(comuni) == 0 {
		return fmt.Errorf("no comuni under %s / %s", args[0], args[1])
	}
	for _, comune := range comuni {
		cmd.Println(comune)
	}
	return nil
}
