package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var catalogFile string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the compensation catalog as YAML",
	Long: `Prints the compensation catalog in effect: the file named by --file or
catalog_path, or the built-in catalog. The output is a valid catalog file
and a starting point for customization.

Example:
  fieldview catalog > ~/.fieldview/catalog.yaml`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogFile, "file", "", "catalog file to validate and print (default from config)")
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	path := cfg.CatalogPath
	if catalogFile != "" {
		path = catalogFile
	}
	cat, err := loadCatalog(path)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cat)
}
