package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fleetfin-dev/fleetfin/internal/costs"
	"github.com/fleetfin-dev/fleetfin/internal/importer"
)

func newImportCommand() *cobra.Command {
	var dir string
	var format string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Ingest collaborator feeds from the import directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}

			registry := importer.DefaultRegistry()
			parser := registry.Get(format)
			if parser == nil {
				return fmt.Errorf("unknown feed format %q", format)
			}

			files, err := importer.Scan(b.root)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("Nothing to import")
				return nil
			}

			for _, file := range files {
				f, err := os.Open(file.Path)
				if err != nil {
					return fmt.Errorf("opening %s: %w", file.Name, err)
				}
				batch, err := parser.Parse(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("parsing %s: %w", file.Name, err)
				}

				if len(batch.Costs) > 0 {
					if err := costs.AppendCostRecords(b.root, batch.Costs); err != nil {
						return err
					}
				}
				if len(batch.Revenues) > 0 {
					if err := costs.AppendRevenueRecords(b.root, batch.Revenues); err != nil {
						return err
					}
				}
				if err := importer.MarkProcessed(b.root, file.Name); err != nil {
					return err
				}

				b.audit("import", "", "", "", fmt.Sprintf("%s: %d costs, %d revenues",
					file.Name, len(batch.Costs), len(batch.Revenues)))
				fmt.Printf("Imported %s: %d costs, %d revenues\n",
					file.Name, len(batch.Costs), len(batch.Revenues))
			}

			b.autoCommit("import: " + format + " feeds")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "books directory")
	cmd.Flags().StringVar(&format, "format", "garage", "feed format (garage, missions)")
	return cmd
}
