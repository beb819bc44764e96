package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"sheettint/adapters/excel"
	"sheettint/adapters/postgres"
	"sheettint/app"
	"sheettint/domain/table"
)

func main() {
	// optional .env for database settings
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "sheettint",
		Short: "Colour-code percentile margins of numeric columns in spreadsheets",
	}

	rootCmd.AddCommand(
		newColourizeCmd(),
		newSummaryCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newColourizeCmd() *cobra.Command {
	var (
		out          string
		instructions string
		columns      []string
		exclude      []string
		headerRows   int
		summary      bool
		autofit      bool
	)

	cmd := &cobra.Command{
		Use:   "colourize [input.xlsx|input.csv]",
		Short: "Colourize margin cells of a workbook or CSV file",
		Long: `Colourize the percentile margins of numeric columns.

The instruction string uses single-character keys, each followed by one
value: M/m upper/lower margin percent, C/c upper/lower colour (r or g),
p majority percent, s sections (u, l or b), o/O row/column write offset.

Example: sheettint colourize data.xlsx -i "M 5.0 m 10.0 C g c r p 10.0 s b o 1 O 0" -c mean -c missing -o out.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			writer, tables, err := openForColourize(input, headerRows)
			if err != nil {
				return err
			}
			defer writer.Close()

			modifier := app.NewModifier(writer)
			modifier.SetSheets(tables)

			if len(columns) > 0 {
				err = modifier.ColourizeColumns(cmd.Context(), parseColumnIDs(columns), instructions)
			} else {
				err = modifier.ColourizeAll(cmd.Context(), instructions, parseColumnIDs(exclude))
			}
			if err != nil {
				return err
			}

			if summary {
				if err := app.NewSummarizer(writer).Summarize(tables); err != nil {
					return err
				}
			}
			if autofit {
				if err := modifier.AutofitSheets(); err != nil {
					return err
				}
			}

			if out == "" {
				out = defaultOutput(input)
			}
			if err := writer.SaveAs(out); err != nil {
				return err
			}
			fmt.Printf("Colourized workbook written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output workbook path (default: <input>-colourized.xlsx)")
	cmd.Flags().StringVarP(&instructions, "instructions", "i", "", "formatting instruction string (required)")
	cmd.Flags().StringArrayVarP(&columns, "column", "c", nil, "column to colourize; repeatable; levels of a composite name separated by /")
	cmd.Flags().StringArrayVarP(&exclude, "exclude", "x", nil, "column to skip when colourizing all; repeatable")
	cmd.Flags().IntVar(&headerRows, "header-rows", 1, "header depth of the input")
	cmd.Flags().BoolVar(&summary, "summary", false, "append a statistics sheet per input sheet")
	cmd.Flags().BoolVar(&autofit, "autofit", true, "autofit columns after colourizing")
	_ = cmd.MarkFlagRequired("instructions")

	return cmd
}

func newSummaryCmd() *cobra.Command {
	var (
		out        string
		headerRows int
	)

	cmd := &cobra.Command{
		Use:   "summary [input.xlsx|input.csv]",
		Short: "Append a descriptive-statistics sheet per input sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			writer, tables, err := openForColourize(input, headerRows)
			if err != nil {
				return err
			}
			defer writer.Close()

			if err := app.NewSummarizer(writer).Summarize(tables); err != nil {
				return err
			}

			if out == "" {
				out = defaultOutput(input)
			}
			if err := writer.SaveAs(out); err != nil {
				return err
			}
			fmt.Printf("Summary workbook written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output workbook path (default: <input>-colourized.xlsx)")
	cmd.Flags().IntVar(&headerRows, "header-rows", 1, "header depth of the input")

	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		out          string
		databaseURL  string
		query        string
		sheet        string
		instructions string
		summary      bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a SQL query result as a colourized workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				databaseURL = os.Getenv("DATABASE_URL")
			}
			if databaseURL == "" {
				return fmt.Errorf("database URL is required (flag --database-url or DATABASE_URL)")
			}

			db, err := sqlx.Connect("postgres", databaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			source := postgres.NewQuerySource(db, sheet, query)
			tables, err := source.Tables(cmd.Context())
			if err != nil {
				return err
			}

			writer := excel.NewEmptyWriter()
			defer writer.Close()

			depth := 0
			for name, tbl := range tables {
				if depth, err = excel.WriteTable(writer, name, tbl); err != nil {
					return err
				}
			}

			modifier := app.NewModifier(writer)
			modifier.SetSheets(tables)

			if instructions == "" {
				// data starts below the header row
				instructions = fmt.Sprintf("M 5.0 m 5.0 C g c r p 10.0 s b o %d O 0", depth)
			}
			if err := modifier.ColourizeAll(cmd.Context(), instructions, nil); err != nil {
				return err
			}
			if summary {
				if err := app.NewSummarizer(writer).Summarize(tables); err != nil {
					return err
				}
			}
			if err := modifier.AutofitSheets(); err != nil {
				return err
			}

			if err := writer.SaveAs(out); err != nil {
				return err
			}
			fmt.Printf("Exported workbook written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "export.xlsx", "output workbook path")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "postgres connection URL (default: DATABASE_URL)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "SQL query to export (required)")
	cmd.Flags().StringVar(&sheet, "sheet", "Query", "sheet name for the result set")
	cmd.Flags().StringVarP(&instructions, "instructions", "i", "", "formatting instruction string")
	cmd.Flags().BoolVar(&summary, "summary", false, "append a statistics sheet")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}

// openForColourize loads the input into tables and wraps the matching
// workbook for writing: xlsx input is colourized in place, CSV input is
// materialized into a fresh workbook first.
func openForColourize(input string, headerRows int) (*excel.Writer, map[string]*table.Table, error) {
	config := excel.ReaderConfig{HeaderRows: headerRows}

	if strings.EqualFold(filepath.Ext(input), ".csv") {
		file, err := os.Open(input)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer file.Close()
		return excel.MaterializeCSV(file, config)
	}

	f, err := excelize.OpenFile(input)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	tables, err := excel.TablesFromWorkbook(f, config)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return excel.NewWriter(f), tables, nil
}

func parseColumnIDs(names []string) []table.ColumnID {
	var ids []table.ColumnID
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.Contains(name, "/") {
			levels := strings.Split(name, "/")
			for i := range levels {
				levels[i] = strings.TrimSpace(levels[i])
			}
			ids = append(ids, table.Composite(levels...))
		} else {
			ids = append(ids, table.Simple(name))
		}
	}
	return ids
}

func defaultOutput(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "-colourized.xlsx"
}
