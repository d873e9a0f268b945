package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go-price-checker/internal/export"
	"go-price-checker/internal/importer"
	"go-price-checker/internal/model"
	"go-price-checker/internal/repository"
	"go-price-checker/internal/workbook"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const (
	fileFlag    = "file"
	sheetFlag   = "sheet"
	mappingFlag = "mapping"
	outFlag     = "out"
)

var previewFlags = map[string]cobraflags.Flag{
	fileFlag: &cobraflags.StringFlag{
		Name:  fileFlag,
		Value: "",
		Usage: "Spreadsheet to inspect (.xlsx, .xlsm, .xltx, .xltm or .csv)",
	},
}

var exportFlags = map[string]cobraflags.Flag{
	fileFlag: &cobraflags.StringFlag{
		Name:  fileFlag,
		Value: "",
		Usage: "Spreadsheet to import (.xlsx, .xlsm, .xltx, .xltm or .csv)",
	},
	sheetFlag: &cobraflags.StringFlag{
		Name:  sheetFlag,
		Value: "",
		Usage: "Sheet to import with --mapping. If empty, the sheet is detected automatically",
	},
	mappingFlag: &cobraflags.StringFlag{
		Name:  mappingFlag,
		Value: "",
		Usage: `Column mapping as JSON, e.g. {"barcode":0,"name":1,"price":2}`,
	},
	outFlag: &cobraflags.StringFlag{
		Name:  outFlag,
		Value: "products.csv",
		Usage: "Destination CSV file",
	},
}

func newPreviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show sheets, headers, sample rows and detected columns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd.OutOrStdout(), previewFlags[fileFlag].GetString())
		},
	}
	cobraflags.RegisterMap(cmd, previewFlags)
	return cmd
}

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Import a spreadsheet and write the catalog CSV",
		Long: `Run the import pipeline over a spreadsheet and write the resulting catalog
as the CSV consumed by SYNC_SOURCE=csv.

Without --sheet the first sheet whose headers resolve barcode, name and price is used.
With --sheet, --mapping must assign column indexes to at least barcode, name and price.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.OutOrStdout(), exportOptions{
				File:    exportFlags[fileFlag].GetString(),
				Sheet:   exportFlags[sheetFlag].GetString(),
				Mapping: exportFlags[mappingFlag].GetString(),
				Out:     exportFlags[outFlag].GetString(),
			})
		},
	}
	cobraflags.RegisterMap(cmd, exportFlags)
	return cmd
}

func openWorkbook(path string) (*model.Workbook, error) {
	if path == "" {
		return nil, errors.New("--file is required")
	}
	return workbook.Open(path, filepath.Base(path))
}

func runPreview(w io.Writer, path string) error {
	wb, err := openWorkbook(path)
	if err != nil {
		return err
	}

	preview := importer.InspectWorkbook(wb)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(preview)
}

type exportOptions struct {
	File    string
	Sheet   string
	Mapping string
	Out     string
}

func runExport(w io.Writer, opts exportOptions) error {
	wb, err := openWorkbook(opts.File)
	if err != nil {
		return err
	}

	store := repository.NewProductStore()
	pipeline := importer.NewPipeline(store)

	var result *model.ImportResult
	if opts.Sheet == "" {
		result, err = pipeline.ImportAutomatic(wb)
	} else {
		mapping, mapErr := model.ParseColumnMapping([]byte(opts.Mapping))
		if mapErr != nil {
			return fmt.Errorf("%w: %v", importer.ErrInvalidMapping, mapErr)
		}
		result, err = pipeline.ImportWithMapping(wb, opts.Sheet, mapping)
	}
	if err != nil {
		printErrors(w, result)
		return err
	}

	out, err := os.Create(opts.Out)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.Out, err)
	}
	if err := export.WriteCSV(out, store.FindAll()); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Imported %d of %d rows from sheet %q into %s\n",
		result.Successful, result.TotalRows, result.Sheet, opts.Out)
	printErrors(w, result)
	return nil
}

func printErrors(w io.Writer, result *model.ImportResult) {
	if result == nil {
		return
	}
	for _, msg := range result.Errors {
		fmt.Fprintln(w, "  "+msg)
	}
	if hidden := result.Failed - len(result.Errors); hidden > 0 {
		fmt.Fprintf(w, "  ... and %d more rejected rows\n", hidden)
	}
}
