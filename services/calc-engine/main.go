package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pacpro/pkg/core/calc"
	"pacpro/pkg/core/export"
	"pacpro/pkg/core/ingest"
	"pacpro/pkg/core/pac"
	"pacpro/pkg/core/projection"
	"pacpro/pkg/models"
)

func main() {
	mode := flag.String("mode", "calculate", "Mode: calculate, check or recalculate")
	dataStr := flag.String("data", "", "JSON data payload")
	file := flag.String("file", "", "Read the payload from a JSON, Hjson, .xlsx or .xls file")
	cashSign := flag.String("cash-sign", string(pac.CashAsExpense), "Cash +/- convention: expense or negated")
	out := flag.String("out", "", "Write the result to an .xlsx workbook instead of stdout")
	flag.Parse()

	sign, err := pac.ParseCashSign(*cashSign)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	switch *mode {
	case "calculate", "check":
		data, err := payload(*dataStr, *file)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		in, err := ingest.ParseInputRecord(data)
		if err != nil {
			fmt.Printf("Error parsing input record: %v\n", err)
			os.Exit(1)
		}
		result := pac.NewCalculator(pac.Options{CashSign: sign}).Calculate(in)
		if *mode == "check" {
			if !runChecks(result) {
				os.Exit(2)
			}
			return
		}
		err = emit(result, *out, func(e *export.Exporter) error {
			return e.WritePAC("cli", "", result)
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	case "recalculate":
		rows, err := readRows(*dataStr, *file)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		sheet, unknown := projection.SeedMergeReport(rows)
		for _, name := range unknown {
			fmt.Fprintf(os.Stderr, "[PROJECTION] Ignoring unknown line %q\n", name)
		}
		recalculated := projection.Recalculate(sheet)
		if check := projection.CheckSheet(recalculated); !check.IsBalanced {
			for _, w := range check.Warnings {
				fmt.Fprintf(os.Stderr, "[PROJECTION] Warning: %s\n", w)
			}
		}
		result := recalculated.Rows()
		err = emit(models.ProjectionSheet{Rows: result}, *out, func(e *export.Exporter) error {
			return e.WriteProjections(result)
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}

func payload(dataStr, file string) ([]byte, error) {
	if dataStr != "" {
		return []byte(dataStr), nil
	}
	if file == "" {
		return nil, fmt.Errorf("no data provided (use -data or -file)")
	}
	return os.ReadFile(file)
}

func readRows(dataStr, file string) ([]models.ProjectionRow, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".xlsx", ".xls":
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ingest.ReadWorkbookRows(file, f)
	}
	data, err := payload(dataStr, file)
	if err != nil {
		return nil, err
	}
	return ingest.ParseRows(data)
}

func runChecks(result models.CalculationResult) bool {
	check := calc.CheckTotals(result)
	if check.IsBalanced {
		fmt.Println("Success: Total Controllable = sum of lines, P.A.C. % + Total % = 100")
		return true
	}
	for _, w := range check.Warnings {
		fmt.Printf("Error: %s\n", w)
	}
	return false
}

func emit(v interface{}, out string, write func(*export.Exporter) error) error {
	if out == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	e, err := export.NewExporter()
	if err != nil {
		return err
	}
	defer e.Close()
	if err := write(e); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if _, err := e.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	fmt.Printf("Wrote %s\n", out)
	return f.Close()
}
