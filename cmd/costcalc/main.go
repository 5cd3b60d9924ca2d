// Command costcalc evaluates a blueprint catalog against a price file once and
// prints unit costs and times without starting the HTTP service.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/BlueprintCost_Go/internal/catalog"
	"github.com/osse101/BlueprintCost_Go/internal/domain"
	"github.com/osse101/BlueprintCost_Go/internal/industry"
	"github.com/osse101/BlueprintCost_Go/internal/logger"
	"github.com/osse101/BlueprintCost_Go/internal/pricing"
	"github.com/osse101/BlueprintCost_Go/internal/validation"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "costcalc:", err)
		os.Exit(1)
	}
}

type options struct {
	catalogPath string
	pricesPath  string
	blueprintID int64
	limit       int
	asJSON      bool
	verbose     bool
	params      domain.RunParams
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("costcalc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.catalogPath, "catalog", "configs/blueprints.json", "blueprint catalog file")
	fs.StringVar(&opts.pricesPath, "prices", "configs/prices.json", "market price file")
	fs.Int64Var(&opts.blueprintID, "id", 0, "print the breakdown of one blueprint")
	fs.IntVar(&opts.limit, "limit", 0, "print at most this many rows (0 prints all)")
	fs.BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")
	fs.BoolVar(&opts.verbose, "v", false, "log loader and evaluation details to stderr")

	p := &opts.params
	fs.IntVar(&p.DefaultME, "me", 0, "material efficiency for blueprints without an override (0-100)")
	fs.IntVar(&p.DefaultTE, "te", 0, "time efficiency for blueprints without an override (0-100)")
	fs.Float64Var(&p.StructureBonus, "structure", 0, "structure time bonus percent")
	fs.Float64Var(&p.RigBonus, "rig", 0, "rig time bonus percent")
	fs.IntVar(&p.IndustryLevel, "industry", 0, "Industry skill level (0-5)")
	fs.IntVar(&p.AdvancedIndustryLevel, "advanced-industry", 0, "Advanced Industry skill level (0-5)")
	fs.Float64Var(&p.ReactionStructureBonus, "reaction-structure", 0, "reaction structure time bonus percent")
	fs.Float64Var(&p.ReactionRigBonus, "reaction-rig", 0, "reaction rig time bonus percent")
	fs.IntVar(&p.ReactionLevel, "reactions", 0, "Reactions skill level (0-5)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if opts.blueprintID != 0 {
		if _, ok := domain.TypeIDFromInt(opts.blueprintID); !ok {
			return nil, fmt.Errorf("-id %d is outside 1..%d", opts.blueprintID, domain.MaxTypeID)
		}
	}
	return opts, nil
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	logger.InitLoggerWithWriter(logger.CLIConfig("costcalc", opts.verbose), os.Stderr)

	catalogs, err := catalog.NewLoader(validation.NewSchemaValidator())
	if err != nil {
		return err
	}
	loaded, err := catalogs.Load(opts.catalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog %s: %w", opts.catalogPath, err)
	}
	data, err := os.ReadFile(opts.pricesPath)
	if err != nil {
		return fmt.Errorf("failed to read prices %s: %w", opts.pricesPath, err)
	}
	prices, err := pricing.Parse(data)
	if err != nil {
		return err
	}

	start := time.Now()
	report := industry.Evaluate(loaded.Catalog, nil, prices, opts.params)
	logger.Debug("Evaluation finished",
		logger.AttrKeyBlueprints, len(report.Results),
		"approximated", report.Approximated(),
		"conflicts", len(report.Conflicts),
		logger.AttrKeyDuration, time.Since(start))

	if opts.blueprintID != 0 {
		id, _ := domain.TypeIDFromInt(opts.blueprintID)
		return printBreakdown(stdout, report, id, opts.asJSON)
	}
	return printTable(stdout, report, opts.limit, opts.asJSON)
}

func printTable(w io.Writer, report *industry.Report, limit int, asJSON bool) error {
	rows := report.Sorted()
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	if asJSON {
		out := make([]resultRow, 0, len(rows))
		for _, res := range rows {
			out = append(out, newResultRow(res))
		}
		return writeJSON(w, out)
	}

	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "BLUEPRINT\tUNIT COST\tUNIT TIME (s)\tFLAGS\t")
	for _, res := range rows {
		fmt.Fprint(tw, p.Sprintf("%s\t%.2f\t%.1f\t%s\t\n", typeName(res.BlueprintID), res.UnitCost, res.UnitTime, res.Approximation))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := p.Fprintf(w, "\n%d blueprints, %d approximated, %d producer conflicts\n",
		len(report.Results), report.Approximated(), len(report.Conflicts))
	return err
}

func printBreakdown(w io.Writer, report *industry.Report, id domain.TypeID, asJSON bool) error {
	bd, ok := report.Explain(id)
	if !ok {
		return fmt.Errorf("%w: %d", domain.ErrBlueprintNotFound, id)
	}

	if asJSON {
		row := newResultRow(bd.Result)
		return writeJSON(w, breakdownDoc{Breakdown: bd, Exact: row.Exact, Flags: row.Flags})
	}

	p := message.NewPrinter(language.English)
	if _, err := p.Fprintf(w, "Blueprint %s (ME %d, TE %d)\n", typeName(id), bd.Efficiency.ME, bd.Efficiency.TE); err != nil {
		return err
	}
	if _, err := p.Fprintf(w, "Unit cost: %.2f ISK  Unit time: %.1f s  Output: %d  [%s]\n\n",
		bd.Result.UnitCost, bd.Result.UnitTime, bd.OutputQuantity, bd.Result.Approximation); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tQTY\tREQUIRED\tUNIT PRICE\tCOST\tSOURCE")
	for _, m := range bd.Materials {
		source := m.Source
		if m.ProducerID != 0 {
			source += " " + typeName(m.ProducerID)
		}
		fmt.Fprint(tw, p.Sprintf("%s\t%d\t%.2f\t%.2f\t%.2f\t%s\n",
			typeName(m.TypeID), m.NominalQuantity, m.RequiredQuantity, m.UnitPrice, m.Cost, source))
	}
	return tw.Flush()
}

// resultRow is the JSON form of a result, carrying its approximation flags
// the same way the HTTP API does
type resultRow struct {
	BlueprintID domain.TypeID `json:"blueprint_id"`
	UnitCost    float64       `json:"unit_cost"`
	UnitTime    float64       `json:"unit_time"`
	Exact       bool          `json:"exact"`
	Flags       []string      `json:"flags,omitempty"`
}

func newResultRow(res domain.Result) resultRow {
	row := resultRow{
		BlueprintID: res.BlueprintID,
		UnitCost:    res.UnitCost,
		UnitTime:    res.UnitTime,
		Exact:       res.Exact(),
	}
	if !row.Exact {
		row.Flags = res.Approximation.Strings()
	}
	return row
}

type breakdownDoc struct {
	*industry.Breakdown
	Exact bool     `json:"exact"`
	Flags []string `json:"flags,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// typeName keeps ids free of digit grouping
func typeName(id domain.TypeID) string {
	return strconv.FormatInt(int64(id), 10)
}
