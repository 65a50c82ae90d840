package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/dataset"
	"sales-dashboard/internal/handlers"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
)

const exitNoData = 2

func dataFlags() []cli.Flag {
	def := dataset.DefaultLayout()
	return []cli.Flag{
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Value: "supermarkt_sales.xlsx", EnvVars: []string{"SALES_DATA_FILE"}, Usage: "workbook to read"},
		&cli.StringFlag{Name: "sheet", Value: def.Sheet, EnvVars: []string{"SALES_DATA_SHEET"}},
		&cli.IntFlag{Name: "header-row", Value: def.HeaderRow, EnvVars: []string{"SALES_DATA_HEADER_ROW"}},
		&cli.StringFlag{Name: "columns", Value: def.FirstColumn + ":" + def.LastColumn, EnvVars: []string{"SALES_DATA_COLUMNS"}},
		&cli.IntFlag{Name: "row-cap", Value: def.RowCap, EnvVars: []string{"SALES_DATA_ROW_CAP"}},
		&cli.StringSliceFlag{Name: "city", Usage: "keep only these cities (repeatable; pass \"\" to select none)"},
		&cli.StringSliceFlag{Name: "customer-type"},
		&cli.StringSliceFlag{Name: "gender"},
		&cli.StringFlag{Name: "start", Usage: "first day, YYYY-MM-DD"},
		&cli.StringFlag{Name: "end", Usage: "last day, YYYY-MM-DD"},
		&cli.StringFlag{Name: "log-level", Value: "warn", EnvVars: []string{"SALES_LOG_LEVEL"}},
	}
}

func summaryCommand() *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "print KPIs and breakdowns for a selection",
		Flags: append(dataFlags(),
			&cli.BoolFlag{Name: "json", Usage: "print the full view model as JSON"},
		),
		Action: func(c *cli.Context) error {
			analytics, sel, err := prepare(c)
			if err != nil {
				return err
			}

			vm := analytics.Render(c.Context, sel)
			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				if err := enc.Encode(vm); err != nil {
					return err
				}
			} else if !vm.Empty {
				if err := printSummary(c.App.Writer, vm); err != nil {
					return err
				}
			}

			if vm.Empty {
				return cli.Exit(vm.Notice, exitNoData)
			}
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write the filtered rows as CSV",
		Flags: append(dataFlags(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: services.ExportFilename, Usage: `output path, "-" for stdout`},
		),
		Action: func(c *cli.Context) error {
			analytics, sel, err := prepare(c)
			if err != nil {
				return err
			}
			return export(c.Context, c.App.Writer, analytics, sel, c.String("out"))
		},
	}
}

func export(ctx context.Context, stdout io.Writer, analytics *services.Analytics, sel models.Selection, out string) error {
	if len(services.Filter(analytics.Dataset(), sel)) == 0 {
		return cli.Exit(services.NoDataNotice, exitNoData)
	}

	if out == "-" {
		_, err := analytics.Export(ctx, stdout, sel)
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	n, err := analytics.Export(ctx, f, sel)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %d rows to %s\n", n, out)
	return nil
}

// prepare loads the workbook and resolves the selection flags against it.
func prepare(c *cli.Context) (*services.Analytics, models.Selection, error) {
	logger := observability.NewLoggerTo(c.App.ErrWriter, config.LoggerConfig{Level: c.String("log-level"), Format: "text"})

	first, last, err := dataset.ParseColumnRange(c.String("columns"))
	if err != nil {
		return nil, models.Selection{}, cli.Exit(err.Error(), 1)
	}
	layout := dataset.Layout{
		Sheet:       c.String("sheet"),
		HeaderRow:   c.Int("header-row"),
		FirstColumn: first,
		LastColumn:  last,
		RowCap:      c.Int("row-cap"),
	}

	ds, err := dataset.Load(c.Context, c.String("file"), layout)
	if err != nil {
		return nil, models.Selection{}, cli.Exit(err.Error(), 1)
	}
	analytics := services.NewAnalytics(ds, logger)

	in := handlers.SelectionInput{
		Cities:        sliceFlag(c, "city"),
		CustomerTypes: sliceFlag(c, "customer-type"),
		Genders:       sliceFlag(c, "gender"),
		Start:         c.String("start"),
		End:           c.String("end"),
	}
	sel, err := in.Resolve(analytics.Options())
	if err != nil {
		return nil, models.Selection{}, cli.Exit(err.Error(), 1)
	}
	return analytics, sel, nil
}

// sliceFlag returns nil when the flag was not given, so the selection falls
// back to every value, and drops blank entries otherwise.
func sliceFlag(c *cli.Context, name string) []string {
	if !c.IsSet(name) {
		return nil
	}
	out := []string{}
	for _, v := range c.StringSlice(name) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func printSummary(w io.Writer, vm models.ViewModel) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, kpi := range vm.KPIs {
		fmt.Fprintf(tw, "%s\t%s", kpi.Label, kpi.Value)
		if kpi.Extra != "" {
			fmt.Fprintf(tw, " %s", kpi.Extra)
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintf(tw, "Transactions\t%d\n", vm.RowCount)

	s := vm.Summary
	section := func(title string) { fmt.Fprintf(tw, "\n%s\t\n", title) }

	section("Sales by Product Line")
	for _, g := range s.SalesByProductLine {
		fmt.Fprintf(tw, "  %s\t%.2f\n", g.Key, g.Total)
	}
	section("Sales by City and Gender")
	for _, g := range s.SalesByCityGender {
		fmt.Fprintf(tw, "  %s / %s\t%.2f\n", g.City, g.Gender, g.Total)
	}
	section("Sales by Hour")
	for _, g := range s.SalesByHour {
		fmt.Fprintf(tw, "  %02d\t%.2f\n", g.Hour, g.Total)
	}
	section("Sales by Payment")
	for _, g := range s.SalesByPayment {
		fmt.Fprintf(tw, "  %s\t%.2f\n", g.Key, g.Total)
	}

	return tw.Flush()
}
