// README: Interactive calculator; loads a rate sheet, prices one job and optionally exports an invoice.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"tarif/internal/config"
	"tarif/internal/infra"
	"tarif/internal/modules/invoice"
	"tarif/internal/modules/pricing"
	"tarif/internal/modules/ratesheet"
	"tarif/internal/modules/routing"
	"tarif/internal/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := run(context.Background(), cfg, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

type options struct {
	File        string
	Location    string
	Minutes     float64
	DistanceKm  float64
	Night       bool
	Weekend     bool
	DiscountPct float64
	TaxPct      float64
	TravelMode  string
	FlatKm      float64
	Deliveries  int
	Origin      string
	Destination string
	Export      string
	Format      string
	Client      string
	Number      string

	set map[string]bool
}

func parseFlags(args []string, cfg config.Config, out io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("tarif", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&o.File, "file", "", "Rate sheet (.xlsx or .csv)")
	fs.StringVar(&o.Location, "location", "", "Location; omit for an interactive menu")
	fs.Float64Var(&o.Minutes, "minutes", 0, "Job duration in minutes")
	fs.Float64Var(&o.DistanceKm, "distance", 0, "Distance in km")
	fs.BoolVar(&o.Night, "night", false, "Night job")
	fs.BoolVar(&o.Weekend, "weekend", false, "Weekend job")
	fs.Float64Var(&o.DiscountPct, "discount", 0, "Requested discount %")
	fs.Float64Var(&o.TaxPct, "tax", cfg.DefaultTaxPct, "Tax rate %")
	fs.StringVar(&o.TravelMode, "travel-mode", string(pricing.TravelModeRateTable), "rate_table or flat_rate")
	fs.Float64Var(&o.FlatKm, "flat-km", 0, "Kilometres for the flat-rate tariff")
	fs.IntVar(&o.Deliveries, "deliveries", 1, "Deliveries for the flat-rate tariff")
	fs.StringVar(&o.Origin, "origin", "", "Route origin for a distance/time lookup")
	fs.StringVar(&o.Destination, "destination", "", "Route destination for a distance/time lookup")
	fs.StringVar(&o.Export, "export", "", "Write an invoice to this path")
	fs.StringVar(&o.Format, "format", "", "Invoice format: pdf or text (default from -export extension)")
	fs.StringVar(&o.Client, "client", "", "Invoice client name")
	fs.StringVar(&o.Number, "number", "", "Invoice number (generated when empty)")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.File == "" {
		return o, errors.New("-file is required")
	}
	o.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

func run(ctx context.Context, cfg config.Config, args []string, in io.Reader, out io.Writer) error {
	opts, err := parseFlags(args, cfg, out)
	if err != nil {
		return err
	}
	mode, err := pricing.ParseTravelMode(opts.TravelMode)
	if err != nil {
		return err
	}

	table, err := loadTable(ctx, opts.File)
	if err != nil {
		return err
	}
	p := newPrompter(in, out)
	interactive := opts.Location == ""

	rec, err := pickRecord(p, table, opts.Location)
	if err != nil {
		return err
	}

	var minutes, distance *float64
	if opts.set["minutes"] {
		minutes = &opts.Minutes
	}
	if opts.set["distance"] {
		distance = &opts.DistanceKm
	}
	if opts.Origin != "" && opts.Destination != "" {
		if est, ok := lookupRoute(ctx, cfg, opts.Origin, opts.Destination, out); ok {
			if minutes == nil {
				minutes = &est.Minutes
			}
			if distance == nil {
				distance = &est.DistanceKm
			}
		}
	}
	if minutes == nil {
		minutes = rec.DefaultMinutes
	}
	if distance == nil {
		distance = rec.DefaultDistanceKm
	}

	trip := pricing.TripInput{
		IsNight:              opts.Night,
		IsWeekend:            opts.Weekend,
		RequestedDiscountPct: opts.DiscountPct,
		TaxRatePct:           opts.TaxPct,
		TravelMode:           mode,
		FlatKm:               opts.FlatKm,
		DeliveryCount:        opts.Deliveries,
	}
	trip.Minutes, trip.DistanceKm = pricing.Prefill(rec, minutes, distance)
	if interactive {
		if err := askTrip(p, &trip, minutes, distance, opts.set); err != nil {
			return err
		}
	}

	engine := pricing.NewService(pricing.FlatRateTariff(cfg.FlatRate))
	q, _ := engine.Quote(&rec, trip)
	printResult(out, q, cfg.Invoice.Currency)

	if opts.Export == "" {
		return nil
	}
	return exportInvoice(cfg, opts, q, out)
}

func loadTable(ctx context.Context, path string) (*ratesheet.RateTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rate sheet: %w", err)
	}
	defer f.Close()

	svc := ratesheet.NewService(ratesheet.NewStore())
	t, err := svc.Load(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, errors.New("no locations found in rate sheet")
	}
	return t, nil
}

func pickRecord(p *prompter, t *ratesheet.RateTable, location string) (ratesheet.RateRecord, error) {
	if location != "" {
		rec, ok := t.Lookup(location)
		if !ok {
			return ratesheet.RateRecord{}, fmt.Errorf("%w: %q", ratesheet.ErrLocationNotFound, location)
		}
		return rec, nil
	}

	fmt.Fprintln(p.out, "\nChoose a location:")
	records := t.Records()
	for i, r := range records {
		label := r.Location
		if r.Zone != "" {
			label += " - " + r.Zone
		}
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, label)
	}
	n, err := p.choice("\nYour choice (number): ", len(records))
	if err != nil {
		return ratesheet.RateRecord{}, err
	}
	return records[n-1], nil
}

// askTrip prompts for every value not already given on the command line.
// Values given by flags are already in trip.
func askTrip(p *prompter, trip *pricing.TripInput, minutes, distance *float64, set map[string]bool) error {
	var err error
	if !set["minutes"] {
		if trip.Minutes, err = p.float("Minutes "+defaultHint(minutes)+": ", minutes, 0); err != nil {
			return err
		}
	}
	switch trip.TravelMode {
	case pricing.TravelModeFlatRate:
		if !set["flat-km"] {
			km := trip.FlatKm
			if trip.FlatKm, err = p.float("Flat-rate km "+defaultHint(&km)+": ", &km, 0); err != nil {
				return err
			}
		}
		if !set["deliveries"] {
			hint := fmt.Sprintf("Deliveries [Enter=%d]: ", trip.DeliveryCount)
			if trip.DeliveryCount, err = p.count(hint, trip.DeliveryCount); err != nil {
				return err
			}
		}
	default:
		if !set["distance"] {
			if trip.DistanceKm, err = p.float("Distance (km) "+defaultHint(distance)+": ", distance, 0); err != nil {
				return err
			}
		}
	}
	if !set["night"] {
		if trip.IsNight, err = p.yesNo("Night job? (y/n): "); err != nil {
			return err
		}
	}
	if !set["weekend"] {
		if trip.IsWeekend, err = p.yesNo("Weekend job? (y/n): "); err != nil {
			return err
		}
	}
	if !set["discount"] {
		zero := 0.0
		if trip.RequestedDiscountPct, err = p.float("Discount (%) [Enter=0]: ", &zero, 0); err != nil {
			return err
		}
	}
	if !set["tax"] {
		tax := trip.TaxRatePct
		if trip.TaxRatePct, err = p.float("Tax (%) "+defaultHint(&tax)+": ", &tax, 0); err != nil {
			return err
		}
	}
	return nil
}

func lookupRoute(ctx context.Context, cfg config.Config, origin, destination string, out io.Writer) (routing.Estimate, bool) {
	oracle, err := infra.NewRouteOracle(cfg.Routing, nil)
	if err != nil {
		fmt.Fprintf(out, "Route lookup unavailable: %v\n", err)
		return routing.Estimate{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	est, err := routing.NewService(oracle).Estimate(ctx, origin, destination)
	if err != nil {
		fmt.Fprintln(out, routing.Advisory(err))
		return routing.Estimate{}, false
	}
	fmt.Fprintf(out, "Route: %.2f km, %.0f min\n", est.DistanceKm, est.Minutes)
	return est, true
}

func printResult(out io.Writer, q pricing.QuoteResult, currency string) {
	m := func(v float64) types.Money { return types.NewMoney(v, currency) }
	fmt.Fprintln(out, "\n=== RESULT ===")
	fmt.Fprintf(out, "Location          : %s\n", q.Location)
	if q.TravelMode == pricing.TravelModeRateTable {
		fmt.Fprintf(out, "Distance          : %.2f km\n", q.DistanceKm)
	}
	fmt.Fprintf(out, "Duration          : %.0f min (billed %.2f h)\n", q.Minutes, q.BillableHours)
	fmt.Fprintf(out, "Labor             : %s\n", m(q.LaborSubtotal))
	fmt.Fprintf(out, "Travel            : %s\n", m(q.TravelSubtotal))
	fmt.Fprintf(out, "Surcharge         : %s\n", m(q.SurchargeAmount))
	fmt.Fprintf(out, "Subtotal          : %s\n", m(q.PreDiscountSubtotal))
	fmt.Fprintf(out, "Discount applied  : %.2f %% (-%s)\n", q.EffectiveDiscountPct, m(q.DiscountAmount))
	fmt.Fprintf(out, "Net total         : %s\n", m(q.NetTotal))
	fmt.Fprintf(out, "Tax (%g %%)        : %s\n", q.TaxRatePct, m(q.TaxAmount))
	fmt.Fprintf(out, "Gross total       : %s\n\n", m(q.GrossTotal))
}

func exportInvoice(cfg config.Config, opts options, q pricing.QuoteResult, out io.Writer) error {
	format := opts.Format
	if format == "" && filepath.Ext(opts.Export) == ".txt" {
		format = "text"
	}
	renderer, err := invoice.RendererFor(format)
	if err != nil {
		return err
	}

	doc := invoice.NewService(cfg.Invoice.Issuer, cfg.Invoice.Currency).Assemble(q, invoice.Metadata{
		ClientName:    opts.Client,
		InvoiceNumber: opts.Number,
	})

	f, err := os.Create(opts.Export)
	if err != nil {
		return fmt.Errorf("create invoice file: %w", err)
	}
	if err := renderer.Render(f, doc); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Invoice %s written to %s\n", doc.Number, opts.Export)
	return nil
}
