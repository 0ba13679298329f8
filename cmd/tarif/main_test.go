package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tarif/internal/config"
	"tarif/internal/modules/ratesheet"
)

const rateCSV = "Ville;Distance;Temps (min);Tarif horaire;Forfait;Prix km;Durée minimale;Majoration nuit;Remise max\n" +
	"Paris;5;120;50;10;1;1;20;10\n" +
	"Lyon;;;45;8;0,9;2;15;5\n"

func testConfig() config.Config {
	var cfg config.Config
	cfg.DefaultTaxPct = 20
	cfg.FlatRate = config.FlatRateConfig{Base: 37, TierKm: 3, TierSurcharge: 3.10, ExtraDeliveryFee: 10}
	cfg.Invoice.Currency = "EUR"
	cfg.Routing = config.RoutingConfig{Provider: "haversine", SpeedKmh: 60, DetourFactor: 1}
	return cfg
}

func writeSheet(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tarifs.csv")
	if err := os.WriteFile(path, []byte(rateCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Flags(t *testing.T) {
	var out bytes.Buffer
	args := []string{"-file", writeSheet(t), "-location", "Paris", "-night", "-discount", "5"}

	if err := run(context.Background(), testConfig(), args, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"Location          : Paris", "Duration          : 120 min", "Gross total       : 153,90 EUR"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_Interactive(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("9\n2\nabc\n60\n10\ny\nn\n\n\n")

	if err := run(context.Background(), testConfig(), []string{"-file", writeSheet(t)}, in, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"  2. Lyon",
		"Enter a whole number between 1 and 2.",
		"Invalid number, try again.",
		"Minutes [required]",
		"Tax (%) [Enter=20]",
		// 2 h minimum at 45, 8 + 0.9*10 travel, 15% night on labor, 20% tax
		"Gross total       : 144,60 EUR",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRun_InteractiveSkipsFlaggedValues(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("2\ny\nn\n\n\n")
	args := []string{"-file", writeSheet(t), "-minutes", "90", "-distance", "3"}

	if err := run(context.Background(), testConfig(), args, in, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, prompt := range []string{"Minutes [", "Distance (km) ["} {
		if strings.Contains(got, prompt) {
			t.Errorf("unexpected prompt %q:\n%s", prompt, got)
		}
	}
	// 2 h minimum at 45, 8 + 0.9*3 travel, 15% night on labor, 20% tax
	if !strings.Contains(got, "Gross total       : 137,04 EUR") {
		t.Errorf("flag values not used:\n%s", got)
	}
}

func TestRun_InteractiveFlatRate(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		input      string
		wantPrompt []string
		noPrompt   []string
	}{
		{
			name:       "asks for km and deliveries",
			input:      "2\n60\n7\nabc\n0\n3\nn\nn\n\n\n",
			wantPrompt: []string{"Flat-rate km [Enter=0]", "Deliveries [Enter=1]", "Enter a whole number >= 1."},
			noPrompt:   []string{"Distance (km) ["},
		},
		{
			name:       "flags skip the prompts",
			args:       []string{"-flat-km", "7", "-deliveries", "3"},
			input:      "2\n60\nn\nn\n\n\n",
			wantPrompt: []string{"Minutes [required]"},
			noPrompt:   []string{"Flat-rate km [", "Deliveries [", "Distance (km) ["},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			args := append([]string{"-file", writeSheet(t), "-travel-mode", "flat_rate"}, tt.args...)

			if err := run(context.Background(), testConfig(), args, strings.NewReader(tt.input), &out); err != nil {
				t.Fatalf("run: %v", err)
			}
			got := out.String()
			for _, want := range tt.wantPrompt {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, prompt := range tt.noPrompt {
				if strings.Contains(got, prompt) {
					t.Errorf("unexpected prompt %q:\n%s", prompt, got)
				}
			}
			// 2 h at 45, 37 + 2*3.10 + 2*10 flat travel, 20% tax
			if !strings.Contains(got, "Gross total       : 183,84 EUR") {
				t.Errorf("flat-rate travel not applied:\n%s", got)
			}
		})
	}
}

func TestRun_MenuShowsZone(t *testing.T) {
	sheet := "Ville;Zone;Tarif horaire\nParis;Nord;50\nLyon;;45\n"
	path := filepath.Join(t.TempDir(), "zones.csv")
	if err := os.WriteFile(path, []byte(sheet), 0o600); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	args := []string{"-file", path, "-minutes", "60", "-distance", "0", "-night=false", "-weekend=false", "-discount", "0", "-tax", "0"}

	if err := run(context.Background(), testConfig(), args, strings.NewReader("1\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "  1. Paris - Nord\n") || !strings.Contains(got, "  2. Lyon\n") {
		t.Errorf("menu labels:\n%s", got)
	}
}

func TestRun_InteractiveEOF(t *testing.T) {
	err := run(context.Background(), testConfig(), []string{"-file", writeSheet(t)}, strings.NewReader("1\n"), &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected an error when input ends early")
	}
}

func TestRun_ExportText(t *testing.T) {
	var out bytes.Buffer
	dest := filepath.Join(t.TempDir(), "facture.txt")
	args := []string{"-file", writeSheet(t), "-location", "Paris", "-night", "-discount", "5", "-export", dest, "-client", "Atelier Dupont", "-number", "F-7"}

	if err := run(context.Background(), testConfig(), args, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"INVOICE F-7", "Client: Atelier Dupont", "153,90 EUR"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("invoice missing %q:\n%s", want, data)
		}
	}
	if !strings.Contains(out.String(), "Invoice F-7 written to") {
		t.Errorf("output = %s", out.String())
	}
}

func TestRun_ExportPDF(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "facture.pdf")
	args := []string{"-file", writeSheet(t), "-location", "Lyon", "-minutes", "90", "-distance", "3", "-export", dest}

	if err := run(context.Background(), testConfig(), args, strings.NewReader(""), &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("export is not a PDF")
	}
}

func TestRun_RouteLookup(t *testing.T) {
	var out bytes.Buffer
	args := []string{"-file", writeSheet(t), "-location", "Lyon", "-origin", "45.0,4.0", "-destination", "45.1,4.0"}

	if err := run(context.Background(), testConfig(), args, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Route: 11.12 km, 11 min") {
		t.Errorf("output = %s", out.String())
	}
	if !strings.Contains(out.String(), "Distance          : 11.12 km") {
		t.Errorf("route distance not used:\n%s", out.String())
	}
}

func TestRun_Errors(t *testing.T) {
	cfg := testConfig()
	sheet := writeSheet(t)

	err := run(context.Background(), cfg, []string{"-file", sheet, "-location", "Nice"}, strings.NewReader(""), &bytes.Buffer{})
	if !errors.Is(err, ratesheet.ErrLocationNotFound) {
		t.Errorf("unknown location: %v", err)
	}
	if err := run(context.Background(), cfg, nil, strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Error("expected error without -file")
	}
	if err := run(context.Background(), cfg, []string{"-file", sheet, "-travel-mode", "bike"}, strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown travel mode")
	}
}
