// README: Line-oriented prompts with defaults for the interactive calculator.
package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"tarif/internal/modules/ratesheet"
)

type prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{sc: bufio.NewScanner(in), out: out}
}

func (p *prompter) line(msg string) (string, error) {
	fmt.Fprint(p.out, msg)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.sc.Text()), nil
}

// float asks until it gets a number >= floor. An empty answer takes def when
// there is one.
func (p *prompter) float(msg string, def *float64, floor float64) (float64, error) {
	for {
		s, err := p.line(msg)
		if err != nil {
			return 0, err
		}
		if s == "" && def != nil {
			return *def, nil
		}
		v := ratesheet.ParseNumber(s, math.NaN())
		if math.IsNaN(v) {
			fmt.Fprintln(p.out, "Invalid number, try again.")
			continue
		}
		if v < floor {
			fmt.Fprintf(p.out, "Enter a value >= %g.\n", floor)
			continue
		}
		return v, nil
	}
}

// choice asks for a 1-based menu index in [1, n].
func (p *prompter) choice(msg string, n int) (int, error) {
	for {
		s, err := p.line(msg)
		if err != nil {
			return 0, err
		}
		i, err := strconv.Atoi(s)
		if err != nil || i < 1 || i > n {
			fmt.Fprintf(p.out, "Enter a whole number between 1 and %d.\n", n)
			continue
		}
		return i, nil
	}
}

// count asks for a whole number >= 1. An empty answer takes def.
func (p *prompter) count(msg string, def int) (int, error) {
	for {
		s, err := p.line(msg)
		if err != nil {
			return 0, err
		}
		if s == "" {
			return def, nil
		}
		i, err := strconv.Atoi(s)
		if err != nil || i < 1 {
			fmt.Fprintln(p.out, "Enter a whole number >= 1.")
			continue
		}
		return i, nil
	}
}

func (p *prompter) yesNo(msg string) (bool, error) {
	s, err := p.line(msg)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes", "o", "oui":
		return true, nil
	default:
		return false, nil
	}
}

// defaultHint renders "[Enter=12.5]" or "[required]" for a prompt.
func defaultHint(def *float64) string {
	if def == nil {
		return "[required]"
	}
	return "[Enter=" + strconv.FormatFloat(*def, 'f', -1, 64) + "]"
}
