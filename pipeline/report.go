package pipeline

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/njchilds90/explicitize/algebra"
)

const ruleWidth = 80

type reporter struct {
	w io.Writer

	ruleStyle    *color.Color
	headerStyle  *color.Color
	termsStyle   *color.Color
	failureStyle *color.Color
	summaryStyle *color.Color
}

func newReporter(w io.Writer, colored bool) *reporter {
	r := &reporter{
		w:            w,
		ruleStyle:    color.New(color.FgHiBlue),
		headerStyle:  color.New(color.FgCyan, color.Bold),
		termsStyle:   color.New(color.FgWhite),
		failureStyle: color.New(color.FgRed, color.Bold),
		summaryStyle: color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{r.ruleStyle, r.headerStyle, r.termsStyle, r.failureStyle, r.summaryStyle} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// model prints the block
//
//	================
//	Model 3:
//	          2*x0 - x1
//	x0_dot = -----------
//	          1
//	[Terms: numerator=2, denominator=1]
//	================
func (r *reporter) model(i int, sym string, final *algebra.Ratio) {
	num, den := final.Num().String(), final.Den().String()
	pad := strings.Repeat(" ", len(sym)+4)
	width := max(len(num), len(den))
	rule := strings.Repeat("=", ruleWidth)

	r.ruleStyle.Fprintln(r.w, rule)
	r.headerStyle.Fprintf(r.w, "Model %d:\n", i)
	fmt.Fprintln(r.w, pad+num)
	fmt.Fprintln(r.w, sym+" = "+strings.Repeat("-", width))
	fmt.Fprintln(r.w, pad+den)
	r.termsStyle.Fprintf(r.w, "[Terms: numerator=%d, denominator=%d]\n", final.Num().Len(), final.Den().Len())
	r.ruleStyle.Fprintln(r.w, rule)
}

func (r *reporter) failure(i int, err error) {
	r.failureStyle.Fprintf(r.w, "Model %d: %s\n", i, failureText(err))
}

func failureText(err error) string {
	switch {
	case errors.Is(err, ErrZeroNumerator):
		return "Solver failed (zero numerator)."
	case errors.Is(err, ErrAllTermsDropped):
		return "All numerator terms dropped (zero)."
	case errors.Is(err, ErrDegenerateDenominator):
		return "Degenerate denominator."
	}
	return "No solution."
}

func (r *reporter) summary(s Summary) {
	bar := strings.Repeat("=", 22)
	fmt.Fprintln(r.w)
	r.summaryStyle.Fprintln(r.w, bar)
	fmt.Fprintf(r.w, " Total models processed: %d\n", s.Total)
	fmt.Fprintf(r.w, " Models obtained      : %d\n", s.Succeeded)
	fmt.Fprintf(r.w, " Models failed        : %d\n", s.Failed)
	r.summaryStyle.Fprintln(r.w, bar)
	fmt.Fprintln(r.w)
}
