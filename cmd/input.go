package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gocross/internal/beamfile"
	"github.com/alexiusacademia/gocross/internal/cross"
)

// parseSpanSpec parses one --span value of the form "L:q" or "L:q:EI".
func parseSpanSpec(spec string) (cross.Span, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return cross.Span{}, fmt.Errorf("invalid span %q: expected L:q or L:q:EI", spec)
	}

	length, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return cross.Span{}, fmt.Errorf("invalid span length in %q", spec)
	}
	load, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return cross.Span{}, fmt.Errorf("invalid span load in %q", spec)
	}
	ei := cross.DefaultEI
	if len(parts) == 3 {
		if ei, err = strconv.ParseFloat(parts[2], 64); err != nil {
			return cross.Span{}, fmt.Errorf("invalid span stiffness in %q", spec)
		}
	}
	return cross.Span{Length: length, Load: load, EI: ei}, nil
}

// buildDefinition assembles a beam definition from either a beam file or
// the command-line span flags. File and flags are mutually exclusive.
func buildDefinition(file string, spanSpecs []string, left, right string, decimals int) (*beamfile.Definition, error) {
	if file != "" && len(spanSpecs) > 0 {
		return nil, fmt.Errorf("use either --file or --span, not both")
	}

	if file != "" {
		return beamfile.Load(file)
	}

	if len(spanSpecs) == 0 {
		return nil, fmt.Errorf("no beam given: provide --file or at least one --span")
	}

	lb, err := cross.ParseBoundary(left)
	if err != nil {
		return nil, err
	}
	rb, err := cross.ParseBoundary(right)
	if err != nil {
		return nil, err
	}

	def := &beamfile.Definition{
		Decimals: decimals,
		Left:     lb,
		Right:    rb,
	}
	for _, spec := range spanSpecs {
		sp, err := parseSpanSpec(spec)
		if err != nil {
			return nil, err
		}
		def.Spans = append(def.Spans, sp)
	}
	return def, def.Validate()
}
