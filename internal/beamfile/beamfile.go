// Package beamfile reads and writes the plain-text continuous-beam format:
//
//	line 1:        decimal places (integer)
//	line 2:        left and right boundary codes (0=pinned 1=fixed 2=free)
//	line 3:        number of members
//	next n lines:  length and distributed load of each member
//
// The format does not persist flexural stiffness; loading reapplies
// cross.DefaultEI to every span, so a save/load round-trip is lossy in EI
// and exact in everything else.
package beamfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gocross/internal/cross"
)

// ErrBadFormat is the root cause of every parse failure.
var ErrBadFormat = errors.New("beamfile: malformed beam file")

// Definition is the topology held by a beam file: everything the solver
// needs except flexural stiffness.
type Definition struct {
	Decimals int
	Left     cross.Boundary
	Right    cross.Boundary
	Spans    []cross.Span
}

// Validate checks the definition the same way the solver would, so a file
// can be rejected before any solving starts.
func (d *Definition) Validate() error {
	if len(d.Spans) == 0 {
		return fmt.Errorf("beamfile: definition has no spans")
	}
	for i, sp := range d.Spans {
		if sp.Length <= 0 {
			return fmt.Errorf("beamfile: span %d has non-positive length %.3f", i, sp.Length)
		}
	}
	return nil
}

// Read parses a beam definition. Every span gets cross.DefaultEI as its
// stiffness.
func Read(r io.Reader) (*Definition, error) {
	sc := bufio.NewScanner(r)
	line := 0

	next := func() ([]string, error) {
		for sc.Scan() {
			line++
			fields := strings.Fields(sc.Text())
			if len(fields) > 0 {
				return fields, nil
			}
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("beamfile: read: %w", err)
		}
		return nil, fmt.Errorf("%w: unexpected end of file after line %d", ErrBadFormat, line)
	}

	intField := func(s string, what string) (int, error) {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("%w: line %d: bad %s %q", ErrBadFormat, line, what, s)
		}
		return v, nil
	}
	floatField := func(s string, what string) (float64, error) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: line %d: bad %s %q", ErrBadFormat, line, what, s)
		}
		return v, nil
	}

	def := &Definition{}

	fields, err := next()
	if err != nil {
		return nil, err
	}
	if def.Decimals, err = intField(fields[0], "decimal places"); err != nil {
		return nil, err
	}

	fields, err = next()
	if err != nil {
		return nil, err
	}
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: line %d: expected two boundary codes", ErrBadFormat, line)
	}
	lc, err := intField(fields[0], "boundary code")
	if err != nil {
		return nil, err
	}
	rc, err := intField(fields[1], "boundary code")
	if err != nil {
		return nil, err
	}
	if def.Left, err = cross.BoundaryFromCode(lc); err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrBadFormat, line, err)
	}
	if def.Right, err = cross.BoundaryFromCode(rc); err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrBadFormat, line, err)
	}

	fields, err = next()
	if err != nil {
		return nil, err
	}
	n, err := intField(fields[0], "member count")
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: line %d: member count must be at least 1, got %d", ErrBadFormat, line, n)
	}

	def.Spans = make([]cross.Span, 0, n)
	for i := 0; i < n; i++ {
		fields, err = next()
		if err != nil {
			return nil, err
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: expected length and load", ErrBadFormat, line)
		}
		length, err := floatField(fields[0], "length")
		if err != nil {
			return nil, err
		}
		load, err := floatField(fields[1], "load")
		if err != nil {
			return nil, err
		}
		def.Spans = append(def.Spans, cross.Span{Length: length, Load: load, EI: cross.DefaultEI})
	}

	return def, def.Validate()
}

// Write renders a definition in the plain-text format. Stiffness is
// intentionally not written.
func Write(w io.Writer, def *Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", def.Decimals)
	fmt.Fprintf(bw, "%d %d\n", int(def.Left), int(def.Right))
	fmt.Fprintf(bw, "%d\n", len(def.Spans))
	for _, sp := range def.Spans {
		fmt.Fprintf(bw, "%g %g\n", sp.Length, sp.Load)
	}
	return bw.Flush()
}

// Load reads a beam definition from a file.
func Load(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("beamfile: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Save writes a beam definition to a file.
func Save(path string, def *Definition) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("beamfile: %w", err)
	}
	if err := Write(f, def); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
