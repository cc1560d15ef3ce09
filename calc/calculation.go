/*
 * calculation.go, part of goxtb.
 *
 *
 * Copyright 2024 Raul Mera <rmeraa{at}academicosdotutadotcl
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package calc

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	chem "github.com/rmera/goxtb"
)

// Status is the lifecycle state of a Calculation.
type Status int

const (
	Configured Status = iota
	Running
	Completed
	Failed
)

func (s Status) String() string {
	switch s {
	case Configured:
		return "configured"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Calculation ties together one invocation of an external engine: the
// program, runtype and options it was built from, the directory it runs in,
// and, after Run returns, whatever results its outputs yielded. Result
// fields are optional: each accessor returns an error when its field was
// not populated by the runtype that ran.
type Calculation struct {
	program     Program
	runtype     string
	runtypeArgs []string
	options     *Options
	input       *chem.Geometry
	aux         map[string]*chem.Geometry //extra structures to seed the run dir with
	dir         string
	args        []string
	chargeDelta int //applied to parsed ensemble members (protonation changes the charge)

	mu       sync.Mutex
	status   Status
	cmd      *exec.Cmd
	killed   bool
	exitCode int

	energy           *float64
	outGeometry      *chem.Geometry
	outGeometryFiles []string //extra files to try for the output geometry
	frequencies      []Frequency
	orbitals         []Orbital
	conformers       chem.Ensemble
	charges          []float64
	moldenFile       string
	ensembleFile     string //which multi-structure output file to read, if any
	parseErrs        []error
}

// NewCalculation builds a Calculation from its parts, validating the
// runtype and options against the program before any file is touched. A nil
// options value means all defaults; a nil settings value means
// DefaultSettings. An empty dir places the run under the settings'
// calculations directory.
func NewCalculation(p Program, runtype string, runtypeArgs []string, input *chem.Geometry, o *Options, s *Settings, dir string) (*Calculation, error) {
	const errid = "NewCalculation: "
	if input == nil {
		return nil, fmt.Errorf(errid + "nil input geometry")
	}
	if s == nil {
		s = DefaultSettings()
	}
	//defaulting and augmenting happen on a copy, the caller's Options are
	//never touched and stay reusable across programs
	o = o.clone()
	if !p.SupportsRuntype(runtype) {
		return nil, &UnsupportedOptionError{Option: runtype, Program: p.Name}
	}
	o.ApplyDefaults(s)
	if err := o.Validate(p); err != nil {
		return nil, err
	}
	if len(runtypeArgs) == 0 && optTakesLevel(runtype) && o.OptLevel != "" {
		runtypeArgs = []string{o.OptLevel}
	}
	if dir == "" {
		dir = filepath.Join(s.CalcsDir, "last")
	}
	charge := input.Charge()
	if o.Charge != nil {
		charge = *o.Charge
	}
	spin := input.Spin()
	if o.Spin != nil {
		spin = *o.Spin
	}
	c := &Calculation{
		program:     p,
		runtype:     runtype,
		runtypeArgs: runtypeArgs,
		options:     o,
		input:       input,
		dir:         dir,
		status:      Configured,
		exitCode:    -1,
	}
	c.args = BuildArgs(p, runtype, runtypeArgs, o, charge, spin)
	return c, nil
}

// NewSinglePoint prepares an xtb single-point energy calculation.
func NewSinglePoint(g *chem.Geometry, o *Options, s *Settings) (*Calculation, error) {
	if s == nil {
		s = DefaultSettings()
	}
	return NewCalculation(s.XTB(), "", nil, g, o, s, "")
}

// NewOptimization prepares an xtb geometry optimization at the options'
// (or settings') convergence level.
func NewOptimization(g *chem.Geometry, o *Options, s *Settings) (*Calculation, error) {
	if s == nil {
		s = DefaultSettings()
	}
	return NewCalculation(s.XTB(), "opt", nil, g, o, s, "")
}

// NewFrequencies prepares an xtb vibrational frequencies calculation on the
// geometry as given, without optimizing it first.
func NewFrequencies(g *chem.Geometry, o *Options, s *Settings) (*Calculation, error) {
	if s == nil {
		s = DefaultSettings()
	}
	return NewCalculation(s.XTB(), "hess", nil, g, o, s, "")
}

// NewOptFreq prepares a combined optimization plus frequencies run. For the
// full search that reoptimizes away from saddle points, see OptFreq.
func NewOptFreq(g *chem.Geometry, o *Options, s *Settings) (*Calculation, error) {
	if s == nil {
		s = DefaultSettings()
	}
	return NewCalculation(s.XTB(), "ohess", nil, g, o, s, "")
}

// NewOrbitals prepares a single point that also writes the molden.input
// file with the orbital data needed for visualization.
func NewOrbitals(g *chem.Geometry, o *Options, s *Settings) (*Calculation, error) {
	if s == nil {
		s = DefaultSettings()
	}
	o = withFlag(o, "molden", "")
	return NewCalculation(s.XTB(), "", nil, g, o, s, "")
}

// NewConformerSearch prepares a crest iMTD-GC conformer search. The
// resulting ensemble is ordered by ascending energy and the best conformer
// becomes the output geometry.
func NewConformerSearch(g *chem.Geometry, o *Options, s *Settings) (*Calculation, error) {
	if s == nil {
		s = DefaultSettings()
	}
	o = withFlag(o, "xnam", s.XTBBin)
	c, err := NewCalculation(s.CREST(), "v3", nil, g, o, s, "")
	if err != nil {
		return nil, err
	}
	c.ensembleFile = "crest_conformers.xyz"
	return c, nil
}

// NewTautomerize prepares a crest tautomer screening.
func NewTautomerize(g *chem.Geometry, o *Options, s *Settings) (*Calculation, error) {
	return newCrestScreen(g, o, s, "tautomerize", "tautomers.xyz", 0)
}

// NewProtonate prepares a crest protonation site screening. The members of
// the resulting ensemble carry a charge one higher than the input.
func NewProtonate(g *chem.Geometry, o *Options, s *Settings) (*Calculation, error) {
	return newCrestScreen(g, o, s, "protonate", "protonated.xyz", 1)
}

// NewDeprotonate prepares a crest deprotonation site screening. The members
// of the resulting ensemble carry a charge one lower than the input.
func NewDeprotonate(g *chem.Geometry, o *Options, s *Settings) (*Calculation, error) {
	return newCrestScreen(g, o, s, "deprotonate", "deprotonated.xyz", -1)
}

func newCrestScreen(g *chem.Geometry, o *Options, s *Settings, runtype, ensembleFile string, chargeDelta int) (*Calculation, error) {
	if s == nil {
		s = DefaultSettings()
	}
	o = withFlag(o, "xnam", s.XTBBin)
	c, err := NewCalculation(s.CREST(), runtype, nil, g, o, s, "")
	if err != nil {
		return nil, err
	}
	c.ensembleFile = ensembleFile
	c.chargeDelta = chargeDelta
	return c, nil
}

// NewSolvate prepares a crest quantum cluster growth run that grows a shell
// of nSolvent copies of the solvent geometry around the solute.
func NewSolvate(solute, solvent *chem.Geometry, nSolvent int, o *Options, s *Settings) (*Calculation, error) {
	if s == nil {
		s = DefaultSettings()
	}
	if solvent == nil {
		return nil, fmt.Errorf("NewSolvate: nil solvent geometry")
	}
	if nSolvent < 1 {
		return nil, fmt.Errorf("NewSolvate: need at least one solvent molecule, got %d", nSolvent)
	}
	o = withFlag(o, "xnam", s.XTBBin)
	o = withFlag(o, "grow", "")
	o = withFlag(o, "nsolv", fmt.Sprintf("%d", nSolvent))
	const solventFile = "aux1.xyz"
	c, err := NewCalculation(s.CREST(), "qcg", []string{solventFile}, solute, o, s, "")
	if err != nil {
		return nil, err
	}
	c.aux = map[string]*chem.Geometry{solventFile: solvent}
	c.outGeometryFiles = []string{filepath.Join("grow", "cluster.xyz")}
	return c, nil
}

//The opt-family runtypes take the convergence level as their positional
//argument; NewCalculation fills it from Options.OptLevel when the caller
//gave no explicit runtype arguments.
func optTakesLevel(runtype string) bool {
	return runtype == "opt" || runtype == "ohess" || runtype == "metaopt"
}

//withFlag returns a copy with the flag set unless the caller set it
//already. The copy keeps the caller's Options untouched, a constructor must
//not leak engine-specific flags into a reusable value.
func withFlag(o *Options, name, value string) *Options {
	o = o.clone()
	if o.Flags == nil {
		o.Flags = map[string]string{}
	}
	if _, ok := o.Flags[name]; !ok {
		o.Flags[name] = value
	}
	return o
}

//process reads whatever output files this run produced and attaches the
//results. Parse failures are collected, not returned: a run can yield a
//usable energy even when, say, the frequency table is mangled.
func (c *Calculation) process() {
	if c.program.Name == CREST {
		c.processCREST()
	} else {
		c.processXTB()
	}
}

func (c *Calculation) processXTB() {
	outPath := filepath.Join(c.dir, OutputFileName)
	if e, ok, err := parseEnergy(outPath); err == nil && ok {
		c.energy = &e
	} else if err != nil {
		c.parseErrs = append(c.parseErrs, err)
	}
	if c.optimizes() {
		optPath := filepath.Join(c.dir, "xtbopt.xyz")
		if _, err := os.Stat(optPath); err == nil {
			g, err := chem.XYZRead(optPath)
			if err != nil {
				c.parseErrs = append(c.parseErrs, err)
			} else if g, err = g.WithChargeSpin(c.input.Charge(), c.input.Spin()); err == nil {
				c.outGeometry = g
			}
		}
	}
	if c.runtype == "hess" || c.runtype == "ohess" {
		g98Path := filepath.Join(c.dir, "g98.out")
		if _, err := os.Stat(g98Path); err == nil {
			freqs, err := parseG98Frequencies(g98Path)
			if err != nil {
				c.parseErrs = append(c.parseErrs, err)
			} else {
				c.frequencies = freqs
			}
		}
	}
	if orbs, err := parseOrbitals(outPath); err != nil {
		c.parseErrs = append(c.parseErrs, err)
	} else {
		c.orbitals = orbs
	}
	chargesPath := filepath.Join(c.dir, "charges")
	if _, err := os.Stat(chargesPath); err == nil {
		charges, err := parseCharges(chargesPath)
		if err != nil {
			c.parseErrs = append(c.parseErrs, err)
		} else {
			c.charges = charges
		}
	}
	if _, ok := c.options.Flags["molden"]; ok {
		moldenPath := filepath.Join(c.dir, "molden.input")
		if _, err := os.Stat(moldenPath); err == nil {
			c.moldenFile = moldenPath
		}
	}
}

func (c *Calculation) processCREST() {
	if e, ok, err := parseEnergy(filepath.Join(c.dir, OutputFileName)); err == nil && ok {
		c.energy = &e
	}
	for _, name := range c.outGeometryFiles {
		path := filepath.Join(c.dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		g, err := chem.XYZRead(path)
		if err != nil {
			c.parseErrs = append(c.parseErrs, err)
			continue
		}
		if g, err = g.WithChargeSpin(c.input.Charge()+c.chargeDelta, c.input.Spin()); err == nil {
			c.outGeometry = g
		}
	}
	if c.ensembleFile == "" {
		return
	}
	//a missing file just leaves the field unpopulated: the checked
	//accessor, not a parse error, is what reports the absence
	path := filepath.Join(c.dir, c.ensembleFile)
	if _, err := os.Stat(path); err != nil {
		return
	}
	geoms, err := chem.XYZReadMulti(path)
	if err != nil {
		c.parseErrs = append(c.parseErrs, err)
		return
	}
	charge := c.input.Charge() + c.chargeDelta
	for i, g := range geoms {
		if g2, err := g.WithChargeSpin(charge, c.input.Spin()); err == nil {
			geoms[i] = g2
		}
	}
	ensemble, err := chem.NewEnsemble(geoms)
	if err != nil {
		c.parseErrs = append(c.parseErrs, err)
		return
	}
	c.conformers = ensemble.Sort()
	if c.outGeometry == nil && len(c.conformers) > 0 {
		c.outGeometry = c.conformers.Best().Geometry
	}
}

func (c *Calculation) optimizes() bool {
	return c.runtype == "opt" || c.runtype == "ohess" || c.runtype == "metaopt"
}

// Dir returns the directory the calculation runs in.
func (c *Calculation) Dir() string { return c.dir }

// Args returns a copy of the argument list that Run passes to the engine.
func (c *Calculation) Args() []string {
	args := make([]string, len(c.args))
	copy(args, c.args)
	return args
}

// CommandLine renders the full invocation as a single string, for preview
// or logging, without running anything.
func (c *Calculation) CommandLine() string {
	return c.program.Path + " " + strings.Join(c.args, " ")
}

// Status returns the calculation's lifecycle state.
func (c *Calculation) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// ExitCode returns the exit status of the completed process, or -1 if the
// process has not run or did not exit normally. A non-zero exit code does
// not imply the run produced nothing usable.
func (c *Calculation) ExitCode() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exitCode
}

// ParseErrors returns the errors collected while reading the output files.
// A calculation can complete, with some fields populated, and still carry
// parse errors for others.
func (c *Calculation) ParseErrors() []error { return c.parseErrs }

// Energy returns the final energy reported on standard output. Units
// depend on the runtype, matching what the engine printed.
func (c *Calculation) Energy() (float64, error) {
	if c.energy == nil {
		return 0, fmt.Errorf("Energy: not populated by this %s run", c.describe())
	}
	return *c.energy, nil
}

// OutputGeometry returns the geometry the run produced: the optimized
// structure for optimizations, the best conformer for ensemble runs.
func (c *Calculation) OutputGeometry() (*chem.Geometry, error) {
	if c.outGeometry == nil {
		return nil, fmt.Errorf("OutputGeometry: not populated by this %s run", c.describe())
	}
	return c.outGeometry, nil
}

// Frequencies returns the vibrational modes, ordered by mode number.
func (c *Calculation) Frequencies() ([]Frequency, error) {
	if c.frequencies == nil {
		return nil, fmt.Errorf("Frequencies: not populated by this %s run", c.describe())
	}
	return c.frequencies, nil
}

// Orbitals returns the molecular orbital table, ordered by orbital number.
func (c *Calculation) Orbitals() ([]Orbital, error) {
	if c.orbitals == nil {
		return nil, fmt.Errorf("Orbitals: not populated by this %s run", c.describe())
	}
	return c.orbitals, nil
}

// Conformers returns the parsed ensemble, ordered by ascending energy.
func (c *Calculation) Conformers() (chem.Ensemble, error) {
	if c.conformers == nil {
		return nil, fmt.Errorf("Conformers: not populated by this %s run", c.describe())
	}
	return c.conformers, nil
}

// PartialCharges returns the Mulliken partial charges, one per atom in
// input order.
func (c *Calculation) PartialCharges() ([]float64, error) {
	if c.charges == nil {
		return nil, fmt.Errorf("PartialCharges: not populated by this %s run", c.describe())
	}
	return c.charges, nil
}

// Molden returns the raw contents of the molden.input file written for
// orbital visualization. MoldenPath returns its location instead, for
// callers handing the file to an external viewer.
func (c *Calculation) Molden() (string, error) {
	path, err := c.MoldenPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("Molden: %w", err)
	}
	return string(data), nil
}

// MoldenPath returns the path of the molden.input file written for orbital
// visualization.
func (c *Calculation) MoldenPath() (string, error) {
	if c.moldenFile == "" {
		return "", fmt.Errorf("MoldenPath: not populated by this %s run", c.describe())
	}
	return c.moldenFile, nil
}

func (c *Calculation) describe() string {
	if c.runtype == "" {
		return c.program.Name
	}
	return c.program.Name + " --" + c.runtype
}
