package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/numlab/internal/demo"
	"github.com/katalvlaran/numlab/internal/logging"
)

// Report sections.
const (
	sectionGauss  = "gauss"
	sectionRelax  = "relax"
	sectionRoots  = "roots"
	sectionInterp = "interp"
)

var numlabExample = `# solve random and Hilbert systems of order 3, 5 and 8
%[1]s gauss

# ten Jacobi / Gauss-Seidel sweeps on order-4 systems, as YAML
%[1]s relax --sizes=4 --max-iter=10 -o yaml

# root finding with a convergence chart, tighter than the defaults
%[1]s roots --root-tol=1e-12 --plot=convergence.png

# Vandermonde and Lagrange interpolation, plus a polynomial through your points
%[1]s interp --points="0,1; 1,3; 2,7"

# everything, configured from a file, with the elimination trace
%[1]s all --config=numlab.yaml --log-level=debug
`

// RunOptions holds everything one invocation needs.
type RunOptions struct {
	Config   demo.Config
	Sections []string

	Log    *logrus.Logger
	Out    io.Writer
	ErrOut io.Writer
}

// NewCmdNumlab builds the root command. Flags are bound to a private viper
// instance so a --config file fills whatever the command line leaves unset.
func NewCmdNumlab(parent string, out, errout io.Writer) *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:          parent,
		Short:        "Numerical methods demonstrations",
		Long:         "Gaussian elimination with partial pivoting, iterative relaxation, root finding and polynomial interpolation on generated test problems.",
		Example:      fmt.Sprintf(numlabExample, parent),
		SilenceUsage: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errout)

	addConfigFlags(cmd.PersistentFlags(), &configFile)
	if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
		panic(fmt.Sprintf("numlab: bind flags: %v", err))
	}

	sub := []struct {
		use, short string
		sections   []string
	}{
		{sectionGauss, "Solve random and Hilbert systems by Gaussian elimination", []string{sectionGauss}},
		{sectionRelax, "Run Jacobi and Gauss-Seidel on diagonally dominant systems", []string{sectionRelax}},
		{sectionRoots, "Isolate polynomial roots and compare bisection, fixed-point and Newton", []string{sectionRoots}},
		{sectionInterp, "Fit interpolating polynomials by Vandermonde solve and Lagrange form", []string{sectionInterp}},
		{"all", "Run every demonstration", []string{sectionGauss, sectionRelax, sectionRoots, sectionInterp}},
	}
	for _, s := range sub {
		cmd.AddCommand(newCmdSection(s.use, s.short, s.sections, v, &configFile, out, errout))
	}

	return cmd
}

func newCmdSection(use, short string, sections []string, v *viper.Viper, configFile *string, out, errout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			o := &RunOptions{Sections: sections, Out: out, ErrOut: errout}
			if err := o.Complete(v, *configFile); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}

			return o.Run()
		},
	}
}

func addConfigFlags(fs *pflag.FlagSet, configFile *string) {
	d := demo.DefaultConfig()
	fs.StringVar(configFile, "config", "", "YAML config file; its keys mirror the flags")
	fs.Int64("seed", d.Seed, "random seed for generated systems (0 selects the default stream)")
	fs.IntSlice("sizes", d.Sizes, "system orders to run")
	fs.Float64("tol", d.Tol, "relaxation stopping tolerance")
	fs.Int("max-iter", d.MaxIter, "maximum relaxation sweeps")
	fs.Float64("perturbation", d.Perturbation, "radius of the random offset of the relaxation starting guess")
	fs.Float64("root-tol", d.RootTol, "root-finding tolerance (0 keeps each method's default)")
	fs.Int("root-max-iter", d.RootMaxIter, "root-finding iteration budget (0 keeps each method's default)")
	fs.Int("subdivisions", d.Subdivisions, "grid cells used to isolate polynomial roots")
	fs.String("points", d.Points, `extra interpolation nodes, e.g. "0,0; 1,1; 2,4"`)
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn, error")
	fs.StringP("output", "o", d.Output, "report format: text, yaml or json")
	fs.String("plot", d.Plot, "write the root-finding convergence chart to this file (png, svg, pdf)")
}

// Complete loads the config file (if any), merges it with the flags and
// builds the logger.
func (o *RunOptions) Complete(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("numlab: read config %s: %w", configFile, err)
		}
	}
	// flag defaults already carry demo.DefaultConfig; a filled struct would
	// have its slices merged rather than replaced
	o.Config = demo.Config{}
	if err := v.Unmarshal(&o.Config); err != nil {
		return fmt.Errorf("numlab: decode config: %w", err)
	}

	log, err := logging.New(o.ErrOut, o.Config.LogLevel)
	if err != nil {
		return err
	}
	o.Log = log
	if configFile != "" {
		o.Log.WithField("file", v.ConfigFileUsed()).Info("config loaded")
	}

	return nil
}

// Validate checks the merged configuration.
func (o *RunOptions) Validate() error {
	if len(o.Sections) == 0 {
		return errors.New("numlab: nothing to run")
	}

	return o.Config.Validate()
}

// Run executes the selected sections, writes the report and, when asked,
// the convergence chart.
func (o *RunOptions) Run() error {
	var rep demo.Report
	for _, s := range o.Sections {
		log := o.Log.WithField("section", s)
		switch s {
		case sectionGauss:
			g, err := demo.RunGauss(o.Config, log)
			if err != nil {
				return err
			}
			rep.Gauss = &g
		case sectionRelax:
			r, err := demo.RunRelax(o.Config, log)
			if err != nil {
				return err
			}
			rep.Relax = &r
		case sectionRoots:
			r, err := demo.RunRoots(o.Config, log)
			if err != nil {
				return err
			}
			rep.Roots = &r
			if o.Config.Plot != "" {
				if err = demo.WritePlot(o.Config.Plot, r); err != nil {
					return err
				}
				log.WithField("file", o.Config.Plot).Info("convergence chart written")
			}
		case sectionInterp:
			r, err := demo.RunInterp(o.Config, log)
			if err != nil {
				return err
			}
			rep.Interp = &r
		default:
			return fmt.Errorf("numlab: unknown section %q", s)
		}
	}

	return demo.Encode(o.Out, o.Config.Output, rep)
}
