package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"Fatih/internal/calc/analysis"
	"Fatih/internal/calc/burst"
	"Fatih/internal/calc/ffs"
	"Fatih/internal/calc/pipe"
	"Fatih/internal/calc/premium/batch"
	"Fatih/internal/calc/premium/importer"
	"Fatih/internal/calc/report"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const defaultMaxYears = 50

func newRootCmd(out io.Writer) *cobra.Command {
	var asJSON bool
	root := &cobra.Command{
		Use:           "ffscalc",
		Short:         "Burst pressure, fatigue and corrosion growth assessment for pipelines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	root.AddCommand(
		newAnalyzeCmd(out, &asJSON),
		newProjectCmd(out, &asJSON),
		newCompareCmd(out, &asJSON),
	)
	return root
}

func geometryFlags(fs *pflag.FlagSet, g *pipe.Geometry) {
	fs.Float64Var(&g.ThicknessMM, "thickness", 0, "wall thickness t, mm")
	fs.Float64Var(&g.DiameterMM, "diameter", 0, "outside diameter D, mm")
	fs.Float64Var(&g.LengthMM, "length", 0, "pipe length L, mm")
}

func defectFlags(fs *pflag.FlagSet, d *pipe.Defect) {
	fs.Float64Var(&d.LengthMM, "defect-length", 0, "corrosion length Lc, mm")
	fs.Float64Var(&d.DepthMM, "defect-depth", 0, "corrosion depth Dc, mm")
}

func materialFlags(fs *pflag.FlagSet, m *pipe.Material) {
	fs.Float64Var(&m.YieldMPa, "yield", 0, "yield strength Sy, MPa")
	fs.Float64Var(&m.UTSMPa, "uts", 0, "ultimate tensile strength, MPa")
}

func newAnalyzeCmd(out io.Writer, asJSON *bool) *cobra.Command {
	var in analysis.Input
	var pdfPath string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Burst pressures, cyclic stress and fatigue criteria for one configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := analysis.Run(in)
			if err != nil {
				return err
			}
			if pdfPath != "" {
				if err := writePDF(pdfPath, in, res); err != nil {
					return err
				}
			}
			if *asJSON {
				return writeJSON(out, res)
			}
			return printAnalysis(out, res)
		},
	}
	fs := cmd.Flags()
	geometryFlags(fs, &in.Geometry)
	defectFlags(fs, &in.Defect)
	materialFlags(fs, &in.Material)
	fs.Float64Var(&in.MaxMPa, "pmax", 0, "maximum operating pressure, MPa")
	fs.Float64Var(&in.MinMPa, "pmin", 0, "minimum operating pressure, MPa")
	fs.StringVar(&pdfPath, "pdf", "", "also write a PDF report to this path")
	return cmd
}

func newProjectCmd(out io.Writer, asJSON *bool) *cobra.Command {
	var in ffs.Input
	var maxYears int
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project corrosion growth and report failure years per model",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ffs.CheckHorizon(in, maxYears); err != nil {
				return err
			}
			proj, err := ffs.Project(in)
			if err != nil {
				return err
			}
			if *asJSON {
				return writeJSON(out, proj)
			}
			return printProjection(out, proj)
		},
	}
	fs := cmd.Flags()
	geometryFlags(fs, &in.Geometry)
	defectFlags(fs, &in.Defect)
	materialFlags(fs, &in.Material)
	fs.Float64Var(&in.RadialMMPerYear, "radial-rate", 0, "radial corrosion rate, mm/year")
	fs.Float64Var(&in.AxialMMPerYear, "axial-rate", 0, "axial corrosion rate, mm/year")
	fs.IntVar(&in.StartYear, "year", 0, "inspection year")
	fs.IntVar(&in.Years, "years", 20, "projection horizon, years")
	fs.Float64Var(&in.OperatingMaxMPa, "pmax", 0, "operating pressure, MPa")
	fs.IntVar(&maxYears, "max-years", defaultMaxYears, "longest horizon accepted, years")
	return cmd
}

func newCompareCmd(out io.Writer, asJSON *bool) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "compare <workbook.xlsx>",
		Short: "Analyse every configuration row of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			cfgs, skipped, err := importer.ReadWorkbook(f)
			if err != nil {
				return err
			}
			for _, s := range skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "row %d skipped: %s\n", s.Row, s.Error)
			}
			res, err := batch.Compare(context.Background(), batch.CompareInput{Items: cfgs}, workers)
			if err != nil {
				return err
			}
			if *asJSON {
				return writeJSON(out, res)
			}
			return printComparison(out, res)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 4, "parallel workers")
	return cmd
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePDF(path string, in analysis.Input, res analysis.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return report.WritePDF(f, report.Meta{}, in, res, time.Now())
}

func printAnalysis(out io.Writer, res analysis.Result) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tBURST (MPa)")
	for _, m := range burst.Models {
		fmt.Fprintf(tw, "%s\t%.3f\n", m.Label(), res.Burst.Pressure(m))
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "σa\t%.3f\n", res.Stress.Alternating)
	fmt.Fprintf(tw, "σm\t%.3f\n", res.Stress.Mean)
	fmt.Fprintf(tw, "Se\t%.3f\n", res.Stress.Endurance)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "CRITERION\tRATIO\tSTATUS")
	for _, a := range res.Fatigue.Criteria {
		fmt.Fprintf(tw, "%s\t%.4f\t%s\n", a.Criterion, a.Ratio, status(a.Safe))
	}
	return tw.Flush()
}

func printProjection(out io.Writer, proj ffs.Projection) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "YEAR\tDEPTH\tLENGTH")
	for _, m := range burst.CorrodedModels {
		fmt.Fprintf(tw, "\tERF %s", m.Label())
	}
	fmt.Fprintln(tw)
	for _, pt := range proj.Points {
		fmt.Fprintf(tw, "%d\t%.3f\t%.3f", pt.Year, pt.DepthMM, pt.LengthMM)
		for _, m := range burst.CorrodedModels {
			fmt.Fprintf(tw, "\t%.4f", pt.ERF[m])
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintln(tw)
	for _, m := range burst.CorrodedModels {
		if y, ok := proj.FailureYears[m]; ok {
			fmt.Fprintf(tw, "%s fails\t%d\n", m.Label(), y)
		} else {
			fmt.Fprintf(tw, "%s fails\tnot within horizon\n", m.Label())
		}
	}
	return tw.Flush()
}

func printComparison(out io.Writer, res batch.CompareResult) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tASME B31G\tDNV\tPCORRC\tFATIGUE")
	for _, it := range res.Results {
		if it.Result == nil {
			fmt.Fprintf(tw, "%s\terror: %s\t\t\t\n", it.Name, it.Error)
			continue
		}
		b := it.Result.Burst
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\t%s\n", it.Name, b.ASMEB31G, b.DNV, b.PCORRC, status(it.Result.Fatigue.AllSafe))
	}
	return tw.Flush()
}

func status(safe bool) string {
	if safe {
		return "SAFE"
	}
	return "UNSAFE"
}
