package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"reborrow-generator/internal/plan"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [packages]",
	Short: "Show how each record field is narrowed",
	RunE:  runInspect,
}

func init() {
	addPipelineFlags(inspectCmd)
	inspectCmd.Flags().String("format", "text", "output format (text|yaml)")
}

type recordReport struct {
	Type    string        `yaml:"type"`
	Mode    string        `yaml:"mode"`
	Shape   string        `yaml:"shape"`
	Const   string        `yaml:"const"`
	Generic []string      `yaml:"type_params,omitempty"`
	Fields  []fieldReport `yaml:"fields,omitempty"`
}

type fieldReport struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Policy   string `yaml:"policy"`
	Dispatch string `yaml:"dispatch"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	format = strings.ToLower(format)
	if format != "text" && format != "yaml" {
		return fmt.Errorf("unsupported format %q (must be text or yaml)", format)
	}

	p, err := runPipeline(cmd, args, false)
	if err != nil {
		return err
	}

	reports := buildReports(p.plan)

	if format == "yaml" {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)

		if err := enc.Encode(reports); err != nil {
			return err
		}

		return enc.Close()
	}

	return renderReports(cmd.OutOrStdout(), reports)
}

func buildReports(p *plan.ResolvedPlan) []recordReport {
	reports := make([]recordReport, 0, len(p.Records))

	for _, rr := range p.Records {
		rec := rr.Record
		r := recordReport{
			Type:    rec.ID.String(),
			Mode:    rec.Mode.String(),
			Shape:   rec.Shape.String(),
			Const:   rr.Const.Qualified(),
			Generic: rec.TypeParams,
		}

		for _, f := range rr.Fields {
			r.Fields = append(r.Fields, fieldReport{
				Name:     f.Name,
				Type:     f.Type.String(),
				Policy:   f.Policy.String(),
				Dispatch: f.Dispatch.String(),
			})
		}

		reports = append(reports, r)
	}

	return reports
}

func renderReports(w io.Writer, reports []recordReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(tw)
		}

		fmt.Fprintf(tw, "%s\t%s %s\t-> %s\n", r.Type, r.Mode, r.Shape, r.Const)

		for _, f := range r.Fields {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", f.Name, f.Type, f.Policy, f.Dispatch)
		}
	}

	return tw.Flush()
}
