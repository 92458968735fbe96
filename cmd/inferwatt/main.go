package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ja7ad/inferwatt/pkg/config"
	"github.com/ja7ad/inferwatt/pkg/energy"
	"github.com/ja7ad/inferwatt/pkg/types"
)

var pretty bool

type opts struct {
	// profile
	configPath string

	// model
	basePower  float64
	compFactor float64
	memUsage   float64
	memPower   float64
	inferTime  float64
	tdp        float64
	cacheSize  float64
	memBW      float64

	// sweep
	minBatch int
	maxBatch int

	// outputs
	csvPath  string
	jsonPath string
	htmlPath string
}

type row struct {
	BatchSize      int     `json:"batch_size"`
	FP32Energy     float64 `json:"fp32_energy"`
	FP16Energy     float64 `json:"fp16_energy"`
	INT8Energy     float64 `json:"int8_energy"`
	INT4Energy     float64 `json:"int4_energy"`
	FP32Efficiency float64 `json:"fp32_efficiency"`
	FP16Efficiency float64 `json:"fp16_efficiency"`
	INT8Efficiency float64 `json:"int8_efficiency"`
	INT4Efficiency float64 `json:"int4_efficiency"`
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "inferwatt",
		Short: "AI inference energy/efficiency modeling and batch-size optimization",
		Long: `The inferwatt tool models the energy consumption and energy efficiency of an
AI model's inference workload as a closed-form function of batch size and
numeric precision (fp32, fp16, int8, int4), sweeps a batch-size range, and
reports the efficiency-optimal batch size per precision.

The model is analytic: no hardware telemetry is sampled. Power saturates at
the profile's thermal design power (thermal throttling).

Examples:
  inferwatt --csv ai_energy_data.csv
  inferwatt --min-batch 1 --max-batch 256 --tdp 250 --base-power 80
  inferwatt --profile hardware.yaml --html report.html`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, o)
		},
	}

	root.Flags().BoolVar(&pretty, "pretty", true, "print the full sweep as a table before the summary")
	root.Flags().StringVar(&o.configPath, "profile", "", "YAML hardware/model profile (flags override it)")

	root.Flags().Float64Var(&o.basePower, "base-power", 50.0, "idle power draw in Watts")
	root.Flags().Float64Var(&o.compFactor, "comp-factor", 2.5, "compute power scaling factor")
	root.Flags().Float64Var(&o.memUsage, "memory-gb", 4.0, "working set size in GB")
	root.Flags().Float64Var(&o.memPower, "memory-power", 5.0, "memory power in Watts per GB")
	root.Flags().Float64Var(&o.inferTime, "inference-time", 0.05, "seconds per inference at batch size 1")
	root.Flags().Float64Var(&o.tdp, "tdp", 100.0, "thermal design power ceiling in Watts")
	root.Flags().Float64Var(&o.cacheSize, "cache-mb", 32.0, "cache size in MB")
	root.Flags().Float64Var(&o.memBW, "memory-bandwidth", 256.0, "memory bandwidth in GB/s")

	root.Flags().IntVar(&o.minBatch, "min-batch", 1, "smallest batch size to sweep")
	root.Flags().IntVar(&o.maxBatch, "max-batch", 128, "largest batch size to sweep")

	root.Flags().StringVar(&o.csvPath, "csv", "", "write the sweep table to a CSV file (plotting contract)")
	root.Flags().StringVar(&o.jsonPath, "json", "", "write sweep rows to a JSON file (includes int4)")
	root.Flags().StringVar(&o.htmlPath, "html", "", "write an HTML report with optima marked")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, o opts) error {
	params := energy.DefaultParams()
	minBatch, maxBatch := o.minBatch, o.maxBatch

	if o.configPath != "" {
		prof, err := config.Load(o.configPath)
		if err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		params = prof.Params()
		if !cmd.Flags().Changed("min-batch") && !cmd.Flags().Changed("max-batch") {
			minBatch, maxBatch = prof.Range()
		}
		if o.csvPath == "" {
			o.csvPath = prof.Output.CSV
		}
		if o.jsonPath == "" {
			o.jsonPath = prof.Output.JSON
		}
		if o.htmlPath == "" {
			o.htmlPath = prof.Output.HTML
		}
	}

	// Explicit flags win over the profile.
	for name, apply := range map[string]func(){
		"base-power":       func() { params.BasePower = o.basePower },
		"comp-factor":      func() { params.ComputationFactor = o.compFactor },
		"memory-gb":        func() { params.MemoryUsage = o.memUsage },
		"memory-power":     func() { params.MemoryPowerFactor = o.memPower },
		"inference-time":   func() { params.InferenceTime = o.inferTime },
		"tdp":              func() { params.TDP = o.tdp },
		"cache-mb":         func() { params.CacheSize = o.cacheSize },
		"memory-bandwidth": func() { params.MemoryBandwidth = o.memBW },
	} {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	opt, err := energy.New(params)
	if err != nil {
		return err
	}

	printProfile(params, minBatch, maxBatch)

	rows, best, err := opt.Sweep(minBatch, maxBatch)
	if err != nil {
		return err
	}

	if pretty {
		printSweepTable(rows)
	}
	printSummary(best)

	if o.csvPath != "" {
		if _, err := opt.ExportData(minBatch, maxBatch, o.csvPath); err != nil {
			return err
		}
		fmt.Printf("sweep table written to %s\n", o.csvPath)
	}

	views := lo.Map(rows, func(r energy.Row, _ int) row {
		return row{
			BatchSize:      r.BatchSize,
			FP32Energy:     r.Energy[energy.FP32],
			FP16Energy:     r.Energy[energy.FP16],
			INT8Energy:     r.Energy[energy.INT8],
			INT4Energy:     r.Energy[energy.INT4],
			FP32Efficiency: r.Efficiency[energy.FP32],
			FP16Efficiency: r.Efficiency[energy.FP16],
			INT8Efficiency: r.Efficiency[energy.INT8],
			INT4Efficiency: r.Efficiency[energy.INT4],
		}
	})

	if o.jsonPath != "" {
		if err := writeJSON(o.jsonPath, views); err != nil {
			return fmt.Errorf("json: %w", err)
		}
		fmt.Printf("sweep rows written to %s\n", o.jsonPath)
	}

	if o.htmlPath != "" {
		if err := writeHTML(o.htmlPath, params, views, best); err != nil {
			return fmt.Errorf("html: %w", err)
		}
		fmt.Printf("report written to %s\n", o.htmlPath)
	}

	return nil
}

func printProfile(p energy.Params, minBatch, maxBatch int) {
	fmt.Printf(_console,
		types.Watts(p.BasePower).Humanized(),
		types.Watts(p.TDP).Humanized(),
		types.Gigabytes(p.MemoryUsage),
		types.Megabytes(p.CacheSize),
		types.GBPerSec(p.MemoryBandwidth),
		minBatch, maxBatch,
	)
}

func printSweepTable(rows []energy.Row) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BATCH\tE fp32 (W)\tE fp16 (W)\tE int8 (W)\tE int4 (W)\tEff fp32\tEff fp16\tEff int8\tEff int4")
	fmt.Fprintln(tw, "-----\t----------\t----------\t----------\t----------\t--------\t--------\t--------\t--------")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			r.BatchSize,
			r.Energy[energy.FP32], r.Energy[energy.FP16], r.Energy[energy.INT8], r.Energy[energy.INT4],
			r.Efficiency[energy.FP32], r.Efficiency[energy.FP16], r.Efficiency[energy.INT8], r.Efficiency[energy.INT4],
		)
	}
	tw.Flush()
}

func printSummary(best energy.Optima) {
	fmt.Println()
	fmt.Println("optimal batch size per precision:")
	for _, p := range energy.Precisions {
		opt := best.For(p)
		fmt.Printf("- %-5s batch %4d  efficiency %s\n", opt.Precision, opt.BatchSize, types.PerWatt(opt.Efficiency))
	}
	fmt.Println()
}

func writeJSON(path string, views []row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

type optView struct {
	Precision  string
	BatchSize  int
	Efficiency float64
}

func writeHTML(path string, params energy.Params, views []row, best energy.Optima) error {
	type page struct {
		Params energy.Params
		Rows   []row
		Optima []optView
	}

	optima := lo.Map(energy.Precisions[:], func(p energy.Precision, _ int) optView {
		o := best.For(p)
		return optView{Precision: o.Precision.String(), BatchSize: o.BatchSize, Efficiency: o.Efficiency}
	})

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, page{Params: params, Rows: views, Optima: optima}); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

var tpl = template.Must(template.New("rep").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Inference Energy Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
ul{margin:6px 0 14px;padding-left:20px}
.small{color:#555}
.badge{display:inline-block;background:#eef;border:1px solid #ccd;padding:2px 6px;border-radius:6px;margin-right:6px;}
</style>

<h1>Inference Energy Report</h1>

<p class="small">
Base power: {{printf "%.1f" .Params.BasePower}} W &nbsp;|&nbsp;
TDP: {{printf "%.1f" .Params.TDP}} W &nbsp;|&nbsp;
Memory: {{printf "%.1f" .Params.MemoryUsage}} GB @ {{printf "%.0f" .Params.MemoryBandwidth}} GB/s &nbsp;|&nbsp;
Cache: {{printf "%.0f" .Params.CacheSize}} MB
</p>

<h2>Optimal batch sizes</h2>
<ul>
{{range .Optima}}
  <li><span class="badge">{{.Precision}}</span> batch {{.BatchSize}} at {{printf "%.4f" .Efficiency}} per Watt</li>
{{end}}
</ul>

<h2>Sweep</h2>
<table>
<thead>
<tr>
<th>batch</th>
<th>E fp32 (W)</th><th>E fp16 (W)</th><th>E int8 (W)</th><th>E int4 (W)</th>
<th>eff fp32</th><th>eff fp16</th><th>eff int8</th><th>eff int4</th>
</tr>
</thead>
<tbody>
{{range .Rows}}
<tr>
<td style="text-align:left">{{.BatchSize}}</td>
<td>{{printf "%.3f" .FP32Energy}}</td>
<td>{{printf "%.3f" .FP16Energy}}</td>
<td>{{printf "%.3f" .INT8Energy}}</td>
<td>{{printf "%.3f" .INT4Energy}}</td>
<td>{{printf "%.4f" .FP32Efficiency}}</td>
<td>{{printf "%.4f" .FP16Efficiency}}</td>
<td>{{printf "%.4f" .INT8Efficiency}}</td>
<td>{{printf "%.4f" .INT4Efficiency}}</td>
</tr>
{{end}}
</tbody>
</table>
</html>`))

const _console = `inferwatt - AI Inference Energy Efficiency Optimizer

       Base power: %s
       TDP:        %s
       Memory:     %s
       Cache:      %s
       Bandwidth:  %s

Sweeping batch sizes %d..%d over fp32, fp16, int8, int4:

`
