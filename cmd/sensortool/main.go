// sensortool is a CLI utility for inspecting sensor tables and the colour
// gradient without opening the viewer.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/sensorlab/internal/colormap"
	"github.com/Faultbox/sensorlab/internal/config"
	"github.com/Faultbox/sensorlab/internal/engine/debug"
	"github.com/Faultbox/sensorlab/internal/sensor"
	"github.com/Faultbox/sensorlab/internal/viz"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "matrix", "m":
		cmdMatrix(args)
	case "legend":
		cmdLegend(args)
	case "attrs":
		cmdAttrs()
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`sensortool - sensor lab table and gradient utility

Usage:
  sensortool <command> [options]

Commands:
  matrix [-rows 2,3,...] [-attr label] <table.csv>
                                        Print readings and their colours
  legend -o <file> [-w 256] [-h 50]     Export the gradient legend (.png or .webp)
  attrs                                 List the attribute schema
  config -o <file>                      Write the default viewer config

Examples:
  sensortool matrix Output.csv
  sensortool matrix -rows 2,5 Output.csv
  sensortool matrix -attr "pm 2.5" Output.csv
  sensortool legend -o legend.webp
  sensortool config -o config.yaml`)
}

func cmdMatrix(args []string) {
	fs := flag.NewFlagSet("matrix", flag.ExitOnError)
	rows := fs.String("rows", "", "Comma-separated table rows, one per module")
	only := fs.String("attr", "", "Show one attribute, by label (\"Co2\") or index")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: sensortool matrix [-rows 2,3,...] [-attr label] <table.csv>")
		os.Exit(1)
	}

	layout := sensor.DefaultLayout()
	if *rows != "" {
		parsed, err := parseRows(*rows)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		layout.Rows = parsed
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	values, err := layout.Parse(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m := viz.BuildColorMatrix(values, colormap.Build())

	if *only != "" {
		attr, err := resolveAttribute(*only)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printColumn(m, values, layout.Rows, attr)
		return
	}

	labels := sensor.Labels()
	fmt.Printf("%-8s", "Row")
	for attr := 0; attr < m.Attributes() && attr < len(labels); attr++ {
		fmt.Printf(" %-16s", labels[attr])
	}
	fmt.Println()

	for anchor, row := range layout.Rows {
		colors, _ := m.Row(anchor)
		fmt.Printf("%-8d", row)
		for attr, c := range colors {
			fmt.Printf(" %-16s", fmt.Sprintf("%.3g %s", values[anchor][attr], c.Clamped().Hex()))
		}
		fmt.Println()
	}
	fmt.Printf("\n%d modules, %d attributes\n", m.Anchors(), m.Attributes())
}

// printColumn prints one attribute for every module.
func printColumn(m *viz.ColorMatrix, values [][]float64, rows []int, attr sensor.Attribute) {
	colors, err := m.Column(int(attr))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-8s %-10s %s\n", "Row", attr, "Colour")
	for anchor, c := range colors {
		fmt.Printf("%-8d %-10.3g %s\n", rows[anchor], values[anchor][attr], c.Clamped().Hex())
	}
}

// resolveAttribute accepts a panel label or a column index.
func resolveAttribute(s string) (sensor.Attribute, error) {
	if attr, err := sensor.ParseAttribute(s); err == nil {
		return attr, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || !sensor.Attribute(n).Valid() {
		return 0, fmt.Errorf("unknown attribute %q (see sensortool attrs)", s)
	}
	return sensor.Attribute(n), nil
}

// parseRows parses "2,3,4" into row indices.
func parseRows(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	rows := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad row %q: %w", p, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("bad row %d: negative", n)
		}
		rows = append(rows, n)
	}
	return rows, nil
}

func cmdLegend(args []string) {
	fs := flag.NewFlagSet("legend", flag.ExitOnError)
	output := fs.String("o", "", "Output file (.png or .webp)")
	width := fs.Int("w", colormap.Width, "Legend width")
	height := fs.Int("h", colormap.LegendHeight, "Legend height")
	fs.Parse(args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: sensortool legend -o <file> [-w 256] [-h 50]")
		os.Exit(1)
	}
	if *width < 1 || *height < 1 {
		fmt.Fprintf(os.Stderr, "Error: legend size %dx%d must be positive\n", *width, *height)
		os.Exit(1)
	}

	img := colormap.Build().Legend(*width, *height)
	if err := debug.SaveImage(*output, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %dx%d legend to %s\n", *width, *height, *output)
}

func cmdAttrs() {
	g := colormap.Build()
	fmt.Printf("%-6s %-10s\n", "Index", "Label")
	for _, attr := range sensor.Attributes() {
		fmt.Printf("%-6d %-10s\n", int(attr), attr)
	}
	fmt.Printf("\nGradient: %s (0.0) -> %s (0.5) -> %s (1.0)\n",
		g.Sample(0).Hex(), g.Sample(0.5).Hex(), g.Sample(1).Hex())
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	output := fs.String("o", "", "Output file (default: user config dir)")
	fs.Parse(args)

	cfg := config.Default()
	var err error
	path := *output
	if path == "" {
		path = "user config dir"
		err = cfg.Save()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote default config to %s\n", path)
}
