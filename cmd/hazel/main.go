// Package main provides the hazel CLI: it reports the registered operations
// and devices, and traces a small demo graph through backward.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/hazel-ml/hazel/backend/gpu"
	"github.com/hazel-ml/hazel/tensor"
)

const version = "v0.0.1-dev"

var (
	flagDevice = flag.String("device", "", "Device for the demo graph (cpu or gpu). Defaults to the configured device.")
	flagSeed   = flag.Uint64("seed", 0, "Seed for the random demo inputs; 0 keeps the environment setting.")
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

func newPlainTable(withHeader bool) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if withHeader && row < 0 {
				return headerRowStyle
			}
			if row%2 == 0 {
				s = oddRowStyle
			} else {
				s = evenRowStyle
			}
			if col == 0 {
				return s.Align(lipgloss.Right)
			}
			return s.Align(lipgloss.Left)
		})
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Hazel %s - a small reverse-mode autodiff tensor engine\n\n", version)
	fmt.Fprintln(out, "Usage: hazel [flags] <command>")
	fmt.Fprintln(out, "\nCommands:")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out, "  devices    Show the configured and available devices")
	fmt.Fprintln(out, "  ops        List the operations registered per device")
	fmt.Fprintln(out, "  demo       Build a small graph, run backward and print the gradients")
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()

	cfg, err := tensor.ConfigFromEnv()
	if err != nil {
		klog.Exitf("invalid environment: %+v", err)
	}
	if *flagDevice != "" {
		cfg.DefaultDevice = must.M1(tensor.ParseDevice(*flagDevice))
	}
	if *flagSeed != 0 {
		cfg.Seed = *flagSeed
	}
	tensor.Configure(cfg)

	args := flag.Args()
	if len(args) == 0 {
		usage()
		return
	}
	if len(args) > 1 {
		klog.Errorf("Too many arguments. See 'hazel -help'.")
		os.Exit(1)
	}
	switch args[0] {
	case "version":
		fmt.Printf("Hazel %s\n", version)
	case "devices":
		reportDevices()
	case "ops":
		reportOps()
	case "demo":
		runDemo()
	default:
		klog.Errorf("Unknown command %q. See 'hazel -help'.", args[0])
		os.Exit(1)
	}
}

func reportDevices() {
	fmt.Println(titleStyle.Render("Devices"))
	table := newPlainTable(true)
	table.Headers("Device", "Available", "Default", "# ops", "Adapter")
	for _, d := range tensor.Devices() {
		available := d == tensor.CPU || gpu.Available()
		adapter := "host"
		if d == tensor.GPU {
			adapter = "-"
			if name, err := gpu.Adapter(); err == nil {
				adapter = name
			}
		}
		table.Row(d.String(), fmt.Sprint(available), fmt.Sprint(d == tensor.DefaultDevice()),
			humanize.Comma(int64(len(tensor.Registered(d)))), adapter)
	}
	fmt.Println(table.Render())
}

func reportOps() {
	for _, d := range tensor.Devices() {
		names := tensor.Registered(d)
		if len(names) == 0 {
			continue
		}
		fmt.Println(titleStyle.Render(fmt.Sprintf("Operations on %s", d)))
		table := newPlainTable(false)
		for i, name := range names {
			table.Row(fmt.Sprint(i), name)
		}
		fmt.Println(table.Render())
	}
}

// runDemo computes loss = sum(relu(x @ w + b)) and prints every graph node
// together with the gradients of the leaves.
func runDemo() {
	device := tensor.DefaultDevice()
	x := tensor.Randn(tensor.Shape{4, 3}, tensor.WithDevice(device))
	w := tensor.Randn(tensor.Shape{3, 2}, tensor.WithDevice(device), tensor.WithRequiresGrad(true))
	b := tensor.Zeros(tensor.Shape{2}, tensor.WithDevice(device), tensor.WithRequiresGrad(true))

	loss := x.Matmul(w).Add(b).ReLU().Sum()
	must.M(loss.Backward())

	fmt.Println(titleStyle.Render("Graph"))
	graph := newPlainTable(true)
	graph.Headers("#", "Op", "Output", "Parents")
	for i, node := range tensor.Deepwalk(loss) {
		ctx := node.Context()
		parents := make([]string, len(ctx.Parents()))
		for j, p := range ctx.Parents() {
			parents[j] = fmt.Sprint([]int(p.Shape()))
		}
		graph.Row(fmt.Sprint(i), ctx.Name(), node.Data().Describe(), strings.Join(parents, ", "))
	}
	fmt.Println(graph.Render())

	fmt.Println(titleStyle.Render("Gradients"))
	grads := newPlainTable(true)
	grads.Headers("Leaf", "Shape", "Gradient")
	for _, leaf := range []struct {
		name string
		t    *tensor.Tensor
	}{{"w", w}, {"b", b}} {
		grads.Row(leaf.name, fmt.Sprint([]int(leaf.t.Shape())), leaf.t.Grad().Data().String())
	}
	fmt.Println(grads.Render())
	fmt.Printf("loss = %g on %s\n", loss.Item(), device)
}
