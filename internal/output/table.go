package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/strixsec/strix/internal/engine"
)

// WriteHosts renders the resolved hosts and their open ports as a table.
func WriteHosts(w io.Writer, result *engine.ScanResult, noColor bool) {
	if len(result.Domains) == 0 {
		fmt.Fprintln(w, "\nNo live hosts discovered.")
		return
	}

	var rows [][]string
	for _, d := range result.Domains {
		rows = append(rows, []string{d.Host, joinPorts(d.OpenPorts)})
	}

	fmt.Fprintln(w)
	writeTable(w, []string{"Host", "Open Ports"}, rows, noColor)
}

// WriteFindings renders the vulnerability findings as a table.
func WriteFindings(w io.Writer, result *engine.ScanResult, noColor bool) {
	if len(result.Findings) == 0 {
		fmt.Fprintln(w, "\nNo findings.")
		return
	}

	var rows [][]string
	for _, f := range result.Findings {
		rows = append(rows, []string{string(f.Kind), f.Module, f.URL})
	}

	fmt.Fprintln(w)
	writeTable(w, []string{"Finding", "Module", "URL"}, rows, noColor)
}

func writeTable(w io.Writer, headers []string, rows [][]string, noColor bool) {
	if noColor {
		writeSimpleTable(w, headers, rows)
		return
	}

	t := table.New().
		Headers(headers...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
			}
			return lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		})

	for _, row := range rows {
		t.Row(row...)
	}

	fmt.Fprintln(w, t.Render())
}

func writeSimpleTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(w, " | ")
		}
		fmt.Fprintf(w, "%-*s", widths[i], h)
	}
	fmt.Fprintln(w)

	for i, width := range widths {
		if i > 0 {
			fmt.Fprint(w, "-+-")
		}
		fmt.Fprint(w, strings.Repeat("-", width))
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, " | ")
			}
			fmt.Fprintf(w, "%-*s", widths[i], cell)
		}
		fmt.Fprintln(w)
	}
}

func joinPorts(ports []int) string {
	if len(ports) == 0 {
		return "-"
	}
	strs := make([]string, len(ports))
	for i, p := range ports {
		strs[i] = strconv.Itoa(p)
	}
	return strings.Join(strs, ",")
}
