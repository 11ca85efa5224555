package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/docker/go-units"

	"github.com/bnema/mediastack/internal/adapters/in/cli/ui/components"
	"github.com/bnema/mediastack/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/mediastack/internal/domain"
)

var cliWriteLine = func(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

var cliWritef = func(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func cliRenderTitle(msg string) string {
	return styles.Theme.Title.Render(msg)
}

func cliRenderMuted(msg string) string {
	return styles.Theme.Muted.Render(msg)
}

func cliRenderEmptyState(msg string) string {
	return cliRenderMuted(msg)
}

func cliRenderListItem(msg string) string {
	return styles.RenderListItem(msg)
}

func cliRenderMeta(label, value string) string {
	return styles.Theme.Bold.Render(label) + " " + styles.Theme.Muted.Render(value)
}

func cliRenderSuccess(msg string) string {
	return styles.RenderSuccess(msg)
}

func cliRenderWarning(msg string) string {
	return styles.RenderWarning(msg)
}

func cliRenderError(msg string) string {
	return styles.RenderError(msg)
}

func cliRenderInfo(msg string) string {
	return styles.RenderInfo(msg)
}

func writePlan(w io.Writer, operation string, plan domain.ExecutionPlan) {
	scope := strings.Join(plan.Names(), ", ")
	if plan.All {
		scope = fmt.Sprintf("all %d services", plan.Len())
	}
	_ = cliWriteLine(w, cliRenderTitle(fmt.Sprintf("%s: %s", capitalize(operation), scope)))
}

func writeWarnings(w io.Writer, warnings []domain.Warning) {
	for _, warning := range warnings {
		_ = cliWriteLine(w, cliRenderWarning(fmt.Sprintf("[%s] %s", warning.Step, warning.Message)))
	}
}

func writeLifecycleReport(w io.Writer, report *domain.LifecycleReport) {
	writePlan(w, report.Operation, report.Plan)
	writeWarnings(w, report.Warnings)

	if len(report.Cleanup) > 0 {
		_ = cliWriteLine(w, "")
		writePhases(w, report.Cleanup)
	}

	if report.Stage != domain.StageReported {
		return
	}

	_ = cliWriteLine(w, "")
	writeHealthReport(w, report.Health)

	if len(report.Endpoints) > 0 {
		_ = cliWriteLine(w, "")
		writeEndpoints(w, report.Endpoints)
	}
}

func writeStopReport(w io.Writer, report *domain.StopReport) {
	if !report.Teardown {
		_ = cliWriteLine(w, cliRenderSuccess("Stopped "+strings.Join(report.Plan.Names(), ", ")))
		return
	}

	_ = cliWriteLine(w, cliRenderSuccess("Stack torn down"))
	if report.Networks != nil {
		writePhases(w, []domain.PhaseResult{*report.Networks})
	}
}

// writeHealthReport renders a nil report as the empty running set.
func writeHealthReport(w io.Writer, report *domain.HealthReport) {
	if report == nil {
		_ = cliWriteLine(w, cliRenderEmptyState("No running containers to evaluate"))
		return
	}

	rows := make([][]string, 0, len(report.Containers))
	for _, c := range report.Containers {
		rows = append(rows, []string{
			c.Name,
			components.StateIndicator(c.State),
			components.StateIndicator(string(c.Class)),
			c.Detail,
		})
	}
	_ = cliWriteLine(w, components.HealthTable(rows))

	summary := fmt.Sprintf("%d healthy, %d unhealthy, %d other (%d total)",
		report.Summary.Healthy, report.Summary.Unhealthy, report.Summary.Other, report.Summary.Total())
	if report.Passed() {
		_ = cliWriteLine(w, cliRenderSuccess(summary))
		return
	}
	_ = cliWriteLine(w, cliRenderError(summary))
}

func writeEndpoints(w io.Writer, endpoints []domain.Endpoint) {
	rows := make([][]string, 0, len(endpoints))
	for _, ep := range endpoints {
		rows = append(rows, []string{ep.Service, ep.URL})
	}
	_ = cliWriteLine(w, components.EndpointTable(rows))
}

func writeServiceTable(w io.Writer, containers []domain.ServiceContainer) {
	if len(containers) == 0 {
		_ = cliWriteLine(w, cliRenderEmptyState("No containers found for this project"))
		return
	}

	rows := make([][]string, 0, len(containers))
	for _, c := range containers {
		rows = append(rows, []string{
			c.Service,
			c.Name,
			components.StateIndicator(c.State),
			components.StateIndicator(c.Health),
			strings.Join(c.Ports, ", "),
		})
	}
	_ = cliWriteLine(w, components.ServiceTable(rows))
}

func writePhases(w io.Writer, phases []domain.PhaseResult) {
	for _, phase := range phases {
		line := fmt.Sprintf("%s %s: %d removed",
			components.RenderStatusBadge(components.ParseStatus(string(phase.Status)), string(phase.Status)),
			phase.Phase, len(phase.Removed))
		if len(phase.Kept) > 0 {
			line += fmt.Sprintf(", %d kept", len(phase.Kept))
		}
		if phase.SpaceReclaimed > 0 {
			line += ", " + units.BytesSize(float64(phase.SpaceReclaimed)) + " reclaimed"
		}
		_ = cliWriteLine(w, line)

		for _, name := range phase.Removed {
			_ = cliWriteLine(w, "  "+cliRenderListItem(name))
		}
		for _, name := range phase.Kept {
			_ = cliWriteLine(w, "  "+cliRenderListItem(name+" "+cliRenderMuted("(kept)")))
		}
		for _, msg := range phase.Errors {
			_ = cliWriteLine(w, "  "+cliRenderWarning(msg))
		}
	}
}

func writeCleanupReport(w io.Writer, report domain.CleanupReport) {
	writePhases(w, report.Phases)
	_ = cliWriteLine(w, "")
	_ = cliWriteLine(w, cliRenderMeta("Space reclaimed:", units.BytesSize(float64(report.SpaceReclaimed()))))
	if report.DiskUsage != nil {
		writeDiskUsage(w, *report.DiskUsage)
	}
}

func writeDiskUsage(w io.Writer, usage domain.DiskUsage) {
	_ = cliWriteLine(w, components.KeyValueTable([][]string{
		{"Images", units.HumanSize(float64(usage.Images))},
		{"Containers", units.HumanSize(float64(usage.Containers))},
		{"Volumes", units.HumanSize(float64(usage.Volumes))},
		{"Build cache", units.HumanSize(float64(usage.BuildCache))},
		{"Total", units.HumanSize(float64(usage.Total()))},
	}))
}

// sortedRows returns values as key/value rows in key order.
func sortedRows(values map[string]string) [][]string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, values[k]})
	}
	return rows
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
