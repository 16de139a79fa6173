package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/attrparse/internal/model"
)

const footer = "_Generated by attrparse. Fields are read mechanically from listing attributes and may be incomplete; check the source before relying on them._"

// Renderer writes reports as JSON, Markdown or a terminal summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as a Markdown document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(report)), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Markdown renders the report as Markdown
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", subjectOf(report))
	fmt.Fprintf(&b, "- **Source:** %s\n", report.Source)
	fmt.Fprintf(&b, "- **Extracted:** %s\n", report.FetchedAt.Format("2006-01-02 15:04:05 MST"))
	if report.Finder != "" {
		fmt.Fprintf(&b, "- **Attributes from:** %s (%d)\n", report.Finder, len(report.Attributes))
	}
	if report.FetchMeta != nil && report.FetchMeta.FromCache {
		b.WriteString("- **Page served from cache**\n")
	}
	b.WriteString("\n## Fields\n\n")

	keys := sortedKeys(report.Fields)
	if len(keys) == 0 {
		b.WriteString("No fields recognized.\n")
	} else {
		b.WriteString("| Field | Value |\n|---|---|\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(k), escapeCell(FormatValue(report.Fields[k])))
		}
	}

	if len(report.Attributes) > 0 {
		b.WriteString("\n## Attributes\n\n")
		for _, a := range report.Attributes {
			if a.HasKey() {
				fmt.Fprintf(&b, "- **%s:** %s\n", a.Key, a.Value)
			} else {
				fmt.Fprintf(&b, "- %s\n", a.Value)
			}
		}
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "\n---\n\n%s\n", footer)
	}

	return b.String()
}

// RenderSummary prints a short field listing
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	_, _ = fmt.Fprintf(w, "\n%s\n", subjectOf(report))
	_, _ = fmt.Fprintf(w, "  %d attributes, %d fields\n", len(report.Attributes), len(report.Fields))
	for _, k := range sortedKeys(report.Fields) {
		_, _ = fmt.Fprintf(w, "  %-14s %s\n", k, FormatValue(report.Fields[k]))
	}
	_, _ = fmt.Fprintln(w)
}

// FormatValue renders a field value, keeping floats out of exponent form
func FormatValue(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

func subjectOf(report *model.Report) string {
	if report.Subject != "" {
		return report.Subject
	}
	return report.Source
}

func sortedKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
