package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator translates headings and labels, e.g. with l10n.T.
func WithTranslator(translate func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = translate
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Preview Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), s.GeneratedAt.Format(time.RFC3339))

	// Source
	fmt.Fprintf(&b, "## %s\n\n", t("Source"))
	f.header(&b)
	f.row(&b, "File", s.Source.Path)
	f.row(&b, "File Size", formatBytes(s.Source.Bytes))
	f.row(&b, "Natural Size", formatSize(s.Source.NaturalWidth, s.Source.NaturalHeight))
	f.row(&b, "Working Size", formatSize(s.Source.Width, s.Source.Height))
	f.row(&b, "Scale", fmt.Sprintf("%.3f", s.Source.Scale))
	b.WriteString("\n")

	// Settings
	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	f.header(&b)
	f.row(&b, "Mode", s.Settings.Mode)
	f.row(&b, "Material", s.Settings.Material)
	if s.Settings.Mode != "sketch" {
		f.row(&b, "Depth", fmt.Sprintf("%d%%", s.Settings.DepthPercent))
	}
	texture := t("Procedural")
	if s.Settings.TextureApplied {
		texture = t("Applied")
	}
	f.row(&b, "Texture", texture)
	f.row(&b, "Blur Radius", fmt.Sprintf("%.0f px", s.Settings.BlurRadius))
	f.row(&b, "Contrast", fmt.Sprintf("%.2f / %.2f", s.Settings.DarkGain, s.Settings.LightGain))
	b.WriteString("\n")

	// Intensity map
	fmt.Fprintf(&b, "## %s\n\n", t("Intensity Map"))
	f.header(&b)
	f.row(&b, "Mean Stroke", fmt.Sprintf("%.3f", s.Coverage.MeanStroke))
	f.row(&b, "Stroke Std Dev", fmt.Sprintf("%.3f", s.Coverage.StdDevStroke))
	f.row(&b, "Engraved Pixels", fmt.Sprintf("%.1f%%", s.Coverage.EngravedRatio*100))
	b.WriteString("\n")

	// Timing
	fmt.Fprintf(&b, "## %s\n\n", t("Timing"))
	f.header(&b)
	f.row(&b, "Normalize", formatMs(s.Timing.NormalizeMs))
	f.row(&b, "Tone", formatMs(s.Timing.ToneMs))
	f.row(&b, "Composite", formatMs(s.Timing.CompositeMs))
	if s.Settings.Mode != "sketch" {
		f.row(&b, "Export", formatMs(s.Timing.ExportMs))
	}
	f.row(&b, "Total", formatMs(s.Timing.TotalMs))
	b.WriteString("\n")

	// Outputs
	if len(s.Outputs) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Outputs"))
		fmt.Fprintf(&b, "| %s | %s | %s |\n", t("File"), t("Format"), t("File Size"))
		b.WriteString("|---|---|---|\n")
		for _, o := range s.Outputs {
			name := o.Path
			if o.Transparent {
				name += " (" + t("transparent") + ")"
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", name, o.Format, formatBytes(o.Bytes))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	if f.version != "" {
		fmt.Fprintf(&b, "%s laserpreview %s\n", t("Generated by"), f.version)
	} else {
		fmt.Fprintf(&b, "%s laserpreview\n", t("Generated by"))
	}

	return b.String()
}

func (f *MarkdownFormatter) header(b *strings.Builder) {
	fmt.Fprintf(b, "| %s | %s |\n", f.translate("Item"), f.translate("Value"))
	b.WriteString("|---|---|\n")
}

func (f *MarkdownFormatter) row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", f.translate(label), value)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}

func formatSize(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}

func formatMs(ms int64) string {
	return fmt.Sprintf("%d ms", ms)
}

var _ Formatter = (*MarkdownFormatter)(nil)
