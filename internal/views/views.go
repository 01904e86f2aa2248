package views

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Paintersrp/curio/internal/catalog"
	"github.com/Paintersrp/curio/internal/dedupe"
	"github.com/Paintersrp/curio/internal/snapshot"
)

var kindLabelMap = map[catalog.Kind]string{
	catalog.KindImage:    "image",
	catalog.KindVideo:    "video",
	catalog.KindAudio:    "audio",
	catalog.KindDocument: "document",
	catalog.KindOther:    "other",
}

// Renderer formats catalog entities for terminal output using the styles of
// the configured theme.
type Renderer struct {
	width int

	title  lipgloss.Style
	name   lipgloss.Style
	id     lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
	accent lipgloss.Style
}

// NewRenderer builds a renderer for the given theme ("light" or "dark").
func NewRenderer(theme string) *Renderer {
	accentColor := lipgloss.Color("#0AF")
	mutedColor := lipgloss.Color("#666666")
	if theme == "dark" {
		accentColor = lipgloss.Color("#5AF")
		mutedColor = lipgloss.Color("#999999")
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	return &Renderer{
		width:  width,
		title:  lipgloss.NewStyle().Bold(true),
		name:   lipgloss.NewStyle().Bold(true).Foreground(accentColor),
		id:     lipgloss.NewStyle().Foreground(mutedColor),
		label:  lipgloss.NewStyle().Foreground(mutedColor).Width(12),
		muted:  lipgloss.NewStyle().Foreground(mutedColor),
		accent: lipgloss.NewStyle().Foreground(accentColor),
	}
}

// ObjectLine renders a single-line summary of an object for result lists.
func (r *Renderer) ObjectLine(obj *catalog.Object, tags []string) string {
	var b strings.Builder
	b.WriteString(r.name.Render(obj.Name))
	b.WriteString(" ")
	b.WriteString(r.muted.Render(fmt.Sprintf("[%s]", kindLabel(obj.Kind))))
	if len(tags) > 0 {
		rendered := make([]string, 0, len(tags))
		for _, tag := range tags {
			rendered = append(rendered, r.accent.Render("#"+tag))
		}
		b.WriteString(" ")
		b.WriteString(strings.Join(rendered, " "))
	}
	b.WriteString("\n  ")
	b.WriteString(r.id.Render(obj.ID))
	if obj.Location != "" {
		b.WriteString(r.muted.Render("  " + truncate(obj.Location, r.width-len(obj.ID)-4)))
	}
	return b.String()
}

// ObjectDetail renders the full record of an object.
func (r *Renderer) ObjectDetail(obj *catalog.Object, tags, collections []string) string {
	lines := []string{
		r.title.Render(obj.Name),
		r.field("ID", obj.ID),
		r.field("Type", kindLabel(obj.Kind)),
		r.field("Location", obj.Location),
	}
	if obj.Description != "" {
		lines = append(lines, r.field("Description", obj.Description))
	}
	if len(tags) > 0 {
		lines = append(lines, r.field("Tags", strings.Join(tags, ", ")))
	}
	if len(collections) > 0 {
		lines = append(lines, r.field("Collections", strings.Join(collections, ", ")))
	}
	lines = append(
		lines,
		r.field("Created", obj.CreatedAt.Format(time.RFC3339)),
		r.field("Updated", obj.UpdatedAt.Format(time.RFC3339)),
	)
	return strings.Join(lines, "\n")
}

// TagLine renders a tag with its member count.
func (r *Renderer) TagLine(name string, members int) string {
	return fmt.Sprintf("%s %s",
		r.accent.Render("#"+name),
		r.muted.Render(fmt.Sprintf("(%d)", members)),
	)
}

// CollectionLine renders a collection summary.
func (r *Renderer) CollectionLine(col *catalog.Collection, members int) string {
	line := fmt.Sprintf("%s %s",
		r.name.Render(col.Name),
		r.muted.Render(fmt.Sprintf("(%d objects)", members)),
	)
	if col.Description != "" {
		line += "\n  " + r.muted.Render(col.Description)
	}
	return line
}

// DuplicateGroup renders one group of identical files.
func (r *Renderer) DuplicateGroup(g dedupe.Group) string {
	var b strings.Builder
	b.WriteString(r.title.Render(fmt.Sprintf(
		"%d copies, %s wasted",
		len(g.Paths),
		formatBytes(g.Wasted()),
	)))
	b.WriteString(" ")
	b.WriteString(r.id.Render(shortHash(g.Hash)))
	for _, p := range g.Paths {
		b.WriteString("\n  ")
		b.WriteString(p)
	}
	return b.String()
}

// SnapshotLine renders one history entry.
func (r *Renderer) SnapshotLine(e snapshot.Entry) string {
	return fmt.Sprintf("%s %s %s",
		r.accent.Render(shortHash(e.Hash)),
		r.muted.Render(e.When.Format("2006-01-02 15:04")),
		strings.TrimSpace(e.Message),
	)
}

func (r *Renderer) field(label, value string) string {
	return r.label.Render(label) + " " + value
}

func kindLabel(kind catalog.Kind) string {
	if label, ok := kindLabelMap[kind]; ok {
		return label
	}
	return kindLabelMap[catalog.KindOther]
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
