package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/promakler/sitekit/pkg/assets"
	"github.com/promakler/sitekit/pkg/check"
	"github.com/promakler/sitekit/pkg/diagnostics"
	"github.com/promakler/sitekit/pkg/manifest"
	"github.com/urfave/cli/v3"
)

func runSections(ctx context.Context, cmd *cli.Command) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	reg := p.registry()

	if typ := cmd.Args().First(); typ != "" {
		if !reg.HasSection(typ) {
			return fmt.Errorf("unknown section type %q", typ)
		}
		t := newTable("Variant", "Name", "Component", "Path")
		for _, key := range reg.Variants(typ) {
			c := reg.Lookup(typ, key)
			t.Row(key, manifest.Title(key), c.Name, c.Path)
		}
		fmt.Println(t.Render())
		return nil
	}

	t := newTable("Type", "Default", "Variants")
	for _, e := range reg.Entries() {
		m := manifest.Build("", "", []manifest.Entry{e})
		t.Row(e.Type, m.Sections[0].DefaultVariant, strings.Join(e.Keys(), ", "))
	}
	fmt.Println(t.Render())
	return nil
}

func runAssets(ctx context.Context, cmd *cli.Command) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	catalog := assets.Default().Merge(p.cfg.Assets.Overrides)

	if cmd.Bool("check") {
		collector := diagnostics.NewCollector(
			diagnostics.WithOnReport(newLogPrinter(os.Stdout).Print),
		)
		check.Assets(catalog, p.cfg.Assets.PublicDir, collector)
		return reportChecks(collector, fmt.Sprintf("%d asset(s)", catalog.Len()), true)
	}

	t := newTable("Key", "URL")
	for _, e := range catalog.Entries() {
		t.Row(e.Key, e.URL)
	}
	fmt.Println(t.Render())
	return nil
}

func newTable(headers ...string) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	if isTerminal(os.Stdout) {
		header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cba6f7")).Padding(0, 1)
		cell := lipgloss.NewStyle().Padding(0, 1)
		t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	}
	return t
}
