package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/sitedeck/go-layout/components/layout"
)

type cli struct {
	Scaffold scaffoldCmd `cmd:"" help:"Scaffold a widget descriptor, provider stub, and manifest entry."`
}

type scaffoldCmd struct {
	ID              string   `required:"" help:"Fully-qualified widget id (e.g. site.widget.crew_hours)."`
	Title           string   `required:"" help:"Display title for the widget."`
	Icon            string   `help:"Icon slug recorded in the descriptor."`
	Category        string   `default:"custom" help:"Widget category (schedule, budget, field, etc.)."`
	Span            int      `default:"1" help:"Default column span (1-3)."`
	MinRole         string   `name:"min-role" help:"Minimum role allowed to see the widget (member, supervisor, ...)."`
	Hidden          bool     `help:"Mark the widget hidden by default."`
	ManifestPath    string   `required:"" type:"path" help:"Path to the widget manifest YAML file to update."`
	SchemaPath      string   `type:"path" help:"Optional path to a JSON schema file for the widget configuration."`
	Tag             []string `help:"Optional tags to include in the manifest (use multiple --tag flags)."`
	Maintainer      []string `help:"Maintainers to record in the manifest."`
	Capabilities    []string `help:"Provider capability labels (html,json,sse,...)."`
	DocsURL         string   `help:"Link to provider documentation."`
	Channel         string   `help:"Distribution channel label (community, partner, internal)."`
	ProviderPackage string   `default:"github.com/sitedeck/go-layout/components/layout" help:"Go package where the provider factory lives."`
	ProviderEntry   string   `help:"Factory identifier recorded in the manifest (defaults to New<Widget>Provider)."`
	ProviderOut     string   `help:"File path for the generated provider stub (defaults to components/layout/providers/<id>_provider.go)."`
	Overwrite       bool     `help:"Overwrite existing provider stub / manifest entry if present."`
	SkipProvider    bool     `name:"skip-provider" help:"Skip provider stub generation."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Widget scaffolding utility for go-layout manifests."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("layoutctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, widget := range doc.Widgets {
			if widget.Descriptor.ID == cmd.ID {
				return fmt.Errorf("layoutctl: manifest already defines widget %s (use --overwrite to replace)", cmd.ID)
			}
		}
	}

	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}

	baseName := deriveBaseName(cmd.ID)
	providerType := baseName + "Provider"
	providerEntry := cmd.ProviderEntry
	if providerEntry == "" {
		providerEntry = fmt.Sprintf("%s.New%s", cmd.ProviderPackage, providerType)
	}

	entry := layout.ManifestWidget{
		Descriptor: layout.WidgetDescriptor{
			ID:            cmd.ID,
			Title:         cmd.Title,
			Icon:          cmd.Icon,
			Category:      cmd.Category,
			DefaultSpan:   cmd.Span,
			MinRole:       layout.Role(cmd.MinRole),
			DefaultHidden: cmd.Hidden,
			Schema:        schema,
		},
		Provider: layout.ManifestProvider{
			Name:         fmt.Sprintf("%s Provider", cmd.Title),
			Summary:      cmd.Title,
			Entry:        providerEntry,
			Package:      cmd.ProviderPackage,
			DocsURL:      cmd.DocsURL,
			Capabilities: cmd.Capabilities,
			Channel:      cmd.Channel,
		},
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}

	if cmd.Overwrite {
		replaced := false
		for idx := range doc.Widgets {
			if doc.Widgets[idx].Descriptor.ID == cmd.ID {
				doc.Widgets[idx] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			doc.Widgets = append(doc.Widgets, entry)
		}
	} else {
		doc.Widgets = append(doc.Widgets, entry)
	}

	sort.Slice(doc.Widgets, func(i, j int) bool {
		return doc.Widgets[i].Descriptor.ID < doc.Widgets[j].Descriptor.ID
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}

	if cmd.SkipProvider {
		fmt.Fprintf(os.Stdout, "✓ Added %s to %s (provider entry recorded as %s)\n", cmd.ID, manifestPath, providerEntry)
		return nil
	}

	providerPath := cmd.ProviderOut
	if providerPath == "" {
		providerPath = filepath.Join("components", "layout", "providers", fmt.Sprintf("%s_provider.go", sanitizeFileName(cmd.ID)))
	}
	if err := writeProviderStub(providerPath, providerType, cmd.ID, cmd.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s and generated %s\n", cmd.ID, manifestPath, providerPath)
	return nil
}

func (cmd *scaffoldCmd) validate() error {
	if !strings.Contains(cmd.ID, ".") {
		return fmt.Errorf("layoutctl: widget id %s must contain at least one '.' segment", cmd.ID)
	}
	if cmd.Span < 1 || cmd.Span > 3 {
		return fmt.Errorf("layoutctl: span %d must be between 1 and 3", cmd.Span)
	}
	if cmd.MinRole != "" && layout.Role(cmd.MinRole).Rank() == 0 {
		return fmt.Errorf("layoutctl: unknown role %q", cmd.MinRole)
	}
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("layoutctl: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("layoutctl: parse schema JSON: %w", err)
	}
	return schema, nil
}

func loadOrInitManifest(path string) (*layout.WidgetManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := &layout.WidgetManifestDocument{
				Version: layout.ManifestVersion,
				Widgets: []layout.ManifestWidget{},
				Source:  path,
			}
			return doc, nil
		}
		return nil, fmt.Errorf("layoutctl: stat manifest: %w", err)
	}
	doc, err := layout.ReadManifest(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func writeManifest(path string, doc *layout.WidgetManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("layoutctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("layoutctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("layoutctl: write manifest: %w", err)
	}
	return nil
}

func writeProviderStub(path, providerType, id string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("layoutctl: provider stub %s already exists (use --overwrite or --provider-out)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("layoutctl: mkdir provider dir: %w", err)
	}
	content := fmt.Sprintf(`package layout

import (
	"context"
)

// %s fetches data for %s widgets.
type %s struct{}

// New%s wires the provider into the layout registry.
func New%s() Provider {
	return &%s{}
}

// Fetch retrieves the widget payload. Replace with your implementation.
func (p *%s) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	_ = meta // TODO: use viewer context / configuration
	return WidgetData{
		"message": "replace with real data",
	}, nil
}
`, providerType, id, providerType, providerType, providerType, providerType, providerType)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("layoutctl: write provider stub: %w", err)
	}
	return nil
}

func deriveBaseName(id string) string {
	parts := strings.Split(id, ".")
	slug := parts[len(parts)-1]
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = id
	}
	return strcase.ToCamel(slug)
}

func sanitizeFileName(id string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_", "/", "_", " ", "_")
	return strings.ToLower(replacer.Replace(id))
}
