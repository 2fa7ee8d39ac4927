package layout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeManifest(t *testing.T) {
	const payload = `
version: 1
name: safety-pack
widgets:
  - descriptor:
      id: safety.widget.incident_log
      title: Incident Log
      icon: alert-triangle
      category: safety
      default_span: 2
      min_role: supervisor
    provider:
      name: Incident Provider
      summary: Reads incident reports from the safety API.
      entry: github.com/example/safety.NewIncidentProvider
      package: github.com/example/safety
      docs_url: https://example.com/widgets/incidents
      capabilities: ["html","json"]
`
	doc, err := DecodeManifest(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, doc.Widgets, 1)

	widget := doc.Widgets[0]
	assert.Equal(t, "safety.widget.incident_log", widget.Descriptor.ID)
	assert.Equal(t, "Incident Log", widget.Descriptor.Title)
	assert.Equal(t, RoleSupervisor, widget.Descriptor.MinRole)
	assert.Equal(t, 2, widget.Descriptor.DefaultSpan)
	assert.Equal(t, "Incident Provider", widget.Provider.Name)
	assert.Equal(t, "github.com/example/safety.NewIncidentProvider", widget.Provider.Entry)
}

func TestDecodeManifestRejectsUnknownFields(t *testing.T) {
	const payload = `
version: 1
widgets:
  - descriptor:
      id: w1
      title: One
    unexpected: true
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
}

func TestManifestValidation(t *testing.T) {
	cases := []struct {
		name    string
		doc     WidgetManifestDocument
		wantErr string
	}{
		{
			name:    "unsupported version",
			doc:     WidgetManifestDocument{Version: "2"},
			wantErr: "unsupported manifest version",
		},
		{
			name: "missing id",
			doc: WidgetManifestDocument{
				Version: manifestVersionV1,
				Widgets: []ManifestWidget{{Descriptor: WidgetDescriptor{Title: "One"}}},
			},
			wantErr: "missing descriptor.id",
		},
		{
			name: "missing title",
			doc: WidgetManifestDocument{
				Version: manifestVersionV1,
				Widgets: []ManifestWidget{{Descriptor: WidgetDescriptor{ID: "w1"}}},
			},
			wantErr: "missing descriptor.title",
		},
		{
			name: "unknown role",
			doc: WidgetManifestDocument{
				Version: manifestVersionV1,
				Widgets: []ManifestWidget{{Descriptor: WidgetDescriptor{ID: "w1", Title: "One", MinRole: "foreman"}}},
			},
			wantErr: "unknown min_role",
		},
		{
			name: "duplicate id",
			doc: WidgetManifestDocument{
				Version: manifestVersionV1,
				Widgets: []ManifestWidget{
					{Descriptor: WidgetDescriptor{ID: "w1", Title: "One"}},
					{Descriptor: WidgetDescriptor{ID: "w1", Title: "Two"}},
				},
			},
			wantErr: "duplicates widget id",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.doc.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestRegistryLoadManifestDocument(t *testing.T) {
	doc := &WidgetManifestDocument{
		Version: manifestVersionV1,
		Widgets: []ManifestWidget{
			{
				Descriptor: WidgetDescriptor{
					ID:    "acme.widget.equipment",
					Title: "Equipment Tracker",
				},
				Provider: ManifestProvider{
					Name:    "Equipment Provider",
					Summary: "Fetches equipment utilization",
					Entry:   "github.com/acme/widgets.NewEquipmentProvider",
				},
			},
		},
	}
	reg := NewEmptyRegistry()

	err := reg.LoadManifestDocument(doc)
	require.NoError(t, err)

	desc, ok := reg.Descriptor("acme.widget.equipment")
	require.True(t, ok)
	assert.Equal(t, "Equipment Tracker", desc.Title)

	meta, ok := reg.ProviderMetadata("acme.widget.equipment")
	require.True(t, ok)
	assert.Equal(t, "Equipment Provider", meta.Name)
}

func TestLoadManifestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "widgets.yaml")
	content := `
version: 1
name: field-pack
widgets:
  - descriptor:
      id: field.widget.daily_log
      title: Daily Log
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	reg := NewEmptyRegistry()
	doc, err := reg.LoadManifestFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)

	_, ok := reg.Descriptor("field.widget.daily_log")
	assert.True(t, ok)
}
