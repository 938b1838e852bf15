package figstudio

import (
	"encoding/json"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const workspaceIDLength = 12

// Name of the workspace JSON inside an export pack.
const ProjectFileName = "project.json"

// Workspace is the saved state of a figure session.
type Workspace struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Profile   string          `json:"profile"`
	DPI       int             `json:"dpi"`
	AutoCrop  bool            `json:"autoCrop"`
	Padding   int             `json:"padding"`
	Elements  []ElementParams `json:"elements,omitempty"`
	Legend    []LegendItem    `json:"legend,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

func NewWorkspace(profile OutputProfile) (*Workspace, error) {
	id, err := gonanoid.New(workspaceIDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate workspace id: %w", err)
	}

	return &Workspace{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		Profile:   profile.Name,
		DPI:       profile.DPI,
		AutoCrop:  profile.AutoCrop,
	}, nil
}

func MarshalWorkspace(ws *Workspace) ([]byte, error) {
	data, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal workspace: %w", err)
	}
	return data, nil
}

func UnmarshalWorkspace(data []byte) (*Workspace, error) {
	var ws Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("failed to parse workspace: %v: %w", err, ErrInvalidInput)
	}
	return &ws, nil
}

// ExportPack bundles the workspace JSON, a standalone LaTeX document with
// every element and the legend, and one .tikz file per element.
func ExportPack(ws *Workspace) ([]byte, error) {
	project, err := MarshalWorkspace(ws)
	if err != nil {
		return nil, err
	}

	entries := []ZipEntry{{Name: ProjectFileName, Data: project}}

	var bodies []string
	for i, el := range ws.Elements {
		snippet, err := GenerateElement(el)
		if err != nil {
			// an unknown kind here is bad workspace content, not a missing template
			return nil, fmt.Errorf("element %d: %v: %w", i+1, err, ErrInvalidInput)
		}
		bodies = append(bodies, snippet)
		entries = append(entries, ZipEntry{
			Name: fmt.Sprintf("elements/%02d_%s.tikz", i+1, el.Kind),
			Data: []byte(snippet),
		})
	}

	if len(ws.Legend) > 0 {
		legend, err := GenerateLegend(ws.Legend)
		if err != nil {
			return nil, fmt.Errorf("legend: %v: %w", err, ErrInvalidInput)
		}
		bodies = append(bodies, legend)
		entries = append(entries, ZipEntry{Name: "legend.tikz", Data: []byte(legend)})
	}

	doc, err := StandaloneDocument(bodies...)
	if err != nil {
		return nil, err
	}
	entries = append(entries, ZipEntry{Name: "figure.tex", Data: []byte(doc)})

	return BuildZip(entries)
}
