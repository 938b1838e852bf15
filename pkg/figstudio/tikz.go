package figstudio

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"text/template"
)

type ElementKind string

const (
	ElementCell     ElementKind = "cell"
	ElementReceptor ElementKind = "receptor"
	ElementNucleus  ElementKind = "nucleus"
)

var ElementKinds = []ElementKind{ElementCell, ElementReceptor, ElementNucleus}

type Shape string

const (
	ShapeCircle       Shape = "circle"
	ShapeEllipse      Shape = "ellipse"
	ShapeRectangle    Shape = "rectangle"
	ShapeDoubleCircle Shape = "double circle"
)

// TikZ node options for each shape. Unknown shapes fall back to circle.
var shapeOptions = map[Shape]string{
	ShapeCircle:       "circle",
	ShapeEllipse:      "ellipse",
	ShapeRectangle:    "rectangle",
	ShapeDoubleCircle: "circle, double, double distance=2pt",
}

func (s Shape) option() string {
	if opt, ok := shapeOptions[s]; ok {
		return opt
	}
	return shapeOptions[ShapeCircle]
}

type ElementParams struct {
	Kind          ElementKind   `json:"kind"`
	Label         string        `json:"label"`
	Color         string        `json:"color"`
	Shape         Shape         `json:"shape"`
	LineThickness LineThickness `json:"lineThickness"`
	Shadow        bool          `json:"shadow"`
}

type elementPreset struct {
	shape   Shape
	minSize string
}

// An empty shape leaves the choice to the caller.
var elementPresets = map[ElementKind]elementPreset{
	ElementCell:     {minSize: "minimum size=2.5cm"},
	ElementReceptor: {shape: ShapeRectangle, minSize: "minimum width=1.0cm, minimum height=0.4cm"},
	ElementNucleus:  {shape: ShapeCircle, minSize: "minimum size=1.5cm"},
}

var nodeTemplate = template.Must(template.New("node").Parse(`\begin{tikzpicture}
\node [
    {{.Shape}},
    draw,
    fill=mycolor!20,
    {{.LineThickness}},
    {{.MinSize}},
    inner sep=5pt,
    align=center{{if .Shadow}}, drop shadow{{end}}
] (mycell) at (0,0) {{"{"}}{{.Label}}{{"}"}};
\end{tikzpicture}`))

var elementTemplate = template.Must(template.New("element").Parse(`% Add this to your preamble:
\definecolor{mycolor}{HTML}{{"{"}}{{.Color}}{{"}"}}

{{.Body}}`))

var documentTemplate = template.Must(template.New("document").Parse(`\documentclass[tikz,border=10pt]{standalone}
\usepackage[svgnames]{xcolor}
\usetikzlibrary{shadows,arrows.meta,positioning,shapes.geometric,calc}
\begin{document}
{{.}}
\end{document}`))

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// tikzLabel turns typed or literal "\n" line breaks into TikZ line breaks.
func tikzLabel(label string) string {
	label = strings.ReplaceAll(label, `\n`, `\\ `)
	return strings.ReplaceAll(label, "\n", `\\ `)
}

func ParseElementKind(s string) (ElementKind, error) {
	kind := ElementKind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := elementPresets[kind]; !ok {
		return "", fmt.Errorf("element kind %q: %w", s, ErrUnknownTemplate)
	}
	return kind, nil
}

// GenerateElement renders a single node snippet with its color definition.
func GenerateElement(p ElementParams) (string, error) {
	kind, err := ParseElementKind(string(p.Kind))
	if err != nil {
		return "", err
	}
	preset := elementPresets[kind]

	shape := p.Shape
	if preset.shape != "" {
		shape = preset.shape
	}

	thickness := p.LineThickness
	if thickness == "" {
		thickness = LineThick
	}
	if !thickness.Valid() {
		return "", fmt.Errorf("line thickness %q: %w", thickness, ErrInvalidInput)
	}

	color := p.Color
	if color == "" {
		color = "#FFFFFF"
	}
	digits, err := HexDigits(color)
	if err != nil {
		return "", err
	}

	body, err := render(nodeTemplate, struct {
		Shape         string
		LineThickness LineThickness
		MinSize       string
		Shadow        bool
		Label         string
	}{
		Shape:         shape.option(),
		LineThickness: thickness,
		MinSize:       preset.minSize,
		Shadow:        p.Shadow,
		Label:         tikzLabel(p.Label),
	})
	if err != nil {
		return "", err
	}

	return render(elementTemplate, struct {
		Color string
		Body  string
	}{Color: digits, Body: body})
}

type LegendItem struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Shape string `json:"shape"`
	// TikZ line style, solid when empty.
	Style string `json:"style"`
}

// Vertical distance between legend rows in cm.
const legendRowPitch = 0.8

func formatCoord(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		// avoid "-0"
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// GenerateLegend renders one swatch and label per item, top to bottom.
func GenerateLegend(items []LegendItem) (string, error) {
	lines := []string{
		`\begin{tikzpicture}`,
		`\node at (0.3, 0.8) {\textbf{Legend Index}};`,
	}

	y := 0.0
	for i, item := range items {
		digits, err := HexDigits(item.Color)
		if err != nil {
			return "", fmt.Errorf("legend item %d: %w", i+1, err)
		}

		shape := strings.TrimSpace(item.Shape)
		if shape == "" {
			shape = string(ShapeCircle)
		}
		style := strings.TrimSpace(item.Style)
		if style == "" {
			style = "solid"
		}

		yy := formatCoord(y)
		lines = append(lines,
			fmt.Sprintf(`\node[%s, draw, %s, fill={[HTML]{%s}!25}, minimum size=0.45cm] at (0,%s) {};`, shape, style, digits, yy),
			fmt.Sprintf(`\node[anchor=west] at (0.6,%s) {%s};`, yy, tikzLabel(item.Label)),
		)
		y -= legendRowPitch
	}

	lines = append(lines, `\end{tikzpicture}`)
	return strings.Join(lines, "\n"), nil
}

// StandaloneDocument wraps one or more tikzpicture bodies into a compilable document.
func StandaloneDocument(bodies ...string) (string, error) {
	return render(documentTemplate, strings.Join(bodies, "\n\n"))
}

var builtinTemplates = map[string]string{
	"Mitochondria (Bezier)": `\begin{tikzpicture}
% Outer membrane
\draw[thick] (0,0) ellipse (4 and 2);
% Inner membrane (cristae style)
\draw[thick] (-3,0)
.. controls (-2.5,1) and (-1.5,1) .. (-1,0)
.. controls (-0.5,-1) and (0.5,-1) .. (1,0)
.. controls (1.5,1) and (2.5,1) .. (3,0);
% Labels
\node at (0,2.4) {\textbf{Outer Membrane}};
\node at (0,-2.4) {\textbf{Inner Membrane}};
\node at (0,0.8) {\textit{Matrix}};
\end{tikzpicture}`,
	"Cell Signaling": `\begin{tikzpicture}
\node[circle, draw, fill=blue!15, minimum size=2.2cm] (cell) at (0,0) {Cell};
\node[rectangle, draw, fill=green!20, minimum width=1.5cm, minimum height=0.6cm] (rec) at (0,1.8) {Receptor};
\draw[->, thick] (rec) -- (cell);
\end{tikzpicture}`,
	"Immune Synapse": `\begin{tikzpicture}
\node[circle, draw, fill=red!15, minimum size=2cm] (tcell) at (-1.8,0) {T Cell};
\node[circle, draw, fill=orange!15, minimum size=2cm] (apc) at (1.8,0) {APC};
\draw[ultra thick, <->] (-0.8,0) -- (0.8,0) node[midway, above] {Synapse};
\end{tikzpicture}`,
	"CRISPR Workflow": `\begin{tikzpicture}
\node[rectangle, draw, fill=purple!15, minimum width=2cm, minimum height=0.8cm] (gRNA) at (0,1.5) {gRNA};
\node[rectangle, draw, fill=purple!25, minimum width=2cm, minimum height=0.8cm] (cas9) at (0,0) {Cas9};
\node[rectangle, draw, fill=gray!20, minimum width=2.5cm, minimum height=0.8cm] (dna) at (0,-1.5) {Target DNA};
\draw[->, thick] (gRNA) -- (cas9);
\draw[->, thick] (cas9) -- (dna);
\end{tikzpicture}`,
}

func TemplateNames() []string {
	names := make([]string, 0, len(builtinTemplates))
	for name := range builtinTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Template returns a built-in picture by name, ignoring case.
func Template(name string) (string, error) {
	for key, body := range builtinTemplates {
		if strings.EqualFold(key, strings.TrimSpace(name)) {
			return body, nil
		}
	}
	return "", fmt.Errorf("template %q: %w", name, ErrUnknownTemplate)
}
