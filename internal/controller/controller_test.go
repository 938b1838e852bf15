package controller_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appcontext "github.com/SeakMengs/FigStudio/internal/app_context"
	"github.com/SeakMengs/FigStudio/internal/config"
	"github.com/SeakMengs/FigStudio/internal/controller"
	"github.com/SeakMengs/FigStudio/internal/route"
	"github.com/SeakMengs/FigStudio/internal/util"
	"github.com/SeakMengs/FigStudio/pkg/figstudio"
	"github.com/SeakMengs/FigStudio/pkg/figstudio/figtest"
	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

// stubDocument renders every page as a white 100x80 page with a black
// 20x20 square at (20,10).
type stubDocument struct {
	pages int
	dpis  []int
}

func (d *stubDocument) PageCount() int { return d.pages }

func (d *stubDocument) Rasterize(page int, dpi int) (*figstudio.Raster, error) {
	d.dpis = append(d.dpis, dpi)
	r := figstudio.NewFilledRaster(100, 80, color.White)
	r.FillRect(image.Rect(20, 10, 40, 30), color.Black)
	return r, nil
}

func (d *stubDocument) Close() error { return nil }

var pdfBytes = []byte("%PDF-1.7\n%stub\n")

func newTestServer(t *testing.T, doc *stubDocument) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if err := util.RegisterValidations(); err != nil {
		t.Fatal(err)
	}

	open := func(pdf []byte) (figstudio.Rasterizer, error) { return doc, nil }
	cfg := &config.Config{
		Convert: config.ConvertConfig{
			AllowedDPI:    figstudio.DefaultDPIs,
			DefaultDPI:    300,
			CropThreshold: int(figstudio.DefaultCropThreshold),
			MaxUploadSize: 10 << 20,
			MaxPages:      10,
		},
		Image: config.ImageConfig{PreviewMaxSize: 200, PanelMaxSize: 200, MaxPixels: 1_000_000},
	}
	app := &appcontext.Application{
		Config:    cfg,
		Logger:    zap.NewNop().Sugar(),
		Converter: figstudio.NewConverter(open, cfg.Convert.AllowedDPI, nil, figstudio.WithoutPdfValidation()),
	}

	r := gin.New()
	route.Register(r, controller.NewController(app))
	return r
}

type upload struct {
	field string
	name  string
	data  []byte
}

func multipartRequest(t *testing.T, path string, uploads []upload, fields map[string][]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, u := range uploads {
		part, err := w.CreateFormFile(u.field, u.name)
		if err != nil {
			t.Fatal(err)
		}
		part.Write(u.data)
	}
	for key, values := range fields {
		for _, v := range values {
			w.WriteField(key, v)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, path string, v any) *http.Request {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type envelope struct {
	Success bool            `json:"success"`
	Errors  []util.ApiError `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

func serve(t *testing.T, r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return env
}

func pngImage(t *testing.T, img image.Image) []byte {
	t.Helper()
	data, err := figstudio.EncodePNG(img)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestConvertSinglePageReturnsCroppedPng(t *testing.T) {
	doc := &stubDocument{pages: 1}
	r := newTestServer(t, doc)

	req := multipartRequest(t, "/api/v1/convert", []upload{{"files", "figure.pdf", pdfBytes}}, map[string][]string{"dpi": {"600"}})
	w := serve(t, r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("expected image/png, got %s", got)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "figure_P1.png") {
		t.Errorf("expected figure_P1.png in %q", got)
	}

	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(20, 20) {
		t.Errorf("expected 20x20 crop, got %v", got)
	}
	if diff := cmp.Diff([]int{600}, doc.dpis); diff != "" {
		t.Errorf("rasterized dpi mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertUsesProfileDPI(t *testing.T) {
	doc := &stubDocument{pages: 1}
	r := newTestServer(t, doc)

	req := multipartRequest(t, "/api/v1/convert", []upload{{"files", "figure.pdf", pdfBytes}}, map[string][]string{
		"profile":  {"nature journal"},
		"autoCrop": {"false"},
	})
	w := serve(t, r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(100, 80) {
		t.Errorf("expected the full page without crop, got %v", got)
	}
	if diff := cmp.Diff([]int{600}, doc.dpis); diff != "" {
		t.Errorf("rasterized dpi mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertBatchReturnsZip(t *testing.T) {
	r := newTestServer(t, &stubDocument{pages: 2})

	req := multipartRequest(t, "/api/v1/convert", []upload{
		{"files", "a.pdf", pdfBytes},
		{"files", "b.pdf", pdfBytes},
	}, map[string][]string{"pages": {"2"}, "padding": {"5"}})
	w := serve(t, r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != "application/zip" {
		t.Errorf("expected application/zip, got %s", got)
	}

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)

		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		if got := img.Bounds().Size(); got != image.Pt(30, 30) {
			t.Errorf("%s: expected 30x30 padded crop, got %v", f.Name, got)
		}
	}
	if diff := cmp.Diff([]string{"a_P2.png", "b_P2.png"}, names); diff != "" {
		t.Errorf("zip entries mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertJsonFormat(t *testing.T) {
	r := newTestServer(t, &stubDocument{pages: 2})

	req := multipartRequest(t, "/api/v1/convert", []upload{{"files", "fig.pdf", pdfBytes}}, map[string][]string{"format": {"json"}})
	w := serve(t, r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var data struct {
		DPI   int `json:"dpi"`
		Pages []struct {
			File    string                `json:"file"`
			Page    int                   `json:"page"`
			Cropped bool                  `json:"cropped"`
			Box     figstudio.BoundingBox `json:"box"`
			PNG     []byte                `json:"png"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &data); err != nil {
		t.Fatal(err)
	}

	if data.DPI != 300 || len(data.Pages) != 2 {
		t.Fatalf("expected 2 pages at 300 dpi, got %d at %d", len(data.Pages), data.DPI)
	}
	want := figstudio.BoundingBox{Left: 20, Top: 10, Right: 39, Bottom: 29}
	for i, p := range data.Pages {
		if p.Page != i+1 || !p.Cropped || p.Box != want || len(p.PNG) == 0 {
			t.Errorf("unexpected page %+v", p)
		}
	}
	if data.Pages[1].File != "fig_P2.png" {
		t.Errorf("expected fig_P2.png, got %s", data.Pages[1].File)
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name    string
		uploads []upload
		fields  map[string][]string
		pages   int
		code    int
		field   string
	}{
		{"no file", nil, map[string][]string{"dpi": {"300"}}, 1, http.StatusBadRequest, "files"},
		{"unsupported dpi", []upload{{"files", "f.pdf", pdfBytes}}, map[string][]string{"dpi": {"72"}}, 1, http.StatusBadRequest, "dpi"},
		{"not a pdf", []upload{{"files", "f.png", []byte("hello")}}, nil, 1, http.StatusBadRequest, "files"},
		{"unknown profile", []upload{{"files", "f.pdf", pdfBytes}}, map[string][]string{"profile": {"Tabloid"}}, 1, http.StatusBadRequest, "profile"},
		{"bad format", []upload{{"files", "f.pdf", pdfBytes}}, map[string][]string{"format": {"tiff"}}, 1, http.StatusBadRequest, "Format"},
		{"png for many pages", []upload{{"files", "f.pdf", pdfBytes}}, map[string][]string{"format": {"png"}}, 3, http.StatusBadRequest, "format"},
		{"page out of range", []upload{{"files", "f.pdf", pdfBytes}}, map[string][]string{"pages": {"4"}}, 3, http.StatusBadRequest, "files"},
		{"page limit", []upload{{"files", "f.pdf", pdfBytes}}, nil, 11, http.StatusBadRequest, "files"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestServer(t, &stubDocument{pages: tt.pages})

			w := serve(t, r, multipartRequest(t, "/api/v1/convert", tt.uploads, tt.fields))
			if w.Code != tt.code {
				t.Fatalf("expected %d, got %d: %s", tt.code, w.Code, w.Body.String())
			}
			env := decodeEnvelope(t, w)
			if env.Success || len(env.Errors) == 0 || env.Errors[0].Field != tt.field {
				t.Errorf("expected error on field %s, got %+v", tt.field, env.Errors)
			}
		})
	}
}

func TestProfilesAndIndex(t *testing.T) {
	r := newTestServer(t, &stubDocument{pages: 1})

	w := serve(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/profiles", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var data struct {
		Profiles []figstudio.OutputProfile `json:"profiles"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Profiles) != 4 {
		t.Errorf("expected 4 profiles, got %d", len(data.Profiles))
	}

	w = serve(t, r, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "FigStudio") {
		t.Errorf("unexpected index response %d: %s", w.Code, w.Body.String())
	}
}

func TestTikzEndpoints(t *testing.T) {
	r := newTestServer(t, &stubDocument{pages: 1})

	w := serve(t, r, jsonRequest(t, http.MethodPost, "/api/v1/tikz/elements", map[string]any{
		"kind":  "receptor",
		"label": "EGFR",
		"color": "#ff0000",
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var code struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &code); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(code.Code, `\definecolor{mycolor}{HTML}{FF0000}`) || !strings.Contains(code.Code, "{EGFR}") {
		t.Errorf("unexpected element code:\n%s", code.Code)
	}

	w = serve(t, r, jsonRequest(t, http.MethodPost, "/api/v1/tikz/elements", map[string]any{"kind": "ribosome"}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown kind, got %d", w.Code)
	}

	w = serve(t, r, jsonRequest(t, http.MethodPost, "/api/v1/tikz/legends", map[string]any{
		"items":      []map[string]string{{"label": "Control", "color": "#1f77b4"}},
		"standalone": true,
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &code); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(code.Code, `\documentclass`) || !strings.Contains(code.Code, "Control") {
		t.Errorf("unexpected legend code:\n%s", code.Code)
	}

	w = serve(t, r, jsonRequest(t, http.MethodPost, "/api/v1/tikz/legends", map[string]any{"items": []any{}}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an empty legend, got %d", w.Code)
	}

	w = serve(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/tikz/templates/Cell%20Signaling", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Receptor") {
		t.Errorf("unexpected template response %d: %s", w.Code, w.Body.String())
	}

	w = serve(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/tikz/templates/Golgi", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown template, got %d", w.Code)
	}
}

func TestAccessibilityEndpoints(t *testing.T) {
	r := newTestServer(t, &stubDocument{pages: 1})
	data := pngImage(t, solid(40, 30, color.RGBA{R: 255, A: 255}))

	w := serve(t, r, multipartRequest(t, "/api/v1/accessibility/score", []upload{{"image", "red.png", data}}, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var score struct {
		Score float64 `json:"score"`
		Width int     `json:"width"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &score); err != nil {
		t.Fatal(err)
	}
	if score.Score != 0 || score.Width != 40 {
		t.Errorf("expected score 0 for a flat image of width 40, got %+v", score)
	}

	w = serve(t, r, multipartRequest(t, "/api/v1/accessibility/preview", []upload{{"image", "red.png", data}}, map[string][]string{"mode": {"grayscale"}}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(40, 30) {
		t.Errorf("expected preview 40x30, got %v", got)
	}

	w = serve(t, r, multipartRequest(t, "/api/v1/accessibility/score", []upload{{"image", "x.png", []byte("nope")}}, nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an undecodable image, got %d", w.Code)
	}
}

func TestComposePanelEndpoint(t *testing.T) {
	r := newTestServer(t, &stubDocument{pages: 1})
	a := pngImage(t, solid(50, 40, color.White))
	b := pngImage(t, solid(30, 60, color.White))

	req := multipartRequest(t, "/api/v1/panels", []upload{
		{"images", "a.png", a},
		{"images", "b.png", b},
	}, map[string][]string{"columns": {"2"}, "spacing": {"10"}, "background": {"#000000"}})
	w := serve(t, r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	// two 50x60 cells with 10px gutters
	if got := img.Bounds().Size(); got != image.Pt(130, 80) {
		t.Errorf("expected 130x80 panel, got %v", got)
	}
	if got := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA); got != (color.RGBA{A: 255}) {
		t.Errorf("expected black background, got %v", got)
	}

	req = multipartRequest(t, "/api/v1/panels", []upload{{"images", "a.png", a}}, map[string][]string{"background": {"black"}})
	if w := serve(t, r, req); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a non-hex background, got %d", w.Code)
	}
}

func TestWorkspaceExportImport(t *testing.T) {
	r := newTestServer(t, &stubDocument{pages: 1})

	w := serve(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/workspace/new?profile=Conference%20Poster", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Workspace figstudio.Workspace `json:"workspace"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &created); err != nil {
		t.Fatal(err)
	}
	ws := created.Workspace
	if ws.ID == "" || ws.DPI != 450 {
		t.Fatalf("unexpected new workspace %+v", ws)
	}

	ws.Elements = []figstudio.ElementParams{{Kind: figstudio.ElementNucleus, Label: "Nucleus", Color: "#336699"}}
	w = serve(t, r, jsonRequest(t, http.MethodPost, "/api/v1/workspace/export", ws))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	if err != nil {
		t.Fatal(err)
	}
	var project []byte
	for _, f := range zr.File {
		if f.Name != figstudio.ProjectFileName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		buf.ReadFrom(rc)
		rc.Close()
		project = buf.Bytes()
	}
	if project == nil {
		t.Fatal("project.json missing from export")
	}

	w = serve(t, r, multipartRequest(t, "/api/v1/workspace/import", []upload{{"project", "project.json", project}}, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var imported struct {
		Workspace figstudio.Workspace `json:"workspace"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &imported); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ws, imported.Workspace); diff != "" {
		t.Errorf("imported workspace mismatch (-want +got):\n%s", diff)
	}

	w = serve(t, r, multipartRequest(t, "/api/v1/workspace/import", []upload{{"project", "project.json", []byte("{")}}, nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a broken project, got %d", w.Code)
	}
}

func TestInspectReadsRealPdf(t *testing.T) {
	r := newTestServer(t, &stubDocument{pages: 1})

	req := multipartRequest(t, "/api/v1/convert/inspect", []upload{{"file", "wide.pdf", figtest.MinimalPDF(1, 200, 100)}}, nil)
	w := serve(t, r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got struct {
		File string                  `json:"file"`
		Info figstudio.InspectResult `json:"info"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &got); err != nil {
		t.Fatal(err)
	}
	if got.File != "wide.pdf" || got.Info.PageCount != 1 {
		t.Fatalf("unexpected inspect result %+v", got)
	}

	want := []figstudio.DPIPreview{
		{DPI: 300, Width: 834, Height: 417, JournalQuality: true},
		{DPI: 450, Width: 1250, Height: 625, JournalQuality: true},
		{DPI: 600, Width: 1667, Height: 834, JournalQuality: true},
	}
	if diff := cmp.Diff(want, got.Info.Previews); diff != "" {
		t.Errorf("previews mismatch (-want +got):\n%s", diff)
	}

	req = multipartRequest(t, "/api/v1/convert/inspect", []upload{{"file", "fake.pdf", pdfBytes}}, nil)
	if w := serve(t, r, req); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a broken pdf, got %d", w.Code)
	}
}

func TestImageEndpointsRejectOversizedHeaders(t *testing.T) {
	r := newTestServer(t, &stubDocument{pages: 1})
	huge := figtest.PNGHeader(20000, 20000)

	tests := []struct {
		name string
		req  *http.Request
	}{
		{"accessibility score", multipartRequest(t, "/api/v1/accessibility/score", []upload{{"image", "huge.png", huge}}, nil)},
		{"accessibility preview", multipartRequest(t, "/api/v1/accessibility/preview", []upload{{"image", "huge.png", huge}}, map[string][]string{"mode": {"grayscale"}})},
		{"panel", multipartRequest(t, "/api/v1/panels", []upload{{"images", "huge.png", huge}}, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, r, tt.req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			env := decodeEnvelope(t, w)
			if env.Success || len(env.Errors) == 0 || !strings.Contains(env.Errors[0].Message, "20000x20000") {
				t.Errorf("expected a pixel limit error, got %+v", env)
			}
		})
	}
}

func TestWorkspaceExportRejectsUnknownElement(t *testing.T) {
	r := newTestServer(t, &stubDocument{pages: 1})

	body := map[string]any{"elements": []map[string]any{{"kind": "membrane", "color": "#336699"}}}
	w := serve(t, r, jsonRequest(t, http.MethodPost, "/api/v1/workspace/export", body))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown element kind, got %d: %s", w.Code, w.Body.String())
	}
	if env := decodeEnvelope(t, w); len(env.Errors) == 0 || env.Errors[0].Field != "elements" {
		t.Errorf("expected an elements error, got %+v", env)
	}

	w = serve(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/tikz/templates/Golgi", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for a missing template, got %d", w.Code)
	}
}
