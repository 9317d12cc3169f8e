package flow

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/reportkit/reportkit/internal/res"
	"github.com/reportkit/reportkit/internal/style"
	"github.com/reportkit/reportkit/pkg/report"
)

const testAvail = 451.28

func createTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 8), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func kinds(prims []Primitive) []Kind {
	out := make([]Kind, len(prims))
	for i, p := range prims {
		out[i] = p.Kind
	}
	return out
}

func testMeta() report.Metadata {
	return report.Metadata{
		Title:      "Business Data Management",
		Subtitle:   "Capstone Project Report",
		AuthorName: "A. Student",
		RollNumber: "21f1000000",
	}
}

func TestBuildCoverWithoutLogo(t *testing.T) {
	b := NewBuilder(nil, Logo{}, testAvail, nil)
	prims, err := b.Build(testMeta(), nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	want := []Kind{
		KindSpacer,    // top gap
		KindParagraph, // title
		KindParagraph, // subtitle
		KindSpacer,
		KindParagraph, // "Submitted by"
		KindParagraph, // author
		KindParagraph, // roll number
		KindSpacer,
		KindParagraph, // logo fallback line
		KindSpacer,    // padding for the empty logo slot
		KindSpacer,
		KindParagraph, // institute lines
		KindParagraph,
		KindParagraph,
		KindPageBreak,
		KindParagraph, // contents title
		KindTOC,
		KindPageBreak,
	}
	got := kinds(prims)
	if len(got) != len(want) {
		t.Fatalf("Build() produced %d primitives, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("primitive %d: got %s, want %s", i, got[i], want[i])
		}
	}

	spacers := []struct {
		idx  int
		want float64
	}{
		{0, 36},
		{3, 57.6},
		{7, 72},
		{9, 129.6},
		{10, 129.6},
	}
	for _, s := range spacers {
		if prims[s.idx].Space != s.want {
			t.Errorf("spacer %d: got %g pt, want %g pt", s.idx, prims[s.idx].Space, s.want)
		}
	}

	if got := prims[8].Runs[0].Text; got != "(Logo file not found)" {
		t.Errorf("logo fallback text = %q", got)
	}
	if got := prims[4].Runs[0].Text; got != "Submitted by" {
		t.Errorf("submission line = %q", got)
	}
	if got := prims[15].Runs[0].Text; got != "Table of Contents" {
		t.Errorf("contents title = %q", got)
	}
	if got := prims[16].LevelStyles; len(got) != 2 || got[0] != style.TOCLevel1 || got[1] != style.TOCLevel2 {
		t.Errorf("contents level styles = %v", got)
	}
}

func TestBuildCoverStyles(t *testing.T) {
	b := NewBuilder(nil, Logo{}, testAvail, nil)
	prims, err := b.Build(testMeta(), nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	wantStyles := map[int]string{
		1:  style.CoverTitle,
		2:  style.CoverSubtitle,
		4:  style.SubmittedBy,
		5:  style.StudentInfo,
		6:  style.StudentInfo,
		8:  style.StudentInfo,
		11: style.InstituteInfo,
		12: style.InstituteInfo,
		13: style.InstituteInfo,
		15: style.Title,
	}
	for idx, name := range wantStyles {
		if got := prims[idx].StyleName; got != name {
			t.Errorf("primitive %d: style %q, want %q", idx, got, name)
		}
	}
}

func TestBuildCoverWithLogoData(t *testing.T) {
	logo := createTestPNG(t, 32, 32)
	b := NewBuilder(nil, Logo{Data: logo}, testAvail, zaptest.NewLogger(t))
	prims, err := b.Build(testMeta(), nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	p := prims[8]
	if p.Kind != KindImage {
		t.Fatalf("logo slot holds %s, want image", p.Kind)
	}
	if p.Width != LogoSize || p.Height != LogoSize {
		t.Errorf("logo placed at %gx%g, want %gx%g", p.Width, p.Height, LogoSize, LogoSize)
	}
	if p.Format != res.FormatPNG {
		t.Errorf("logo format = %q, want %q", p.Format, res.FormatPNG)
	}
	// With a real logo the slot is one primitive, not text plus padding.
	if prims[9].Kind != KindSpacer || prims[9].Space != 129.6 {
		t.Errorf("primitive after logo: kind %s space %g", prims[9].Kind, prims[9].Space)
	}
}

func TestBuildLogoFallbackOnLoadFailure(t *testing.T) {
	b := NewBuilder(res.NewLoader(), Logo{Ref: "missing-logo.png"}, testAvail, zaptest.NewLogger(t))
	prims, err := b.Build(testMeta(), nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	p := prims[8]
	if p.Kind != KindParagraph || p.Runs[0].Text != "(Logo file not found)" {
		t.Fatalf("logo slot after load failure: kind %s", p.Kind)
	}
	if prims[9].Kind != KindSpacer || prims[9].Space != LogoSize {
		t.Errorf("fallback padding: kind %s space %g", prims[9].Kind, prims[9].Space)
	}
}

func TestBuildContentBlocks(t *testing.T) {
	img := createTestPNG(t, 64, 32)
	blocks := []report.Block{
		report.Heading("Executive Summary"),
		report.Paragraph("Plain overview with <b>bold</b> words."),
		report.Image(img, 64, 32),
	}
	b := NewBuilder(nil, Logo{}, testAvail, nil)
	prims, err := b.Build(testMeta(), blocks)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	// Content starts right after the contents page break.
	content := prims[18:]
	want := []Kind{KindParagraph, KindParagraph, KindSpacer, KindImage, KindSpacer}
	got := kinds(content)
	if len(got) != len(want) {
		t.Fatalf("content primitives = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("content primitive %d: got %s, want %s", i, got[i], want[i])
		}
	}

	h := content[0]
	if h.StyleName != style.Heading1 || h.TOCLevel != 1 || h.TOCText != "Executive Summary" {
		t.Errorf("heading primitive: style %q level %d text %q", h.StyleName, h.TOCLevel, h.TOCText)
	}
	para := content[1]
	if para.StyleName != style.BodyText || para.TOCLevel != 0 {
		t.Errorf("paragraph primitive: style %q level %d", para.StyleName, para.TOCLevel)
	}
	bold := false
	for _, r := range para.Runs {
		if r.Bold && r.Text == "bold" {
			bold = true
		}
	}
	if !bold {
		t.Errorf("paragraph runs lost formatting: %+v", para.Runs)
	}
	if content[2].Space != 7.2 {
		t.Errorf("paragraph gap = %g pt, want 7.2 pt", content[2].Space)
	}
	if content[3].Width != 64 || content[3].Height != 32 {
		t.Errorf("image placed at %gx%g, want native 64x32", content[3].Width, content[3].Height)
	}
	if content[4].Space != 14.4 {
		t.Errorf("image gap = %g pt, want 14.4 pt", content[4].Space)
	}
}

func TestBuildScalesOversizedImage(t *testing.T) {
	img := createTestPNG(t, 40, 20)
	blocks := []report.Block{report.Image(img, 4000, 2000)}
	b := NewBuilder(nil, Logo{}, testAvail, nil)
	prims, err := b.Build(testMeta(), blocks)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	p := prims[18]
	if p.Kind != KindImage {
		t.Fatalf("first content primitive is %s", p.Kind)
	}
	if math.Abs(p.Width-testAvail) > 1e-9 {
		t.Errorf("scaled width = %g, want %g", p.Width, testAvail)
	}
	if math.Abs(p.Height-testAvail/2) > 1e-9 {
		t.Errorf("scaled height = %g, want %g", p.Height, testAvail/2)
	}
}

func TestBuildRejectsInvalidImage(t *testing.T) {
	blocks := []report.Block{report.Image(createTestPNG(t, 8, 8), 0, 32)}
	b := NewBuilder(nil, Logo{}, testAvail, nil)
	if _, err := b.Build(testMeta(), blocks); err == nil {
		t.Fatal("Build() accepted image with zero width")
	} else {
		var dims *report.InvalidDimensionsError
		if !errors.As(err, &dims) {
			t.Fatalf("Build() error = %v, want InvalidDimensionsError", err)
		}
	}
}

func TestBuildRejectsUndecodableImage(t *testing.T) {
	blocks := []report.Block{report.Image([]byte("not an image"), 64, 32)}
	b := NewBuilder(nil, Logo{}, testAvail, nil)
	if _, err := b.Build(testMeta(), blocks); err == nil {
		t.Fatal("Build() accepted undecodable image bytes")
	}
}
