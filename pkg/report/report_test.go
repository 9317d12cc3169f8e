package report

import (
	"errors"
	"strings"
	"testing"
)

func TestBlockConstructors(t *testing.T) {
	tests := []struct {
		name string
		got  Block
		want Block
	}{
		{
			name: "heading",
			got:  Heading("Intro"),
			want: Block{Kind: BlockHeading, Text: "Intro"},
		},
		{
			name: "paragraph",
			got:  Paragraph("hello <b>world</b>"),
			want: Block{Kind: BlockParagraph, Markup: "hello <b>world</b>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Kind != tt.want.Kind || tt.got.Text != tt.want.Text || tt.got.Markup != tt.want.Markup {
				t.Fatalf("got %+v, want %+v", tt.got, tt.want)
			}
		})
	}

	t.Run("image", func(t *testing.T) {
		b := Image([]byte{0x89, 0x50}, 4000, 2000)
		if b.Kind != BlockImage {
			t.Fatalf("expected image kind, got %v", b.Kind)
		}
		if b.NativeWidth != 4000 || b.NativeHeight != 2000 {
			t.Fatalf("unexpected dimensions %gx%g", b.NativeWidth, b.NativeHeight)
		}
		if len(b.Data) != 2 {
			t.Fatalf("expected 2 data bytes, got %d", len(b.Data))
		}
	})
}

func TestBlockKindString(t *testing.T) {
	if BlockHeading.String() != "heading" || BlockParagraph.String() != "paragraph" || BlockImage.String() != "image" {
		t.Fatalf("unexpected kind names: %v %v %v", BlockHeading, BlockParagraph, BlockImage)
	}
	if BlockKind(99).String() != "unknown" {
		t.Fatalf("expected unknown for out-of-range kind")
	}
}

func TestErrorMessages(t *testing.T) {
	le := &LayoutError{Primitive: "image", Height: 900, Avail: 697.89}
	if !strings.Contains(le.Error(), "image") || !strings.Contains(le.Error(), "697.89") {
		t.Fatalf("layout error message incomplete: %s", le.Error())
	}

	de := &InvalidDimensionsError{Width: 0, Height: 100}
	if !strings.Contains(de.Error(), "0x100") {
		t.Fatalf("dimensions error message incomplete: %s", de.Error())
	}

	cause := errors.New("no such file")
	re := &ResourceError{Source: "logo.png", Err: cause}
	if !errors.Is(re, cause) {
		t.Fatalf("resource error should unwrap to its cause")
	}
	if !strings.Contains(re.Error(), "logo.png") {
		t.Fatalf("resource error message incomplete: %s", re.Error())
	}
}
