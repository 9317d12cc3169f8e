package style

import "testing"

func TestCatalogContents(t *testing.T) {
	c := NewCatalog()

	tests := []struct {
		name    string
		family  string
		variant string
		size    float64
		leading float64
		align   Alignment
	}{
		{CoverTitle, "Times", "B", 18, 22, AlignCenter},
		{CoverSubtitle, "Times", "", 14, 18, AlignCenter},
		{SubmittedBy, "Times", "B", 12, 16, AlignCenter},
		{StudentInfo, "Times", "", 12, 18, AlignCenter},
		{InstituteInfo, "Times", "", 12, 16, AlignCenter},
		{Title, "Helvetica", "B", 18, 22, AlignCenter},
		{Heading1, "Times", "B", 16, 20, AlignLeft},
		{BodyText, "Times", "", 11, 14, AlignJustify},
		{TOCLevel1, "Times", "B", 12, 12, AlignLeft},
		{TOCLevel2, "Times", "", 10, 12, AlignLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := c.MustGet(tt.name)
			if s.Family != tt.family || s.Variant != tt.variant {
				t.Fatalf("font %s/%q, want %s/%q", s.Family, s.Variant, tt.family, tt.variant)
			}
			if s.Size != tt.size || s.Leading != tt.leading {
				t.Fatalf("metrics %g/%g, want %g/%g", s.Size, s.Leading, tt.size, tt.leading)
			}
			if s.Align != tt.align {
				t.Fatalf("alignment %v, want %v", s.Align, tt.align)
			}
		})
	}
}

func TestTOCIndents(t *testing.T) {
	c := NewCatalog()

	l1 := c.MustGet(TOCLevel1)
	if l1.LeftIndent != 20 || l1.FirstLineIndent != -20 {
		t.Fatalf("level 1 indents %g/%g, want 20/-20", l1.LeftIndent, l1.FirstLineIndent)
	}
	l2 := c.MustGet(TOCLevel2)
	if l2.LeftIndent != 40 || l2.FirstLineIndent != -20 {
		t.Fatalf("level 2 indents %g/%g, want 40/-20", l2.LeftIndent, l2.FirstLineIndent)
	}
}

func TestMustGetUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown style name")
		}
	}()
	NewCatalog().MustGet("NoSuchStyle")
}

func TestSpacing(t *testing.T) {
	c := NewCatalog()

	if got := c.MustGet(BodyText).SpaceBefore; got != 6 {
		t.Fatalf("body spaceBefore %g, want 6", got)
	}
	h := c.MustGet(Heading1)
	if h.SpaceBefore != 20 || h.SpaceAfter != 10 {
		t.Fatalf("heading spacing %g/%g, want 20/10", h.SpaceBefore, h.SpaceAfter)
	}
	if got := c.MustGet(CoverSubtitle).SpaceAfter; got != 40 {
		t.Fatalf("subtitle spaceAfter %g, want 40", got)
	}
}
