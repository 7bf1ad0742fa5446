package textsel

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gardar/pdfselect/pkg/geom"
)

func TestSelectTwoLines(t *testing.T) {
	sel, _ := newTestSelection(map[int]fakePage{0: twoLinePage()})

	if err := sel.StartAt(0, 0); err != nil {
		t.Fatal(err)
	}
	if err := sel.SelectUpTo(0, 7); err != nil {
		t.Fatal(err)
	}

	want := []geom.Rect{
		{X: 0, Y: 0, Dx: 40, Dy: 12},
		{X: 0, Y: 20, Dx: 25, Dy: 12},
	}
	if diff := cmp.Diff(want, sel.Result().Rects()); diff != "" {
		t.Errorf("rects mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 0}, sel.Result().Pages()); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectBackwardMatchesForward(t *testing.T) {
	forward, _ := newTestSelection(map[int]fakePage{0: twoLinePage()})
	backward, _ := newTestSelection(map[int]fakePage{0: twoLinePage()})

	if err := forward.StartAt(0, 1); err != nil {
		t.Fatal(err)
	}
	if err := forward.SelectUpTo(0, 6); err != nil {
		t.Fatal(err)
	}
	if err := backward.StartAt(0, 6); err != nil {
		t.Fatal(err)
	}
	if err := backward.SelectUpTo(0, 1); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(forward.Result().Rects(), backward.Result().Rects()); diff != "" {
		t.Errorf("backward drag differs (-forward +backward):\n%s", diff)
	}
}

func TestSpansAcrossPages(t *testing.T) {
	sel, _ := newTestSelection(map[int]fakePage{
		2: linePage(50),
		3: linePage(80),
		4: linePage(20),
	})

	if err := sel.StartAt(2, 40); err != nil {
		t.Fatal(err)
	}
	if err := sel.SelectUpTo(4, 10); err != nil {
		t.Fatal(err)
	}

	spans, err := sel.Spans()
	if err != nil {
		t.Fatal(err)
	}
	want := []Span{{2, 40, 50}, {3, 0, 80}, {4, 0, 10}}
	if diff := cmp.Diff(want, spans); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}

	wantRects := []geom.Rect{
		{X: 400, Y: 0, Dx: 100, Dy: 12},
		{X: 0, Y: 0, Dx: 800, Dy: 12},
		{X: 0, Y: 0, Dx: 100, Dy: 12},
	}
	if diff := cmp.Diff(wantRects, sel.Result().Rects()); diff != "" {
		t.Errorf("rects mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 3, 4}, sel.Result().Pages()); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
}

func TestSpansBackwardAcrossPages(t *testing.T) {
	sel, _ := newTestSelection(map[int]fakePage{
		2: linePage(50),
		3: linePage(80),
		4: linePage(20),
	})
	if err := sel.StartAt(4, 10); err != nil {
		t.Fatal(err)
	}
	if err := sel.SelectUpTo(2, 40); err != nil {
		t.Fatal(err)
	}
	spans, err := sel.Spans()
	if err != nil {
		t.Fatal(err)
	}
	want := []Span{{2, 40, 50}, {3, 0, 80}, {4, 0, 10}}
	if diff := cmp.Diff(want, spans); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestSpansSkipEmptyPages(t *testing.T) {
	sel, _ := newTestSelection(map[int]fakePage{
		0: linePage(10),
		1: {box: letterBox},
		2: linePage(10),
	})
	if err := sel.StartAt(0, 10); err != nil {
		t.Fatal(err)
	}
	if err := sel.SelectUpTo(2, 0); err != nil {
		t.Fatal(err)
	}
	spans, err := sel.Spans()
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 0 {
		t.Errorf("expected no spans, got %v", spans)
	}
	if sel.Result().Len() != 0 {
		t.Errorf("expected no rects, got %d", sel.Result().Len())
	}
}

func TestStartAtFromEnd(t *testing.T) {
	sel, _ := newTestSelection(map[int]fakePage{0: linePage(30)})

	if err := sel.StartAt(0, -1); err != nil {
		t.Fatal(err)
	}
	if sel.startGlyph != 30 {
		t.Errorf("anchor glyph = %d, want 30", sel.startGlyph)
	}
	if err := sel.SelectUpTo(0, -2); err != nil {
		t.Fatal(err)
	}
	if sel.endGlyph != 29 {
		t.Errorf("end glyph = %d, want 29", sel.endGlyph)
	}
	_, from, _, to, ok := sel.GlyphRange()
	if !ok || from != 29 || to != 30 {
		t.Errorf("GlyphRange() = %d..%d (%v), want 29..30", from, to, ok)
	}
}

func TestSelectUpToWithoutAnchor(t *testing.T) {
	sel, _ := newTestSelection(map[int]fakePage{0: linePage(5)})
	err := sel.SelectUpTo(0, 3)
	if !errors.Is(err, ErrNoAnchor) {
		t.Fatalf("got %v, want ErrNoAnchor", err)
	}
	if sel.IsActive() || sel.Result().Len() != 0 {
		t.Error("selection changed after a rejected call")
	}
}

func TestOutOfRangeIsRejected(t *testing.T) {
	sel, _ := newTestSelection(map[int]fakePage{0: linePage(5), 1: linePage(5)})

	if err := sel.StartAt(0, 6); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("StartAt past end: got %v, want ErrOutOfRange", err)
	}
	if err := sel.StartAt(0, -7); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("StartAt before start: got %v, want ErrOutOfRange", err)
	}
	if err := sel.StartAt(9, 0); !errors.Is(err, errNoPage) {
		t.Errorf("StartAt on unknown page: got %v", err)
	}

	if err := sel.StartAt(0, 2); err != nil {
		t.Fatal(err)
	}
	if err := sel.SelectUpTo(1, 99); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SelectUpTo past end: got %v, want ErrOutOfRange", err)
	}
	if sel.IsActive() || sel.Result().Len() != 0 {
		t.Error("selection changed after a rejected call")
	}

	// a gap in the page sequence fails before anything is appended
	if err := sel.SelectUpTo(0, 4); err != nil {
		t.Fatal(err)
	}
	n := sel.Result().Len()
	sel2, _ := newTestSelection(map[int]fakePage{0: linePage(5), 2: linePage(5)})
	if err := sel2.StartAt(0, 2); err != nil {
		t.Fatal(err)
	}
	if err := sel2.SelectUpTo(2, 3); !errors.Is(err, errNoPage) {
		t.Errorf("missing middle page: got %v", err)
	}
	if sel2.Result().Len() != 0 {
		t.Errorf("expected nothing appended, got %d rects", sel2.Result().Len())
	}
	if n != 1 {
		t.Errorf("expected 1 rect, got %d", n)
	}
}

func TestFillRunsBounds(t *testing.T) {
	sel, _ := newTestSelection(map[int]fakePage{0: linePage(5)})
	tests := []struct {
		glyph, length int
	}{
		{-1, 2},
		{0, 6},
		{4, 2},
		{2, -1},
	}
	for _, tc := range tests {
		if err := sel.fillRuns(0, tc.glyph, tc.length, nil); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("fillRuns(%d, %d) = %v, want ErrOutOfRange", tc.glyph, tc.length, err)
		}
	}
	if sel.Result().Len() != 0 {
		t.Errorf("rejected calls appended %d rects", sel.Result().Len())
	}
}

func TestFillRunsClipsToMediabox(t *testing.T) {
	page := fakePage{
		text: []rune("ab\ncd\nef"),
		coords: []geom.Rect{
			{X: 10, Y: 10, Dx: 10, Dy: 10},
			{X: 20, Y: 10, Dx: 10, Dy: 10},
			lineBreak,
			{X: 500, Y: 10, Dx: 10, Dy: 10},
			{X: 510, Y: 10, Dx: 10, Dy: 10},
			lineBreak,
			{X: 90, Y: 30, Dx: 20, Dy: 10},
			{X: 110, Y: 30, Dx: 10, Dy: 10},
		},
		box: geom.RectF{X: 0, Y: 0, Dx: 99.6, Dy: 200},
	}
	sel, _ := newTestSelection(map[int]fakePage{0: page})

	if err := sel.fillRuns(0, 0, len(page.coords), nil); err != nil {
		t.Fatal(err)
	}
	want := []geom.Rect{
		{X: 10, Y: 10, Dx: 20, Dy: 10},
		{X: 90, Y: 30, Dx: 10, Dy: 10},
	}
	if diff := cmp.Diff(want, sel.Result().Rects()); diff != "" {
		t.Errorf("rects mismatch (-want +got):\n%s", diff)
	}

	var lines []string
	if err := sel.fillRuns(0, 0, len(page.coords), &lines); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"ab", "ef"}, lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if sel.Result().Len() != 2 {
		t.Errorf("text mode touched the result: %d rects", sel.Result().Len())
	}
}

func TestFillRunsCutsOverlapWithNextGlyph(t *testing.T) {
	page := fakePage{
		text: []rune("abc"),
		coords: []geom.Rect{
			{X: 0, Y: 0, Dx: 10, Dy: 12},
			{X: 10, Y: 0, Dx: 12, Dy: 12},
			{X: 20, Y: 0, Dx: 10, Dy: 12},
		},
		box: letterBox,
	}
	sel, _ := newTestSelection(map[int]fakePage{0: page})
	if err := sel.StartAt(0, 0); err != nil {
		t.Fatal(err)
	}
	if err := sel.SelectUpTo(0, 2); err != nil {
		t.Fatal(err)
	}
	want := []geom.Rect{{X: 0, Y: 0, Dx: 20, Dy: 12}}
	if diff := cmp.Diff(want, sel.Result().Rects()); diff != "" {
		t.Errorf("rects mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectUpToAccumulatesUntilReset(t *testing.T) {
	sel, _ := newTestSelection(map[int]fakePage{0: twoLinePage()})
	if err := sel.StartAt(0, 0); err != nil {
		t.Fatal(err)
	}
	if err := sel.SelectUpTo(0, 3); err != nil {
		t.Fatal(err)
	}
	if err := sel.SelectUpTo(0, 7); err != nil {
		t.Fatal(err)
	}
	if got := sel.Result().Len(); got != 3 {
		t.Errorf("after two moves: %d rects, want 3", got)
	}

	sel.Reset()
	if sel.Result().Len() != 0 || len(sel.Result().Pages()) != 0 {
		t.Error("Reset left geometry behind")
	}
	if sel.IsActive() {
		t.Error("Reset left the selection active")
	}
	if err := sel.SelectUpTo(0, 3); !errors.Is(err, ErrNoAnchor) {
		t.Errorf("SelectUpTo after Reset: got %v, want ErrNoAnchor", err)
	}
}

func TestExtractText(t *testing.T) {
	sel, _ := newTestSelection(map[int]fakePage{0: twoLinePage(), 1: twoLinePage()})
	if err := sel.StartAt(0, 2); err != nil {
		t.Fatal(err)
	}
	if err := sel.SelectUpTo(1, 2); err != nil {
		t.Fatal(err)
	}
	got, err := sel.ExtractText("\n")
	if err != nil {
		t.Fatal(err)
	}
	if want := "cd\nef\nab"; got != want {
		t.Errorf("ExtractText() = %q, want %q", got, want)
	}
	text, ok := sel.Result().Text()
	if !ok || text != got {
		t.Errorf("result text = %q (%v), want %q", text, ok, got)
	}
}

func TestSelectWordAt(t *testing.T) {
	page := linePage(11)
	page.text = []rune("hello world")
	sel, _ := newTestSelection(map[int]fakePage{0: page})

	if err := sel.SelectWordAt(0, 72, 6); err != nil {
		t.Fatal(err)
	}
	_, from, _, to, ok := sel.GlyphRange()
	if !ok || from != 6 || to != 11 {
		t.Errorf("word range = %d..%d (%v), want 6..11", from, to, ok)
	}
	text, err := sel.ExtractText("")
	if err != nil {
		t.Fatal(err)
	}
	if text != "world" {
		t.Errorf("selected %q, want %q", text, "world")
	}
}

func TestSelectWordAtReplacesPreviousWord(t *testing.T) {
	page := linePage(11)
	page.text = []rune("hello world")
	sel, _ := newTestSelection(map[int]fakePage{0: page})

	if err := sel.SelectWordAt(0, 12, 6); err != nil {
		t.Fatal(err)
	}
	if err := sel.SelectWordAt(0, 72, 6); err != nil {
		t.Fatal(err)
	}
	want := []geom.Rect{{X: 60, Y: 0, Dx: 50, Dy: 12}}
	if diff := cmp.Diff(want, sel.Result().Rects()); diff != "" {
		t.Errorf("rects mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectWordAtInconsistentGlyphData(t *testing.T) {
	page := linePage(5)
	page.text = []rune("abc")
	sel, _ := newTestSelection(map[int]fakePage{0: page})

	err := sel.SelectWordAt(0, 48, 6)
	if !errors.Is(err, ErrGlyphData) {
		t.Fatalf("got %v, want ErrGlyphData", err)
	}
	if sel.IsActive() || sel.Result().Len() != 0 {
		t.Error("selection changed after a failed word selection")
	}
}

func TestSelectUpToFailureKeepsSelection(t *testing.T) {
	sel, doc := newTestSelection(map[int]fakePage{0: linePage(4), 1: linePage(4)})
	if err := sel.StartAt(0, 0); err != nil {
		t.Fatal(err)
	}
	if err := sel.SelectUpTo(0, 2); err != nil {
		t.Fatal(err)
	}
	before := sel.Result().Rects()

	// resolving the end, the two page lengths and page 0's runs succeed,
	// then page 1 disappears from the cache
	doc.failAfter = doc.calls + 4
	err := sel.SelectUpTo(1, -1)
	if !errors.Is(err, errNoPage) {
		t.Fatalf("got %v, want errNoPage", err)
	}
	if diff := cmp.Diff(before, sel.Result().Rects()); diff != "" {
		t.Errorf("rects changed (-want +got):\n%s", diff)
	}
	fromPage, fromGlyph, toPage, toGlyph, ok := sel.GlyphRange()
	if !ok || fromPage != 0 || fromGlyph != 0 || toPage != 0 || toGlyph != 2 {
		t.Errorf("range = %d:%d..%d:%d (%v), want 0:0..0:2", fromPage, fromGlyph, toPage, toGlyph, ok)
	}
}

func TestCopySelection(t *testing.T) {
	pages := map[int]fakePage{0: twoLinePage()}
	orig, _ := newTestSelection(pages)
	if err := orig.StartAt(0, 1); err != nil {
		t.Fatal(err)
	}
	if err := orig.SelectUpTo(0, 6); err != nil {
		t.Fatal(err)
	}

	cp, _ := newTestSelection(pages)
	if err := cp.CopySelection(orig); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(orig.Result().Rects(), cp.Result().Rects()); diff != "" {
		t.Errorf("copy differs (-orig +copy):\n%s", diff)
	}
}

func TestCommitKeepsIndependentResults(t *testing.T) {
	sel, _ := newTestSelection(map[int]fakePage{0: twoLinePage()})

	if err := sel.StartAt(0, 0); err != nil {
		t.Fatal(err)
	}
	if err := sel.SelectUpTo(0, 4); err != nil {
		t.Fatal(err)
	}
	first, err := sel.Commit(0xff0000)
	if err != nil {
		t.Fatal(err)
	}
	if sel.Result().Len() != 0 || sel.IsActive() {
		t.Error("Commit did not reset the active selection")
	}

	if err := sel.StartAt(0, 5); err != nil {
		t.Fatal(err)
	}
	if err := sel.SelectUpTo(0, 7); err != nil {
		t.Fatal(err)
	}
	second, err := sel.Commit(0)
	if err != nil {
		t.Fatal(err)
	}

	st := sel.Store()
	if diff := cmp.Diff([]int{first, second}, st.IDs()); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	r1, _ := st.Get(first)
	r2, _ := st.Get(second)
	if r1.Color() != 0xff0000 || r2.Color() != 0 {
		t.Errorf("colors = %#x, %#x", r1.Color(), r2.Color())
	}
	if diff := cmp.Diff([]geom.Rect{{X: 0, Y: 0, Dx: 40, Dy: 12}}, r1.Rects()); diff != "" {
		t.Errorf("first result (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]geom.Rect{{X: 0, Y: 20, Dx: 25, Dy: 12}}, r2.Rects()); diff != "" {
		t.Errorf("second result (-want +got):\n%s", diff)
	}

	sel.Close()
	if st.Len() != 0 {
		t.Errorf("store holds %d results after Close", st.Len())
	}
	if r1.Len() != 0 || r1.Color() != 0 {
		t.Error("Close did not reset stored results")
	}
	if _, err := st.Add(&Result{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Add after Close: got %v, want ErrClosed", err)
	}
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	doc := &fakeDoc{pages: map[int]fakePage{0: linePage(4)}}
	cfg := DefaultConfig()
	cfg.Debug = true
	cfg.Logger = &buf
	sel := New(doc, doc, cfg)

	if err := sel.StartAt(0, 0); err != nil {
		t.Fatal(err)
	}
	if err := sel.SelectUpTo(0, 4); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "anchored at page 0 glyph 0") {
		t.Errorf("missing anchor log line in %q", buf.String())
	}
	if !strings.Contains(buf.String(), "1 rects") {
		t.Errorf("missing extend log line in %q", buf.String())
	}
}
