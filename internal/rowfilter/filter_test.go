package rowfilter

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

type fakeInput struct {
	value     string
	listeners map[int]func()
	nextID    int
}

func newFakeInput() *fakeInput {
	return &fakeInput{listeners: map[int]func(){}}
}

func (in *fakeInput) Value() string { return in.value }

func (in *fakeInput) OnInput(fn func()) func() {
	id := in.nextID
	in.nextID++
	in.listeners[id] = fn
	return func() { delete(in.listeners, id) }
}

func (in *fakeInput) typeText(value string) {
	in.value = value
	for _, fn := range in.listeners {
		fn()
	}
}

type fakeRow struct {
	row      Row
	visible  bool
	setCalls int
}

func (r *fakeRow) Row() Row { return r.row }

func (r *fakeRow) SetVisible(v bool) {
	r.visible = v
	r.setCalls++
}

func scenarioRows() []*fakeRow {
	return []*fakeRow{
		{row: RowOf("Report.PDF", "Docs", "report_final.pdf"), visible: true},
		{row: RowOf("Invoice", "Finance", "inv-2024.csv"), visible: true},
	}
}

func targetsOf(rows []*fakeRow) []Target {
	targets := make([]Target, len(rows))
	for i, r := range rows {
		targets[i] = r
	}
	return targets
}

func visibility(rows []*fakeRow) []bool {
	out := make([]bool, len(rows))
	for i, r := range rows {
		out[i] = r.visible
	}
	return out
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Text
		want string
	}{
		{"absent", None(), ""},
		{"empty", Some(""), ""},
		{"ascii", Some("Report.PDF"), "report.pdf"},
		{"accented", Some("ÉCOLE"), "école"},
		{"zero value", Text{}, ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("%s: Normalize = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestNormalizeQueryTrims(t *testing.T) {
	if got := NormalizeQuery("  PdF \t"); got != "pdf" {
		t.Fatalf("expected trimmed lower-case query, got %q", got)
	}
	if got := NormalizeQuery(" \n "); got != "" {
		t.Fatalf("expected whitespace-only query to normalize to empty, got %q", got)
	}
	if got := NormalizeQuery("\ufeff PDF\u00a0"); got != "pdf" {
		t.Fatalf("expected byte order mark and no-break space to be trimmed, got %q", got)
	}
}

func TestApplyByteOrderMarkQueryShowsAll(t *testing.T) {
	rows := scenarioRows()
	f := New(targetsOf(rows))
	f.Apply("zzz")
	f.Apply("\ufeff")
	if diff := cmp.Diff([]bool{true, true}, visibility(rows)); diff != "" {
		t.Fatalf("visibility mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchesScenario(t *testing.T) {
	report := RowOf("Report.PDF", "Docs", "report_final.pdf")
	invoice := RowOf("Invoice", "Finance", "inv-2024.csv")

	checks := []struct {
		q       string
		report  bool
		invoice bool
	}{
		{"pdf", true, false},
		{"finance", false, true},
		{"", true, true},
		{"zzz", false, false},
	}
	for _, c := range checks {
		q := NormalizeQuery(c.q)
		if got := Matches(report, q); got != c.report {
			t.Errorf("query %q: report match = %v, want %v", c.q, got, c.report)
		}
		if got := Matches(invoice, q); got != c.invoice {
			t.Errorf("query %q: invoice match = %v, want %v", c.q, got, c.invoice)
		}
	}
}

func TestMatchesAnySingleField(t *testing.T) {
	rows := []Row{
		{Display: Some("needle here"), Category: Some("x"), Original: Some("y")},
		{Display: Some("x"), Category: Some("a NEEDLE"), Original: Some("y")},
		{Display: Some("x"), Category: Some("y"), Original: Some("needle.txt")},
	}
	for i, row := range rows {
		if !Matches(row, "needle") {
			t.Errorf("row %d: expected match via a single field", i)
		}
	}
}

func TestMatchesMissingFieldsNeverMatch(t *testing.T) {
	row := Row{Display: None(), Category: Some("Docs"), Original: None()}
	if Matches(row, "report") {
		t.Fatalf("absent fields must not match a non-empty query")
	}
	if !Matches(row, "") {
		t.Fatalf("empty query must match rows with absent fields")
	}
	if !Matches(Row{}, "") {
		t.Fatalf("empty query must match an entirely empty row")
	}
}

func TestNormalizerLocale(t *testing.T) {
	row := RowOf("İSTANBUL", "", "")
	turkish := NewNormalizer(language.Turkish)
	if !turkish.Matches(row, turkish.Query("istanbul")) {
		t.Fatalf("expected Turkish folding to match dotted capital I")
	}
	if ParseNormalizer("not a locale!!").tag != language.Und {
		t.Fatalf("expected unparsable locale to fall back to root")
	}
}

func TestApplyScenario(t *testing.T) {
	rows := scenarioRows()
	f := New(targetsOf(rows))

	steps := []struct {
		q    string
		want []bool
	}{
		{"pdf", []bool{true, false}},
		{"finance", []bool{false, true}},
		{"", []bool{true, true}},
		{"zzz", []bool{false, false}},
	}
	for _, step := range steps {
		f.Apply(step.q)
		if diff := cmp.Diff(step.want, visibility(rows)); diff != "" {
			t.Errorf("query %q visibility mismatch (-want +got):\n%s", step.q, diff)
		}
		if diff := cmp.Diff(step.want, f.Visible()); diff != "" {
			t.Errorf("query %q recorded projection mismatch (-want +got):\n%s", step.q, diff)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	rows := scenarioRows()
	f := New(targetsOf(rows))

	f.Apply("inv")
	first := visibility(rows)
	f.Apply("inv")
	if diff := cmp.Diff(first, visibility(rows)); diff != "" {
		t.Fatalf("second application changed visibility (-first +second):\n%s", diff)
	}
}

func TestApplyWhitespaceQueryShowsAll(t *testing.T) {
	rows := scenarioRows()
	f := New(targetsOf(rows))

	f.Apply("zzz")
	f.Apply("   \t ")
	if diff := cmp.Diff([]bool{true, true}, visibility(rows)); diff != "" {
		t.Fatalf("whitespace query should show every row (-want +got):\n%s", diff)
	}
}

func TestApplyCaseInvariance(t *testing.T) {
	for _, q := range []string{"report", "Docs", "inv-2024", "CSV"} {
		lower := scenarioRows()
		upper := scenarioRows()
		mixed := scenarioRows()
		New(targetsOf(lower)).Apply(strings.ToLower(q))
		New(targetsOf(upper)).Apply(strings.ToUpper(q))
		New(targetsOf(mixed)).Apply(q)

		if diff := cmp.Diff(visibility(lower), visibility(upper)); diff != "" {
			t.Errorf("query %q: upper-case result differs (-lower +upper):\n%s", q, diff)
		}
		if diff := cmp.Diff(visibility(lower), visibility(mixed)); diff != "" {
			t.Errorf("query %q: mixed-case result differs (-lower +mixed):\n%s", q, diff)
		}
	}
}

func TestApplyLongerQueryCanMatchThroughAnotherField(t *testing.T) {
	row := &fakeRow{row: RowOf("pdf", "reports", "scan.tiff")}
	f := New([]Target{row})

	f.Apply("pd")
	if !row.visible {
		t.Fatalf("expected short query to match via display")
	}
	f.Apply("report")
	if !row.visible {
		t.Fatalf("expected longer, unrelated query to match via category")
	}
	f.Apply("pdfx")
	if row.visible {
		t.Fatalf("expected extension of the display match to hide the row")
	}
}

func TestApplyReadsFieldsAtEvaluationTime(t *testing.T) {
	row := &fakeRow{row: RowOf("draft", "Docs", "draft.txt")}
	f := New([]Target{row})

	f.Apply("final")
	if row.visible {
		t.Fatalf("expected row hidden before its text changes")
	}
	row.row = RowOf("final", "Docs", "final.txt")
	f.Apply("final")
	if !row.visible {
		t.Fatalf("expected row shown after its text changes")
	}
}

func TestNewSnapshotsTargets(t *testing.T) {
	rows := scenarioRows()
	targets := targetsOf(rows)
	f := New(targets)

	late := &fakeRow{row: RowOf("late", "late", "late")}
	targets[0] = late
	f.Apply("zzz")

	if late.setCalls != 0 {
		t.Fatalf("rows added after capture must not be evaluated")
	}
	if rows[0].visible {
		t.Fatalf("expected originally captured row to be evaluated")
	}
	if f.Len() != 2 {
		t.Fatalf("expected 2 captured rows, got %d", f.Len())
	}
}

func TestNewEmptyRowSet(t *testing.T) {
	f := New(nil)
	f.Apply("anything")
	if f.Len() != 0 || len(f.Visible()) != 0 {
		t.Fatalf("expected empty filter")
	}
}

func TestAttachUpdatesOnInput(t *testing.T) {
	in := newFakeInput()
	rows := scenarioRows()
	sub := Attach(in, targetsOf(rows))
	defer sub.Close()

	if len(in.listeners) != 1 {
		t.Fatalf("expected exactly one listener, got %d", len(in.listeners))
	}
	if rows[0].setCalls != 0 {
		t.Fatalf("attach must not evaluate before the first input event")
	}

	in.typeText("  FINANCE ")
	if diff := cmp.Diff([]bool{false, true}, visibility(rows)); diff != "" {
		t.Fatalf("visibility mismatch (-want +got):\n%s", diff)
	}
	in.typeText("")
	if diff := cmp.Diff([]bool{true, true}, visibility(rows)); diff != "" {
		t.Fatalf("visibility mismatch after clearing (-want +got):\n%s", diff)
	}
}

func TestAttachCloseDetaches(t *testing.T) {
	in := newFakeInput()
	rows := scenarioRows()
	sub := Attach(in, targetsOf(rows))

	sub.Close()
	sub.Close()
	if len(in.listeners) != 0 {
		t.Fatalf("expected listener removed, %d remain", len(in.listeners))
	}

	in.typeText("zzz")
	if rows[0].setCalls != 0 || rows[1].setCalls != 0 {
		t.Fatalf("closed subscription must not update rows")
	}
}

func TestAttachMissingControlIsInert(t *testing.T) {
	rows := scenarioRows()
	sub := Attach(nil, targetsOf(rows))
	if sub == nil {
		t.Fatalf("expected a non-nil subscription")
	}
	sub.Close()
	for i, r := range rows {
		if r.setCalls != 0 {
			t.Fatalf("row %d touched by an inert subscription", i)
		}
	}
}

func TestAttachTypedNilControlIsInert(t *testing.T) {
	rows := scenarioRows()
	var in *fakeInput
	sub := Attach(in, targetsOf(rows))
	sub.Close()
	for i, r := range rows {
		if r.setCalls != 0 {
			t.Fatalf("row %d touched by an inert subscription", i)
		}
	}
}

func TestAttachWithNormalizer(t *testing.T) {
	in := newFakeInput()
	row := &fakeRow{row: RowOf("İZMİR", "", "")}
	sub := Attach(in, []Target{row}, WithNormalizer(NewNormalizer(language.Turkish)))
	defer sub.Close()

	in.typeText("izmir")
	if !row.visible {
		t.Fatalf("expected locale-aware folding to match")
	}
}
