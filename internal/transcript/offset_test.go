package transcript

import (
	"testing"

	"github.com/patrickprogramme/limescribe/pkg/timecode"
)

func mustParseTC(t *testing.T, s string) timecode.Timecode {
	t.Helper()
	tc, err := timecode.Parse(s, timecode.DefaultRate)
	if err != nil {
		t.Fatalf("timecode.Parse(%q) : %v", s, err)
	}
	return tc
}

func TestApplyOffsetShiftsEverything(t *testing.T) {
	doc := Document{
		Records: []Record{
			{Start: mustParseTC(t, "00:03:15:08"), Speaker: "Maria", Text: "a"},
			{Start: mustParseTC(t, "00:03:33:10"), Speaker: "DJ", Text: "b"},
		},
	}
	offset := mustParseTC(t, "01:54:18:03")

	shifted := ApplyOffset(doc, offset, timecode.DefaultRate)

	if shifted.Start.String() != "01:54:18.03" {
		t.Errorf("marqueur = %s, attendu 01:54:18.03", shifted.Start.String())
	}
	if shifted.Records[0].Start.String() != "01:57:33.11" {
		t.Errorf("Records[0].Start = %s, attendu 01:57:33.11", shifted.Records[0].Start.String())
	}
	if shifted.Records[1].Start.String() != "01:57:51.13" {
		t.Errorf("Records[1].Start = %s, attendu 01:57:51.13", shifted.Records[1].Start.String())
	}

	// le document d'origine n'est pas touché
	if !doc.Start.IsZero() {
		t.Error("ApplyOffset a modifié le document d'origine (Start)")
	}
	if doc.Records[0].Start.String() != "00:03:15.08" {
		t.Error("ApplyOffset a modifié le document d'origine (Records)")
	}
}

func TestApplyOffsetZero(t *testing.T) {
	doc := Document{Records: []Record{{Start: mustParseTC(t, "00:01:00:00"), Text: "x"}}}

	shifted := ApplyOffset(doc, timecode.Timecode{}, timecode.DefaultRate)

	if shifted.Start.String() != "00:00:00.00" {
		t.Errorf("marqueur = %s, attendu 00:00:00.00", shifted.Start.String())
	}
	if shifted.Records[0] != doc.Records[0] {
		t.Errorf("décalage nul : enregistrement modifié (%+v)", shifted.Records[0])
	}
}

func TestApplyOffsetTwiceEqualsSum(t *testing.T) {
	doc := Document{Records: []Record{{Start: mustParseTC(t, "00:10:00:00"), Text: "x"}}}
	a := mustParseTC(t, "00:30:00:15")
	b := mustParseTC(t, "01:00:00:20")

	twice := ApplyOffset(ApplyOffset(doc, a, timecode.DefaultRate), b, timecode.DefaultRate)
	sum := ApplyOffset(doc, a.Add(b, timecode.DefaultRate), timecode.DefaultRate)

	if twice.Start != sum.Start || twice.Records[0].Start != sum.Records[0].Start {
		t.Errorf("deux décalages successifs != somme : %v vs %v", twice.Records[0].Start, sum.Records[0].Start)
	}
}

func TestLinesMarkerFirst(t *testing.T) {
	doc := Document{
		Start: mustParseTC(t, "01:54:18:03"),
		Records: []Record{
			{Start: mustParseTC(t, "01:57:33:11"), Speaker: "Maria", Text: "Det är en fin dag."},
			{Start: mustParseTC(t, "01:57:51:13"), Text: "Utan talare."},
		},
	}

	lines := doc.Lines(RenderOptions{Title: "Interview A"})

	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, attendu 3 (marqueur + 2)", len(lines))
	}
	if lines[0].Heading != "[01:54:18.03]" || lines[0].Body != "" {
		t.Errorf("marqueur = %+v", lines[0])
	}
	if lines[1].Heading != "[01:57:33.11]" {
		t.Errorf("Heading[1] = %q", lines[1].Heading)
	}
	if lines[1].Body != "Maria: Det är en fin dag." {
		t.Errorf("Body[1] = %q", lines[1].Body)
	}
	// sans locuteur, le corps est le texte brut
	if lines[2].Body != "Utan talare." {
		t.Errorf("Body[2] = %q", lines[2].Body)
	}
}

func TestLinesPrefixTitle(t *testing.T) {
	doc := Document{
		Start:   mustParseTC(t, "01:54:18:03"),
		Records: []Record{{Start: mustParseTC(t, "01:57:33:11"), Text: "x"}},
	}

	lines := doc.Lines(RenderOptions{Title: "Interview A", PrefixTitle: true})

	if lines[0].Heading != "(Interview A) [01:54:18.03]" {
		t.Errorf("marqueur préfixé = %q", lines[0].Heading)
	}
	if lines[1].Heading != "(Interview A) [01:57:33.11]" {
		t.Errorf("Heading[1] = %q", lines[1].Heading)
	}
}

func TestLinesEndToEnd(t *testing.T) {
	// du CSV brut aux lignes finales, décalage compris
	data := "Media Start,Speakers,Transcript\n" +
		"00:03:15:08,Maria,Det är en fin dag.\n" +
		"00:03:33:10,DJ,Håller med.\n"

	doc, err := Parse([]byte(data), timecode.DefaultRate)
	if err != nil {
		t.Fatalf("Parse : %v", err)
	}
	shifted := ApplyOffset(doc, mustParseTC(t, "01:54:18:03"), timecode.DefaultRate)
	lines := shifted.Lines(RenderOptions{Title: "Interview A"})

	want := []Line{
		{Heading: "[01:54:18.03]"},
		{Heading: "[01:57:33.11]", Body: "Maria: Det är en fin dag."},
		{Heading: "[01:57:51.13]", Body: "DJ: Håller med."},
	}
	if len(lines) != len(want) {
		t.Fatalf("len(lines) = %d, attendu %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %+v, attendu %+v", i, lines[i], want[i])
		}
	}
}
