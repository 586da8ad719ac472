package ticket_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	"github.com/SscSPs/kontrollavgift/internal/core/ticket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() domain.ViolationRecord {
	return domain.ViolationRecord{
		ID:                 "6f1c2a4e-0000-0000-0000-000000000001",
		Company:            "Säby Kulle Backe ekonomisk förening",
		ReferenceNumber:    "10000",
		IssuerName:         "Anna Andersson",
		VehiclePlate:       "lja46j",
		VehicleMake:        "Tesla",
		PeriodStart:        "2024-04-25 18:23",
		PeriodEnd:          "2024-04-25 18:35",
		Location:           "Stockholmsvägen 43",
		Amount:             "700",
		ViolationType:      "Förbud att parkera.",
		RoadMarkingChecked: domain.CheckYes,
		RoadSignChecked:    domain.CheckYes,
		PhotoTaken:         domain.CheckNo,
		CreatedAt:          time.Date(2024, 4, 25, 18, 40, 0, 0, time.UTC),
		PrintStatus:        domain.DefaultPrintStatus,
	}
}

func newBuilder(t *testing.T, format ticket.PayloadFormat) *ticket.Builder {
	t.Helper()
	b, err := ticket.NewBuilder(ticket.Config{PayloadFormat: format})
	require.NoError(t, err)
	return b
}

func TestBuildDocument_Golden(t *testing.T) {
	nl := "&#10;"
	txt := func(s string) string { return "<text>" + s + " " + nl + "</text>" }
	var want strings.Builder
	want.WriteString(`<epos-print xmlns="http://www.epson-pos.com/schemas/2011/03/epos-print">` + nl)
	want.WriteString(`<text align="center"/>` + nl)
	want.WriteString(txt("SÄBY KULLE BACKE EKONOMISK FÖRENING"))
	want.WriteString(`<text align="left"/>` + nl)
	want.WriteString(txt(""))
	want.WriteString(txt("KONTROLLAVGIFT"))
	want.WriteString(txt("--------------------------------"))
	want.WriteString(txt("Ärendenr/OCR: 10000"))
	want.WriteString(txt("Utfärdat av: Anna Andersson"))
	want.WriteString(txt(""))
	want.WriteString(txt("Reg.nr: LJA46J"))
	want.WriteString(txt("Fabrikat: Tesla"))
	want.WriteString(txt(""))
	want.WriteString(txt("Från:  2024-04-25 18:23"))
	want.WriteString(txt("Till:  2024-04-25 18:35"))
	want.WriteString(txt(""))
	want.WriteString(txt("Plats: Stockholmsvägen 43"))
	want.WriteString(txt(""))
	want.WriteString(txt("Belopp: 700 kr"))
	want.WriteString(txt(""))
	want.WriteString(txt("Överträdelse: Förbud att parkera."))
	want.WriteString(txt(""))
	want.WriteString(txt("Vägmarkering kontrollerad: JA"))
	want.WriteString(txt("Vägmärken kontrollerade: JA"))
	want.WriteString(txt("Foto taget: NEJ"))
	want.WriteString(txt(""))
	want.WriteString(txt("--------------------------------"))
	want.WriteString(txt(""))
	want.WriteString(txt("Autogiro: 5815-6332"))
	want.WriteString(txt(""))
	want.WriteString(txt("--------------------------------"))
	want.WriteString(txt(""))
	want.WriteString("<text>Angivna bestämmelser har överträtts." + nl + "</text>")
	want.WriteString(txt(""))
	want.WriteString("<text>Derför uttages en kontrollavgift med belopp     enligt ovan" + nl + "</text>")
	want.WriteString(txt(""))
	want.WriteString("<text>Vid betalning via autogiro ska OCR enges." + nl + "</text>")
	want.WriteString(txt(""))
	want.WriteString("<text>Aviften emotses inom 8 dagar" + nl + "</text>")
	want.WriteString(txt(""))
	want.WriteString("<text>Eventuella invändningar ska göras till          forvaltning@resona.se" + nl + "</text>")
	want.WriteString(txt(""))
	want.WriteString("<text>Scanna för att betala:" + nl + "</text>")
	want.WriteString(`<qr>{"uqr":1,"tp":1,"nme":"Säby Kulle Backe ekonomisk förening ","iref":"10000","due":700,"pt":"BG","acc":"5815-6332"}</qr>` + nl)
	want.WriteString(`<cut type="full"/>` + nl)
	want.WriteString("</epos-print>")

	got := newBuilder(t, ticket.PayloadStructured).BuildDocument(sampleRecord())
	assert.Equal(t, want.String(), got)
}

func TestBuildDocument_DelimitedPayload(t *testing.T) {
	got := newBuilder(t, ticket.PayloadDelimited).BuildDocument(sampleRecord())
	assert.Contains(t, got, "<qr>10000_700_5815-6332</qr>&#10;")
	assert.NotContains(t, got, `"uqr"`)
}

func TestBuildDocument_SingleCutAndQR(t *testing.T) {
	for _, format := range []ticket.PayloadFormat{ticket.PayloadStructured, ticket.PayloadDelimited} {
		doc := newBuilder(t, format).BuildDocument(sampleRecord())
		assert.Equal(t, 1, strings.Count(doc, "<cut "), "format %s", format)
		assert.Equal(t, 1, strings.Count(doc, "<qr>"), "format %s", format)
		assert.Equal(t, 1, strings.Count(doc, "</qr>"), "format %s", format)
		assert.True(t, strings.HasSuffix(doc, "</epos-print>"))
	}
}

func TestBuildDocument_CaseHandling(t *testing.T) {
	rec := sampleRecord()
	rec.Company = "Bolaget ab"
	rec.VehiclePlate = "abc123"
	rec.Location = "Gamla Vägen 1b"
	rec.ViolationType = "Parkeringsskiva saknas/ej synlig"

	doc := newBuilder(t, ticket.PayloadStructured).BuildDocument(rec)

	assert.Contains(t, doc, "BOLAGET AB")
	assert.NotContains(t, doc, "Bolaget ab")
	assert.Contains(t, doc, "Reg.nr: ABC123")
	assert.NotContains(t, doc, "abc123")
	assert.Contains(t, doc, "Plats: Gamla Vägen 1b")
	assert.Contains(t, doc, "Överträdelse: Parkeringsskiva saknas/ej synlig")
}

func TestBuildDocument_FullCaseMapping(t *testing.T) {
	rec := sampleRecord()
	rec.Company = "straße"
	rec.VehiclePlate = "åäö123"

	doc := newBuilder(t, ticket.PayloadStructured).BuildDocument(rec)

	assert.Contains(t, doc, "<text>STRASSE ")
	assert.Contains(t, doc, "Reg.nr: ÅÄÖ123")
}

func TestBuildDocument_EscapesMarkup(t *testing.T) {
	rec := sampleRecord()
	rec.Location = "A & B < C"
	rec.IssuerName = `Kim "K" > Lee`
	rec.Company = "a&b"

	doc := newBuilder(t, ticket.PayloadStructured).BuildDocument(rec)

	assert.Contains(t, doc, "A &amp; B &lt; C")
	assert.NotContains(t, doc, "A & B")
	assert.NotContains(t, doc, "< C")
	assert.Contains(t, doc, `Kim "K" &gt; Lee`)
	assert.Contains(t, doc, "A&amp;B")
}

func TestBuildDocument_EscapedPayloadFields(t *testing.T) {
	rec := sampleRecord()
	rec.ReferenceNumber = "1<2"
	rec.Amount = "7&0"

	doc := newBuilder(t, ticket.PayloadDelimited).BuildDocument(rec)
	assert.Contains(t, doc, "<qr>1&lt;2_7&amp;0_5815-6332</qr>")
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "&amp;lt;", ticket.Escape("&lt;"))
	assert.Equal(t, `'"`, ticket.Escape(`'"`))
	assert.Equal(t, "&lt;&gt;&amp;", ticket.Escape("<>&"))
}

func TestNewBuilder_RejectsUnknownFormat(t *testing.T) {
	_, err := ticket.NewBuilder(ticket.Config{PayloadFormat: "xml"})
	assert.Error(t, err)
}

func TestNewBuilder_Defaults(t *testing.T) {
	b, err := ticket.NewBuilder(ticket.Config{})
	require.NoError(t, err)
	assert.Equal(t, ticket.PayloadStructured, b.PayloadFormat())
	assert.Contains(t, b.QRPayload(sampleRecord()), `"acc":"5815-6332"`)
	assert.Contains(t, b.QRPayload(sampleRecord()), `"nme":"Säby Kulle Backe ekonomisk förening ",`)
}
