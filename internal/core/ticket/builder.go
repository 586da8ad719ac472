// Package ticket renders violation records as Epson ePOS-Print XML receipts.
package ticket

import (
	"fmt"
	"strings"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	eposNamespace = "http://www.epson-pos.com/schemas/2011/03/epos-print"
	lineFeed      = "&#10;"
	separator     = "--------------------------------"
)

// DefaultPaymentAccount is the bankgiro number printed on receipts.
const DefaultPaymentAccount = "5815-6332"

// DefaultPayeeName is the payee carried in the structured QR payload. The
// trailing space is part of the payload receipts have always been printed with.
const DefaultPayeeName = "Säby Kulle Backe ekonomisk förening "

// Boilerplate printed under the record details, in order.
var legalText = []string{
	"Angivna bestämmelser har överträtts.",
	"Derför uttages en kontrollavgift med belopp     enligt ovan",
	"Vid betalning via autogiro ska OCR enges.",
	"Aviften emotses inom 8 dagar",
	"Eventuella invändningar ska göras till          forvaltning@resona.se",
}

var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// upper applies full Unicode case mapping, so "ß" becomes "SS".
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// Escape replaces &, < and > with entity references. Nothing else is escaped.
func Escape(s string) string {
	return markupEscaper.Replace(s)
}

// Config controls the parts of the receipt that are not taken from the record.
type Config struct {
	PayloadFormat  PayloadFormat
	PayeeName      string
	PaymentAccount string
}

// Builder renders receipts. A single Builder is shared by every code path that
// prints, so a record always gets the same QR payload.
type Builder struct {
	cfg Config
}

// NewBuilder validates cfg and fills in defaults.
func NewBuilder(cfg Config) (*Builder, error) {
	format, err := ParsePayloadFormat(string(cfg.PayloadFormat))
	if err != nil {
		return nil, err
	}
	cfg.PayloadFormat = format
	if cfg.PayeeName == "" {
		cfg.PayeeName = DefaultPayeeName
	}
	if cfg.PaymentAccount == "" {
		cfg.PaymentAccount = DefaultPaymentAccount
	}
	return &Builder{cfg: cfg}, nil
}

// PayloadFormat returns the QR payload format this builder was configured with.
func (b *Builder) PayloadFormat() PayloadFormat {
	return b.cfg.PayloadFormat
}

// QRPayload returns the escaped payment payload for rec.
func (b *Builder) QRPayload(rec domain.ViolationRecord) string {
	reference := Escape(rec.ReferenceNumber)
	amount := Escape(rec.Amount)
	account := Escape(b.cfg.PaymentAccount)
	if b.cfg.PayloadFormat == PayloadDelimited {
		return delimitedPayload(reference, amount, account)
	}
	return structuredPayload(Escape(b.cfg.PayeeName), reference, amount, account)
}

// BuildDocument renders rec as a complete ePOS-Print document.
func (b *Builder) BuildDocument(rec domain.ViolationRecord) string {
	var sb strings.Builder
	sb.Grow(2048)

	directive := func(s string) {
		sb.WriteString(s)
		sb.WriteString(lineFeed)
	}
	// line writes a text element with the trailing space the printer app expects.
	line := func(s string) {
		sb.WriteString("<text>")
		sb.WriteString(s)
		sb.WriteString(" ")
		sb.WriteString(lineFeed)
		sb.WriteString("</text>")
	}
	blank := func() { line("") }
	field := func(label, value string) { line(label + Escape(value)) }

	directive(fmt.Sprintf(`<epos-print xmlns="%s">`, eposNamespace))
	directive(`<text align="center"/>`)
	line(Escape(upper(rec.Company)))
	directive(`<text align="left"/>`)
	blank()

	line("KONTROLLAVGIFT")
	line(separator)
	field("Ärendenr/OCR: ", rec.ReferenceNumber)
	field("Utfärdat av: ", rec.IssuerName)
	blank()

	line("Reg.nr: " + Escape(upper(rec.VehiclePlate)))
	field("Fabrikat: ", rec.VehicleMake)
	blank()
	field("Från:  ", rec.PeriodStart)
	field("Till:  ", rec.PeriodEnd)
	blank()
	field("Plats: ", rec.Location)
	blank()
	line("Belopp: " + Escape(rec.Amount) + " kr")
	blank()
	field("Överträdelse: ", rec.ViolationType)
	blank()
	field("Vägmarkering kontrollerad: ", string(rec.RoadMarkingChecked))
	field("Vägmärken kontrollerade: ", string(rec.RoadSignChecked))
	field("Foto taget: ", string(rec.PhotoTaken))
	blank()
	line(separator)
	blank()
	field("Autogiro: ", b.cfg.PaymentAccount)
	blank()
	line(separator)
	blank()

	for _, text := range legalText {
		sb.WriteString("<text>" + text + lineFeed + "</text>")
		blank()
	}
	sb.WriteString("<text>Scanna för att betala:" + lineFeed + "</text>")

	directive("<qr>" + b.QRPayload(rec) + "</qr>")
	directive(`<cut type="full"/>`)
	sb.WriteString("</epos-print>")
	return sb.String()
}
