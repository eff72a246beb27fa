// Package pdf turns a normalized invoice into a printable document.
// The builder produces a declarative Document, a plain description of
// bands, tables and text blocks with no I/O and no engine types, and
// the Renderer turns that description into PDF bytes with maroto.
package pdf

// RGB is a plain 8-bit color triple, kept engine-agnostic so the
// Document stays a pure value.
type RGB struct {
	R, G, B int
}

// Document palette
var (
	ColorBand     = RGB{R: 75, G: 41, B: 131}   // dark purple band
	ColorBandTint = RGB{R: 234, G: 228, B: 243} // light purple tint
	ColorBorder   = RGB{R: 209, G: 213, B: 219}
	ColorText     = RGB{R: 31, G: 41, B: 55}
	ColorHeading  = RGB{R: 17, G: 24, B: 39}
	ColorLink     = RGB{R: 37, G: 99, B: 235}
	ColorWhite    = RGB{R: 255, G: 255, B: 255}
)

// LabelValue is one label/value pair of a two-column table
type LabelValue struct {
	Label string
	Value string
}

// PartyLine is a single line of an address block
type PartyLine struct {
	Text string
	Bold bool
}

// PartyBlock is a titled address block (BILL TO / SHIP TO)
type PartyBlock struct {
	Title string
	Lines []PartyLine
}

// ItemRow is one visual row of the line-items table. Filler rows pad
// the table up to its minimum height and carry empty cells.
type ItemRow struct {
	Index       string
	Description string
	Quantity    string
	UnitPrice   string
	LineTotal   string
	Tinted      bool
	Filler      bool
}

// TotalsLine is one row of the totals block
type TotalsLine struct {
	Label    string
	Value    string
	Band     bool // dark band, white text
	Tinted   bool // light tint
	Emphasis bool // larger type (grand total)
}

// Footer is the signature band and closing contact text
type Footer struct {
	Date          string
	ContactPerson string
	ContactLines  []PartyLine
}

// Document is the full declarative description of one invoice PDF.
// It is deterministic for identical inputs and safe to diff in tests.
type Document struct {
	Title       string // rendering-engine document title
	FileName    string // suggested download filename
	Heading     string
	Meta        []LabelValue // DATE / INVOICE NO. / CUSTOMER NO.
	Issuer      []string
	BillTo      PartyBlock
	ShipTo      PartyBlock
	Shipping    []LabelValue // presentational placeholders, values "-"
	ItemColumns []string
	Items       []ItemRow
	NotesLabel  string
	Notes       string // LF-normalized, may be empty
	Totals      []TotalsLine
	Footer      Footer
}
