package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// RenderConfig is the one-time renderer setup: page geometry and the
// base font. Construct a Renderer once at startup and reuse it; fonts
// and page settings are not module-level side effects.
type RenderConfig struct {
	Margin     float64
	FontFamily string
	FontSize   float64
}

// DefaultRenderConfig returns the A4 layout the document was designed for
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Margin:     10,
		FontFamily: "helvetica",
		FontSize:   8,
	}
}

// Renderer turns a Document into PDF bytes using maroto
type Renderer struct {
	cfg RenderConfig
}

// NewRenderer creates a renderer with the given configuration
func NewRenderer(cfg RenderConfig) *Renderer {
	if cfg.FontFamily == "" {
		cfg.FontFamily = "helvetica"
	}
	if cfg.FontSize == 0 {
		cfg.FontSize = 8
	}
	if cfg.Margin == 0 {
		cfg.Margin = 10
	}
	return &Renderer{cfg: cfg}
}

// Render lays out the document and returns the generated PDF bytes
func (r *Renderer) Render(doc Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(r.cfg.Margin).WithRightMargin(r.cfg.Margin).
		WithTopMargin(r.cfg.Margin).WithBottomMargin(r.cfg.Margin).
		WithDefaultFont(&props.Font{Family: r.cfg.FontFamily, Size: r.cfg.FontSize}).
		WithTitle(doc.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(r.headerRows(doc)...)
	m.AddRows(r.issuerRows(doc)...)
	m.AddRows(r.partyRows(doc)...)
	m.AddRows(r.shippingRows(doc)...)
	m.AddRows(r.itemRows(doc)...)
	m.AddRows(r.notesRows(doc)...)
	m.AddRows(r.totalsRows(doc)...)
	m.AddRows(r.footerRows(doc)...)

	result, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: render document: %w", err)
	}
	return result.GetBytes(), nil
}

func (r *Renderer) headerRows(doc Document) []core.Row {
	rows := []core.Row{
		row.New(12).Add(
			col.New(7).Add(text.New(doc.Heading, props.Text{
				Style: fontstyle.Bold, Size: 24, Color: toColor(ColorHeading), Top: 1,
			})),
		),
	}
	for _, meta := range doc.Meta {
		rows = append(rows, row.New(6).Add(
			col.New(7),
			bandedCell(2, meta.Label, align.Left, ColorText, nil, false),
			bandedCell(3, meta.Value, align.Right, ColorWhite, &ColorBand, true),
		))
	}
	rows = append(rows, row.New(4))
	return rows
}

func (r *Renderer) issuerRows(doc Document) []core.Row {
	rows := make([]core.Row, 0, len(doc.Issuer)+1)
	for i, line := range doc.Issuer {
		style := props.Text{Size: r.cfg.FontSize, Color: toColor(ColorText), Top: 0.5}
		if i == 0 {
			style = props.Text{Style: fontstyle.Bold, Size: 12, Color: toColor(ColorHeading), Top: 0.5}
		}
		height := 4.5
		if i == 0 {
			height = 7
		}
		rows = append(rows, row.New(height).Add(col.New(12).Add(text.New(line, style))))
	}
	rows = append(rows, row.New(4))
	return rows
}

func (r *Renderer) partyRows(doc Document) []core.Row {
	rows := []core.Row{
		row.New(6).Add(
			bandedCell(6, doc.BillTo.Title, align.Left, ColorWhite, &ColorBand, true),
			bandedCell(6, doc.ShipTo.Title, align.Left, ColorWhite, &ColorBand, true),
		),
	}

	// Both blocks come from the same splitting routine, so walk them in
	// lockstep and pad the shorter side with blanks.
	height := max(len(doc.BillTo.Lines), len(doc.ShipTo.Lines))
	for i := 0; i < height; i++ {
		rows = append(rows, row.New(5).Add(
			partyLineCell(doc.BillTo.Lines, i, r.cfg.FontSize),
			partyLineCell(doc.ShipTo.Lines, i, r.cfg.FontSize),
		))
	}
	rows = append(rows, row.New(4))
	return rows
}

func (r *Renderer) shippingRows(doc Document) []core.Row {
	if len(doc.Shipping) == 0 {
		return nil
	}
	span := 12 / len(doc.Shipping)
	header := row.New(6)
	values := row.New(6)
	var headerCols, valueCols []core.Col
	for _, lv := range doc.Shipping {
		headerCols = append(headerCols, bandedCell(span, lv.Label, align.Center, ColorWhite, &ColorBand, true))
		valueCols = append(valueCols, bandedCell(span, lv.Value, align.Center, ColorText, nil, false))
	}
	header.Add(headerCols...)
	values.Add(valueCols...)
	return []core.Row{header, values, row.New(4)}
}

// item table spans: index, description, qty, unit price, line total
var itemSpans = []int{1, 5, 2, 2, 2}

func (r *Renderer) itemRows(doc Document) []core.Row {
	header := row.New(7)
	aligns := []align.Type{align.Center, align.Left, align.Center, align.Right, align.Right}
	var headerCols []core.Col
	for i, label := range doc.ItemColumns {
		headerCols = append(headerCols, bandedCell(itemSpans[i], label, aligns[i], ColorWhite, &ColorBand, true))
	}
	header.Add(headerCols...)

	rows := []core.Row{header}
	for _, item := range doc.Items {
		var fill *RGB
		if item.Tinted {
			fill = &ColorBandTint
		}
		rows = append(rows, row.New(7).Add(
			bandedCell(itemSpans[0], item.Index, align.Center, ColorText, fill, false),
			bandedCell(itemSpans[1], item.Description, align.Left, ColorText, fill, false),
			bandedCell(itemSpans[2], item.Quantity, align.Center, ColorText, fill, false),
			bandedCell(itemSpans[3], item.UnitPrice, align.Right, ColorText, fill, false),
			bandedCell(itemSpans[4], item.LineTotal, align.Right, ColorText, fill, true),
		))
	}
	rows = append(rows, row.New(4))
	return rows
}

func (r *Renderer) notesRows(doc Document) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New(doc.NotesLabel, props.Text{
			Style: fontstyle.Bold, Size: r.cfg.FontSize, Color: toColor(ColorText),
		}))),
	}

	lines := strings.Split(doc.Notes, "\n")
	for _, line := range lines {
		rows = append(rows, row.New(4.5).Add(col.New(12).Add(text.New(line, props.Text{
			Size: r.cfg.FontSize, Color: toColor(ColorText),
		}))))
	}
	// empty notes still reserve a visible placeholder area
	if doc.Notes == "" {
		rows = append(rows, row.New(10))
	}
	rows = append(rows, row.New(4))
	return rows
}

func (r *Renderer) totalsRows(doc Document) []core.Row {
	rows := make([]core.Row, 0, len(doc.Totals)+1)
	for _, line := range doc.Totals {
		textColor := ColorText
		var fill *RGB
		bold := false
		size := r.cfg.FontSize + 1
		switch {
		case line.Band:
			textColor = ColorWhite
			fill = &ColorBand
			bold = true
		case line.Tinted:
			fill = &ColorBandTint
			bold = true
		}
		if line.Emphasis {
			size = 14
		}
		label := cellText(line.Label, align.Left, textColor, bold, size)
		value := cellText(line.Value, align.Right, textColor, bold, size)
		labelCol := col.New(4).Add(label)
		valueCol := col.New(2).Add(value)
		if fill != nil {
			labelCol.WithStyle(&props.Cell{BackgroundColor: toColor(*fill)})
			valueCol.WithStyle(&props.Cell{BackgroundColor: toColor(*fill)})
		}
		rows = append(rows, row.New(8).Add(col.New(6), labelCol, valueCol))
	}
	rows = append(rows, row.New(6))
	return rows
}

func (r *Renderer) footerRows(doc Document) []core.Row {
	rows := []core.Row{
		row.New(7).Add(
			bandedCell(6, "DATE", align.Center, ColorWhite, &ColorBand, true),
			bandedCell(6, "AUTHORIZED SIGNATURE", align.Center, ColorWhite, &ColorBand, true),
		),
		row.New(7).Add(
			bandedCell(6, doc.Footer.Date, align.Center, ColorText, nil, false),
			bandedCell(6, doc.Footer.ContactPerson, align.Center, ColorText, nil, true),
		),
		row.New(5),
	}
	for _, line := range doc.Footer.ContactLines {
		color := ColorText
		if strings.HasPrefix(line.Text, "www.") {
			color = ColorLink
		}
		style := props.Text{Size: r.cfg.FontSize, Align: align.Center, Color: toColor(color)}
		if line.Bold {
			style.Style = fontstyle.Bold
		}
		rows = append(rows, row.New(4.5).Add(col.New(12).Add(text.New(line.Text, style))))
	}
	return rows
}

// bandedCell builds a single-text column, optionally over a filled band
func bandedCell(span int, content string, a align.Type, textColor RGB, fill *RGB, bold bool) core.Col {
	c := col.New(span).Add(cellText(content, a, textColor, bold, 0))
	if fill != nil {
		c.WithStyle(&props.Cell{BackgroundColor: toColor(*fill)})
	}
	return c
}

func cellText(content string, a align.Type, color RGB, bold bool, size float64) core.Component {
	style := props.Text{Align: a, Color: toColor(color), Top: 1.5, Left: 1, Right: 1}
	if bold {
		style.Style = fontstyle.Bold
	}
	if size > 0 {
		style.Size = size
	}
	return text.New(content, style)
}

func partyLineCell(lines []PartyLine, i int, size float64) core.Col {
	if i >= len(lines) {
		return col.New(6)
	}
	style := props.Text{Size: size, Color: toColor(ColorText), Top: 0.5, Left: 1}
	if lines[i].Bold {
		style.Style = fontstyle.Bold
	}
	return col.New(6).Add(text.New(lines[i].Text, style))
}

func toColor(c RGB) *props.Color {
	return &props.Color{Red: c.R, Green: c.G, Blue: c.B}
}
