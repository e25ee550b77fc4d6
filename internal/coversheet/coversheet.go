// Package coversheet renders the one-page transaction summary PDF.
//
// The layout is fixed: title, role subtitle, then Property Information, Agent
// Information, Client Information, and Commission Information blocks followed
// by a generation timestamp. A block is omitted entirely when its governing
// data structure is absent; within a block, a labeled line is emitted only
// when its source value is non-empty.
package coversheet

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/harborlight/intake/internal/form"
)

const (
	titleFontSize    = 18
	subtitleFontSize = 12
	headingFontSize  = 13
	bodyFontSize     = 10
	lineHeight       = 6
)

// line is one rendered row inside a block. Bold rows introduce a client;
// indented rows are client contact sub-lines.
type line struct {
	Text   string
	Bold   bool
	Indent bool
}

// block is one titled section of the cover sheet.
type block struct {
	Heading string
	Lines   []line
}

// document is the fully resolved cover-sheet content before drawing.
type document struct {
	Title    string
	Subtitle string
	Blocks   []block
	Footer   string
}

// Generator renders cover sheets. Construct it with New.
type Generator struct {
	clock func() time.Time
}

// New returns a Generator using the supplied clock for the footer timestamp.
// A nil clock defaults to time.Now.
func New(clock func() time.Time) *Generator {
	if clock == nil {
		clock = time.Now
	}
	return &Generator{clock: clock}
}

// Render produces the cover-sheet PDF bytes for the given form data.
func (g *Generator) Render(data form.TransactionFormData, roleLabel string) ([]byte, error) {
	doc := g.layout(data, roleLabel)

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 16, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", titleFontSize)
	pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")
	if doc.Subtitle != "" {
		pdf.SetFont("Helvetica", "", subtitleFontSize)
		pdf.CellFormat(0, 7, doc.Subtitle, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	for _, b := range doc.Blocks {
		pdf.SetFont("Helvetica", "B", headingFontSize)
		pdf.CellFormat(0, 8, b.Heading, "B", 1, "L", false, 0, "")
		pdf.Ln(1)
		for _, l := range b.Lines {
			style := ""
			if l.Bold {
				style = "B"
			}
			text := l.Text
			if l.Indent {
				text = "  " + text
			}
			pdf.SetFont("Helvetica", style, bodyFontSize)
			pdf.CellFormat(0, lineHeight, text, "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, doc.Footer, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render cover sheet: %w", err)
	}
	return buf.Bytes(), nil
}

// layout resolves form data into the document model. Formatting failures
// surface as empty values, which drop the affected line per the omission rule.
func (g *Generator) layout(data form.TransactionFormData, roleLabel string) document {
	doc := document{
		Title:    "Transaction Cover Sheet",
		Subtitle: roleLabel,
		Footer:   fmt.Sprintf("Generated %s", g.clock().UTC().Format(time.RFC3339)),
	}
	if b, ok := propertyBlock(data.PropertyData); ok {
		doc.Blocks = append(doc.Blocks, b)
	}
	if b, ok := agentBlock(data.AgentData); ok {
		doc.Blocks = append(doc.Blocks, b)
	}
	if b, ok := clientBlock(data.Clients); ok {
		doc.Blocks = append(doc.Blocks, b)
	}
	if b, ok := commissionBlock(data.CommissionData); ok {
		doc.Blocks = append(doc.Blocks, b)
	}
	return doc
}

func propertyBlock(property *form.PropertyData) (block, bool) {
	if property == nil {
		return block{}, false
	}
	b := block{Heading: "Property Information"}
	b.add("Address", property.Address)
	b.add("MLS Number", property.MLSNumber)
	b.add("Sale Price", Currency(property.SalePrice))
	b.add("Contract Date", property.ContractDate)
	b.add("Closing Date", property.ClosingDate)
	b.add("Occupancy", property.OccupancyInfo)
	return b, true
}

func agentBlock(agent *form.AgentData) (block, bool) {
	if agent == nil {
		return block{}, false
	}
	b := block{Heading: "Agent Information"}
	b.add("Name", agent.Name)
	b.add("Role", agent.Role)
	b.add("Email", agent.Email)
	b.add("Phone", agent.Phone)
	return b, true
}

func clientBlock(clients []form.Client) (block, bool) {
	if len(clients) == 0 {
		return block{}, false
	}
	b := block{Heading: "Client Information"}
	for i, client := range clients {
		b.Lines = append(b.Lines, line{Text: fmt.Sprintf("Client %d: %s", i+1, client.Name), Bold: true})
		if client.Email != "" {
			b.Lines = append(b.Lines, line{Text: "Email: " + client.Email, Indent: true})
		}
		if client.Phone != "" {
			b.Lines = append(b.Lines, line{Text: "Phone: " + client.Phone, Indent: true})
		}
	}
	return b, true
}

func commissionBlock(commission *form.CommissionData) (block, bool) {
	if commission == nil {
		return block{}, false
	}
	b := block{Heading: "Commission Information"}
	b.add("Total Commission", Percent(commission.TotalCommissionPercent))
	b.add("Listing Agent", Percent(commission.ListingAgentPercent))
	b.add("Buyers Agent", Percent(commission.BuyersAgentPercent))
	b.add("Brokerage Split", Percent(commission.BrokerageSplit))
	b.add("Referral Fee", Percent(commission.ReferralFee))
	b.add("Transaction Fee", Currency(commission.TransactionFee))
	return b, true
}

// add appends one "Label: value" line, skipping it when the value is empty.
func (b *block) add(label, value string) {
	if value == "" {
		return
	}
	b.Lines = append(b.Lines, line{Text: label + ": " + value})
}
