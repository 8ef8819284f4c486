// Command invoicectl renders and checks invoices from a JSON file without a
// database or object storage.
//
//	go run ./cmd/invoicectl render --input invoice.json --output invoice.pdf --logo logo.png
//	go run ./cmd/invoicectl totals --input invoice.json --json
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"hisaab/internal/gst"
	"hisaab/internal/invoicepdf"
)

func main() {
	inputFlag := &cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "invoice JSON file, - for stdin", Required: true}

	app := &cli.App{
		Name:  "invoicectl",
		Usage: "render GST invoices offline",
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "write the invoice PDF",
				Flags: []cli.Flag{
					inputFlag,
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "invoice.pdf"},
					&cli.StringFlag{Name: "logo", Usage: "PNG/JPEG logo"},
					&cli.StringFlag{Name: "signature", Usage: "PNG/JPEG signature"},
				},
				Action: renderCmd,
			},
			{
				Name:  "totals",
				Usage: "print tax totals and the HSN summary",
				Flags: []cli.Flag{
					inputFlag,
					&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table"},
				},
				Action: totalsCmd,
			},
			{
				Name:   "layout",
				Usage:  "print how the line items are paginated",
				Flags:  []cli.Flag{inputFlag},
				Action: layoutCmd,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadInput(c *cli.Context) (invoicepdf.Input, error) {
	doc, err := readInvoiceFile(c.String("input"))
	if err != nil {
		return invoicepdf.Input{}, err
	}
	return doc.toInput()
}

func renderCmd(c *cli.Context) error {
	in, err := loadInput(c)
	if err != nil {
		return err
	}
	if in.Logo, err = readOptional(c.String("logo")); err != nil {
		return err
	}
	if in.Signature, err = readOptional(c.String("signature")); err != nil {
		return err
	}
	in.GeneratedAt = time.Now()

	out, err := os.Create(c.String("output"))
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = out.Close() }()

	doc, err := invoicepdf.Render(out, in)
	if err != nil {
		return err
	}
	log.Printf("wrote %s: %d page(s), grand total %s", c.String("output"), doc.PageCount(), gst.FormatINR(doc.Totals.GrandTotal))
	return nil
}

func readOptional(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

type totalsReport struct {
	gst.TaxTotals
	PlaceOfSupply string              `json:"place_of_supply"`
	InWords       string              `json:"in_words"`
	HSN           []gst.HSNSummaryRow `json:"hsn_summary,omitempty"`
}

func buildTotals(in invoicepdf.Input) totalsReport {
	t := gst.AggregateTotals(in.Items, in.Jurisdiction, in.GSTActive)
	return totalsReport{
		TaxTotals:     t,
		PlaceOfSupply: gst.PlaceOfSupplyLabel(in.Meta.PlaceOfSupply),
		InWords:       gst.AmountInWords(t.GrandTotal),
		HSN:           gst.BuildHSNSummary(in.Items, in.Jurisdiction, in.GSTActive),
	}
}

func totalsCmd(c *cli.Context) error {
	in, err := loadInput(c)
	if err != nil {
		return err
	}
	rep := buildTotals(in)
	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return writeTotals(c.App.Writer, rep)
}

func writeTotals(w io.Writer, rep totalsReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Jurisdiction\t%s\t\n", rep.Jurisdiction)
	if rep.PlaceOfSupply != "" {
		fmt.Fprintf(tw, "Place of Supply\t%s\t\n", rep.PlaceOfSupply)
	}
	fmt.Fprintf(tw, "Taxable Value\t%s\t\n", gst.FormatINR(rep.TaxableValue))
	fmt.Fprintf(tw, "CGST\t%s\t\n", gst.FormatINR(rep.CGST))
	fmt.Fprintf(tw, "SGST\t%s\t\n", gst.FormatINR(rep.SGST))
	fmt.Fprintf(tw, "IGST\t%s\t\n", gst.FormatINR(rep.IGST))
	fmt.Fprintf(tw, "Grand Total\t%s\t\n", gst.FormatINR(rep.GrandTotal))
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n", rep.InWords)

	if len(rep.HSN) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "HSN\tRate\tTaxable\tCGST\tSGST\tIGST\tTotal\t")
	for _, r := range rep.HSN {
		rate := ""
		if !r.IsTotal {
			rate = r.TaxRate.String() + "%"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", r.HSN, rate,
			gst.FormatAmount(r.Taxable), gst.FormatAmount(r.CGST), gst.FormatAmount(r.SGST),
			gst.FormatAmount(r.IGST), gst.FormatAmount(r.Total))
	}
	return tw.Flush()
}

func layoutCmd(c *cli.Context) error {
	in, err := loadInput(c)
	if err != nil {
		return err
	}
	doc, err := invoicepdf.Layout(in)
	if err != nil {
		return err
	}
	return writeLayout(c.App.Writer, doc)
}

func writeLayout(w io.Writer, doc *invoicepdf.Document) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Page\tRows\tTable height\tHSN summary\t")
	for _, p := range doc.Pages {
		rows := "-"
		if len(p.Rows) > 0 {
			rows = fmt.Sprintf("%d-%d", p.Rows[0]+1, p.Rows[len(p.Rows)-1]+1)
		}
		hsn := "no"
		if p.HSNSummary {
			hsn = fmt.Sprintf("yes (+%.1f)", p.HSNOffset)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\t\n", p.Label, rows, p.TableHeight, hsn)
	}
	return tw.Flush()
}
