// Command seedhsn converts the GST HSN/SAC rate workbook into a SQL seed for
// the hsn_codes table. Goods come from the first sheet, services from SAC_Master.
//
//	go run ./cmd/seedhsn --input "GST_HSN.xlsx" --output db/seeds/hsn_codes.sql
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/xuri/excelize/v2"
)

const batchSize = 500

func main() {
	app := &cli.App{
		Name:  "seedhsn",
		Usage: "generate the hsn_codes seed from the GST rate workbook",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "HSN/SAC workbook", Required: true},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "db/seeds/hsn_codes.sql", Usage: "SQL file to write"},
			&cli.StringFlag{Name: "sac-sheet", Value: "SAC_Master", Usage: "sheet holding service codes"},
			&cli.StringFlag{Name: "effective-from", Value: "2017-07-01", Usage: "effective_from date for every row"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	f, err := excelize.OpenFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	set := newEntrySet()

	goods, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return fmt.Errorf("read goods sheet: %w", err)
	}
	n := parseGoods(goods, set)
	log.Printf("goods sheet: %d entries", n)

	services, err := f.GetRows(c.String("sac-sheet"))
	if err != nil {
		return fmt.Errorf("read %s: %w", c.String("sac-sheet"), err)
	}
	n = parseServices(services, set)
	log.Printf("services sheet: %d entries", n)

	out, err := os.Create(c.String("output"))
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = out.Close() }()

	if err := writeSeed(out, set.entries, c.String("effective-from")); err != nil {
		return err
	}
	log.Printf("wrote %d entries to %s", len(set.entries), c.String("output"))
	return nil
}

// writeSeed emits one transaction of batched, idempotent INSERTs.
func writeSeed(w io.Writer, entries []hsnEntry, effectiveFrom string) error {
	var b strings.Builder
	b.WriteString("-- HSN/SAC rate seed generated by cmd/seedhsn.\n")
	fmt.Fprintf(&b, "-- %d entries.\n", len(entries))
	b.WriteString("BEGIN;\n\n")

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		b.WriteString("INSERT INTO hsn_codes (code, description, gst_rate, condition_desc, effective_from) VALUES\n")
		for j, e := range entries[i:end] {
			if j > 0 {
				b.WriteString(",\n")
			}
			fmt.Fprintf(&b, "  ('%s', '%s', %s, '%s', '%s')",
				escapeSQL(e.code), escapeSQL(e.description), e.rate.StringFixed(2),
				escapeSQL(e.condition), escapeSQL(effectiveFrom))
		}
		b.WriteString("\nON CONFLICT ON CONSTRAINT hsn_codes_rate_key DO NOTHING;\n\n")
	}
	b.WriteString("COMMIT;\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// max length of a description kept in the seed
const maxDescription = 500

func clip(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxDescription {
		s = s[:maxDescription]
	}
	return s
}
