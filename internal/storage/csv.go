package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/diogomix/bingopress/internal/bingo"
)

// Separator is the delimiter of every layout file.
const Separator = ';'

// FormatError reports a malformed layout source. A single bad cell fails the
// whole load; no partial card set is ever returned.
type FormatError struct {
	File   string
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: line %d: %s", e.File, e.Line, e.Reason)
}

// WriteSimple persists the audit table: ID_Carton plus Num_1..Num_k columns,
// one row per card, 1-based ids.
func WriteSimple(path string, layout bingo.SimpleLayout) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = Separator

	header := append([]string{"ID_Carton"}, layout.Columns()...)
	if err := w.Write(header); err != nil {
		return err
	}

	record := make([]string, 0, len(header))
	for i, row := range layout.Rows {
		record = record[:0]
		record = append(record, strconv.Itoa(i+1))
		for _, n := range row {
			record = append(record, strconv.Itoa(n))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ReadSimple loads a simple layout table written by WriteSimple.
func ReadSimple(path string) (bingo.SimpleLayout, error) {
	records, err := readAll(path)
	if err != nil {
		return bingo.SimpleLayout{}, err
	}
	if len(records) < 1 {
		return bingo.SimpleLayout{}, &FormatError{File: path, Line: 1, Reason: "missing header"}
	}

	k := len(records[0]) - 1
	if k < 1 {
		return bingo.SimpleLayout{}, &FormatError{File: path, Line: 1, Reason: "no number columns"}
	}

	layout := bingo.SimpleLayout{NumbersPerCard: k}
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) != k+1 {
			return bingo.SimpleLayout{}, &FormatError{
				File: path, Line: line,
				Reason: fmt.Sprintf("expected %d columns, got %d", k+1, len(rec)),
			}
		}
		nums, err := parseInts(rec[1:], path, line)
		if err != nil {
			return bingo.SimpleLayout{}, err
		}
		layout.Rows = append(layout.Rows, bingo.Card(nums))
	}
	return layout, nil
}

// WritePaired persists the print layout: one row per sheet pair, left sheet
// id then its slots A..C, right sheet id then slots D..F.
func WritePaired(path string, layout bingo.PairedLayout) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = Separator

	if err := w.Write(pairedHeader(layout.NumbersPerCard)); err != nil {
		return err
	}

	for _, row := range layout.Rows {
		record := make([]string, 0, 2+2*layout.CardsPerSheet*layout.NumbersPerCard)
		record = append(record, row.LeftID)
		for _, card := range row.Left {
			for _, n := range card {
				record = append(record, strconv.Itoa(n))
			}
		}
		record = append(record, row.RightID)
		for _, card := range row.Right {
			for _, n := range card {
				record = append(record, strconv.Itoa(n))
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func pairedHeader(numbersPerCard int) []string {
	header := []string{"Sheet_1"}
	for _, slot := range bingo.LeftSlots {
		for i := 1; i <= numbersPerCard; i++ {
			header = append(header, fmt.Sprintf("%s%d", slot, i))
		}
	}
	header = append(header, "Sheet_2")
	for _, slot := range bingo.RightSlots {
		for i := 1; i <= numbersPerCard; i++ {
			header = append(header, fmt.Sprintf("%s%d", slot, i))
		}
	}
	return header
}

// ReadPaired loads a paired layout. The per-card width is inferred from the
// column count: a row is 2*(1 + 3k) cells wide, which for the standard
// 10-number card puts slot A in columns 1-10, B in 11-20, C in 21-30, the
// right sheet id in column 31 and D, E, F in 32-61.
func ReadPaired(path string) (bingo.PairedLayout, error) {
	records, err := readAll(path)
	if err != nil {
		return bingo.PairedLayout{}, err
	}
	if len(records) < 2 {
		return bingo.PairedLayout{}, &FormatError{File: path, Line: 1, Reason: "no data rows"}
	}

	cols := len(records[0])
	slots := len(bingo.LeftSlots) + len(bingo.RightSlots)
	if cols < 2+slots || (cols-2)%slots != 0 {
		return bingo.PairedLayout{}, &FormatError{
			File: path, Line: 1,
			Reason: fmt.Sprintf("column count %d does not fit a paired layout", cols),
		}
	}
	k := (cols - 2) / slots

	layout := bingo.PairedLayout{
		NumbersPerCard: k,
		CardsPerSheet:  len(bingo.LeftSlots),
	}

	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) != cols {
			return bingo.PairedLayout{}, &FormatError{
				File: path, Line: line,
				Reason: fmt.Sprintf("expected %d columns, got %d", cols, len(rec)),
			}
		}

		row := bingo.PairedRow{
			LeftID:  strings.TrimSpace(rec[0]),
			RightID: strings.TrimSpace(rec[1+len(bingo.LeftSlots)*k]),
		}
		for s := 0; s < len(bingo.LeftSlots); s++ {
			start := 1 + s*k
			nums, err := parseInts(rec[start:start+k], path, line)
			if err != nil {
				return bingo.PairedLayout{}, err
			}
			row.Left = append(row.Left, bingo.Card(nums))
		}
		rightBase := 2 + len(bingo.LeftSlots)*k
		for s := 0; s < len(bingo.RightSlots); s++ {
			start := rightBase + s*k
			nums, err := parseInts(rec[start:start+k], path, line)
			if err != nil {
				return bingo.PairedLayout{}, err
			}
			row.Right = append(row.Right, bingo.Card(nums))
		}

		layout.Rows = append(layout.Rows, row)
	}

	return layout, nil
}

func readAll(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = Separator
	r.FieldsPerRecord = -1 // column counts are checked per row with context
	return r.ReadAll()
}

func parseInts(cells []string, file string, line int) ([]int, error) {
	nums := make([]int, len(cells))
	for i, cell := range cells {
		n, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil {
			return nil, &FormatError{
				File: file, Line: line,
				Reason: fmt.Sprintf("non-numeric cell %q", cell),
			}
		}
		nums[i] = n
	}
	return nums, nil
}
