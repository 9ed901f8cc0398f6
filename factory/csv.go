package factory

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/warp/salary-engine/generic"
	"github.com/warp/salary-engine/payroll"
)

// csvRow is one line of a batch file:
//
//	type,name,hours,sales,projects,on_vacation
//	vendedor,Ana Silva,80,5000.00,,false
//
// Empty cells mean "not supplied".
type csvRow struct {
	Type       string `csv:"type"`
	Name       string `csv:"name"`
	Hours      string `csv:"hours"`
	Sales      string `csv:"sales"`
	Projects   string `csv:"projects"`
	OnVacation string `csv:"on_vacation"`
}

// LoadCSV parses a batch file into records. Only malformed CSV is an error;
// bad values are left for the factory to reject row by row.
func LoadCSV(r io.Reader) ([]Record, error) {
	var rows []*csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parse employee csv: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record{
			Type: row.Type,
			Fields: payroll.Fields{
				Name:       row.Name,
				Hours:      numberCell(row.Hours),
				Sales:      textCell(row.Sales),
				Projects:   numberCell(row.Projects),
				OnVacation: boolCell(row.OnVacation),
			},
		})
	}
	return records, nil
}

// numberCell hands the cell over as a numeric literal. Cells that are not
// numbers still fail validation as they would for any caller.
func numberCell(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return json.Number(s)
}

func textCell(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

func boolCell(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	switch s {
	case "sim", "s", "yes", "y":
		return true
	case "não", "nao", "n", "no":
		return false
	}
	return generic.Truthy(s)
}
