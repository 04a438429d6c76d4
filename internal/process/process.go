package process

import (
	"strings"
)

// fieldQuote wraps every field in the canonical GET_PROCESS_LIST format
const fieldQuote = `"`

// Parse builds a Table from the text output of a process list call.
// Blank lines are skipped without consuming a row number.
func Parse(output string) *Table {
	var records []Record
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, ParseLine(line))
	}
	return &Table{records: records}
}

// ParseLine splits a single listing line into a Record.
// Fields beyond what the line carries are left empty.
func ParseLine(line string) Record {
	fields := splitFields(line)

	var r Record
	if len(fields) > 0 {
		r.Name = fields[0]
	}
	if len(fields) > 1 {
		r.Status = fields[1]
	}
	if len(fields) > 2 {
		r.PID = fields[2]
	}
	if len(fields) > 3 {
		r.Timestamp = fields[3]
	}
	return r
}

func splitFields(line string) []string {
	// Older clients print whitespace separated columns without quotes
	if !strings.Contains(line, fieldQuote) {
		return strings.Fields(line)
	}

	var fields []string
	for _, tok := range strings.Split(line, fieldQuote) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		fields = append(fields, tok)
	}
	return fields
}
