package transfer

import "strings"

const quote = '"'

// DetectDelimiter returns a tab when the first non-blank line contains one
// and a comma otherwise.
func DetectDelimiter(text string) rune {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.ContainsRune(line, '\t') {
			return '\t'
		}
		break
	}
	return ','
}

// SplitRecords splits text into records on line breaks that occur outside
// quoted cells. A quote opens a quoted cell only as the first non-blank rune
// of a cell, the rule ParseLine applies, so a stray quote inside an unquoted
// cell never swallows the following lines. A quoted cell may span several
// lines. Records that are blank after trimming are dropped.
func SplitRecords(text string, delim rune) []string {
	var (
		records   []string
		current   strings.Builder
		inQuotes  bool
		cellStart = true
	)
	flush := func() {
		rec := strings.TrimSuffix(current.String(), "\r")
		if strings.TrimSpace(rec) != "" {
			records = append(records, rec)
		}
		current.Reset()
		inQuotes = false
		cellStart = true
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuotes && r == quote:
			current.WriteRune(r)
			if i+1 < len(runes) && runes[i+1] == quote {
				current.WriteRune(quote)
				i++
				continue
			}
			inQuotes = false
		case inQuotes:
			current.WriteRune(r)
		case r == '\n':
			flush()
		case r == delim:
			current.WriteRune(r)
			cellStart = true
		case r == quote && cellStart:
			current.WriteRune(r)
			inQuotes = true
			cellStart = false
		case r == ' ' || r == '\t' || r == '\r':
			current.WriteRune(r)
		default:
			current.WriteRune(r)
			cellStart = false
		}
	}
	flush()
	return records
}

// ParseLine splits one record into trimmed cells. A cell that starts with a
// double quote runs until the matching closing quote and may contain the
// delimiter or line breaks; inside it "" decodes to a single quote. Quotes in
// the middle of an unquoted cell are kept literally. Unterminated quotes
// consume the rest of the record rather than failing.
func ParseLine(line string, delim rune) []string {
	var (
		cells    []string
		cell     strings.Builder
		inQuotes bool
		quoted   bool
	)
	runes := []rune(line)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuotes && r == quote:
			if i+1 < len(runes) && runes[i+1] == quote {
				cell.WriteRune(quote)
				i++
				continue
			}
			inQuotes = false
		case inQuotes:
			cell.WriteRune(r)
		case r == delim:
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
			quoted = false
		case r == quote && !quoted && strings.TrimSpace(cell.String()) == "":
			cell.Reset()
			inQuotes = true
			quoted = true
		default:
			cell.WriteRune(r)
		}
	}
	return append(cells, strings.TrimSpace(cell.String()))
}
