package taxtable

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Tax authority spreadsheets print two brackets side by side per row to save
// vertical space. Each half is five consecutive cells: low bound, separator,
// high bound, annual equivalent, tax amount. Data starts at row 3; rows 1-2
// are headers.
const (
	dataStartRow     = 3
	leftGroupStart   = 1 // columns 1-5
	rightGroupStart  = 8 // columns 8-12
	groupCellCount   = 5
	separatorLiteral = "-"
)

var (
	currencyCleaner  = regexp.MustCompile(`R\s*|\s*,\s*`)
	bracketPattern   = regexp.MustCompile(`^\d+-\d+$`)
	nonNumericFilter = regexp.MustCompile(`[^\d.]`)
)

type ParsedEntry struct {
	Remuneration     string
	AnnualEquivalent decimal.Decimal
	TaxUnder65       decimal.Decimal
}

type Parser struct {
	logger *zap.Logger
}

func NewParser(logger *zap.Logger) *Parser {
	return &Parser{logger: logger.Named("taxtable.parser")}
}

// Parse scans the first worksheet of the workbook and returns every bracket
// entry found. Malformed row halves are skipped and logged; they never fail
// the whole parse. The caller decides what an empty result means.
func (p *Parser) Parse(data []byte) ([]ParsedEntry, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	entries := make([]ParsedEntry, 0, len(rows)*2)
	for rowNum := dataStartRow; rowNum <= len(rows); rowNum++ {
		cells := rows[rowNum-1]

		for _, startCol := range []int{leftGroupStart, rightGroupStart} {
			entry, ok := p.parseGroup(cells, rowNum, startCol)
			if ok {
				entries = append(entries, entry)
			}
		}
	}

	return entries, nil
}

// parseGroup reads one five-cell column group. A blank first cell means the
// half is unused and is skipped silently; anything else malformed is logged.
func (p *Parser) parseGroup(cells []string, rowNum, startCol int) (ParsedEntry, bool) {
	low := cellValue(cells, startCol)
	if low == "" {
		return ParsedEntry{}, false
	}

	separator := cellValue(cells, startCol+1)
	high := cellValue(cells, startCol+2)

	if high == "" || separator != separatorLiteral {
		p.logger.Warn("skipping malformed bracket cells",
			zap.Int("row", rowNum),
			zap.Int("column", startCol),
			zap.String("separator", separator),
		)
		return ParsedEntry{}, false
	}

	bracket := cleanBracket(low + " - " + high)
	if !bracketPattern.MatchString(bracket) {
		p.logger.Warn("skipping unparseable remuneration bracket",
			zap.Int("row", rowNum),
			zap.Int("column", startCol),
			zap.String("bracket", bracket),
		)
		return ParsedEntry{}, false
	}

	annual, err := parseAmount(cellValue(cells, startCol+3))
	if err != nil {
		p.logger.Warn("skipping row with invalid annual equivalent",
			zap.Int("row", rowNum),
			zap.Int("column", startCol),
			zap.Error(err),
		)
		return ParsedEntry{}, false
	}

	taxCell := cellValue(cells, startCol+4)
	if taxCell == "" {
		taxCell = "0"
	}
	tax, err := parseAmount(taxCell)
	if err != nil {
		p.logger.Warn("skipping row with invalid tax amount",
			zap.Int("row", rowNum),
			zap.Int("column", startCol),
			zap.Error(err),
		)
		return ParsedEntry{}, false
	}

	return ParsedEntry{
		Remuneration:     bracket,
		AnnualEquivalent: annual,
		TaxUnder65:       tax,
	}, true
}

// cleanBracket strips currency markers and thousands separators, then
// collapses the spaced dash so "R 1 - R 100,000" becomes "1-100000".
func cleanBracket(s string) string {
	s = currencyCleaner.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, " - ", "-")
}

func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := nonNumericFilter.ReplaceAllString(s, "")
	return decimal.NewFromString(cleaned)
}

// cellValue reads a 1-based column from a sparse row, trimmed. GetRows trims
// trailing empty cells, so out-of-range reads are ordinary blanks.
func cellValue(cells []string, col int) string {
	if col < 1 || col > len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col-1])
}
