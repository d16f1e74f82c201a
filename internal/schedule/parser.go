package schedule

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"alcyxob/run-trainer/internal/domain"
)

const (
	fieldSeparator = "|"
	rowFieldCount  = 4

	// MaxWeek is the last week a plan of MaxPlanDays can reach.
	MaxWeek = domain.MaxPlanDays/7 + 1
)

var (
	weekHeaderRe = regexp.MustCompile(`(?i)^week\s+(-?\d+)\s*:?$`)
	paceRangeRe  = regexp.MustCompile(`^(\d{1,3}):([0-5]\d)\s*[-–]\s*(\d{1,3}):([0-5]\d)$`)
)

// Row rejection reasons.
var (
	ErrUnknownDay       = errors.New("unknown day")
	ErrUnknownType      = errors.New("unknown workout type")
	ErrInvalidDistance  = errors.New("invalid distance")
	ErrInvalidPace      = errors.New("invalid pace range")
	ErrPaceInverted     = errors.New("pace range inverted")
	ErrRowBeforeWeek    = errors.New("row before week header")
	ErrWeekOutOfOrder   = errors.New("week header out of order")
	ErrWeekOutOfRange   = errors.New("week number out of range")
	ErrRestWithDistance = errors.New("rest entry with distance")
	ErrRestWithPace     = errors.New("rest entry with target pace")
)

// LineKind classifies one input line.
type LineKind int

const (
	LineNoise LineKind = iota
	LineWeekHeader
	LineRow
	LineRejected
)

func (k LineKind) String() string {
	switch k {
	case LineWeekHeader:
		return "week"
	case LineRow:
		return "row"
	case LineRejected:
		return "rejected"
	}
	return "noise"
}

// PaceRange is a target pace window in whole seconds per authored unit. Min <= Max.
type PaceRange struct {
	Min int
	Max int
}

// Row is one accepted schedule entry, still in the document's own units.
type Row struct {
	Week     int
	Day      Day
	Type     ImportType
	Distance float64
	Pace     *PaceRange
}

// IsRest reports whether the row prescribes no running.
func (r *Row) IsRest() bool {
	return r.Type == ImportRest || r.Distance == 0
}

// LineResult is the parser's verdict on one line.
type LineResult struct {
	LineNo int
	Kind   LineKind
	Week   int  // set for LineWeekHeader
	Row    *Row // set for LineRow
	Err    error
}

// Reason is the rejection reason, or "" for accepted and ignored lines.
func (r LineResult) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Parser turns schedule lines into rows. It tracks the current week, so one
// Parser must be used per document, top to bottom.
type Parser struct {
	lineNo  int
	week    int
	weekErr error // set while the last header was unusable
}

func NewParser() *Parser {
	return &Parser{}
}

// Week is the week index currently in effect, 0 before any header.
func (p *Parser) Week() int {
	return p.week
}

// ParseLine classifies the next line of the document. Malformed rows are
// reported as LineRejected; nothing here panics on bad input.
func (p *Parser) ParseLine(line string) LineResult {
	p.lineNo++
	res := LineResult{LineNo: p.lineNo}

	text := strings.TrimSpace(line)
	if text == "" {
		return res
	}

	if m := weekHeaderRe.FindStringSubmatch(text); m != nil {
		res.Kind = LineWeekHeader
		week, err := strconv.Atoi(m[1])
		// Rows under an unusable header cannot be placed on the calendar.
		switch {
		case err != nil || week > MaxWeek:
			p.weekErr = ErrWeekOutOfRange
		case week < 1 || week < p.week:
			p.weekErr = ErrWeekOutOfOrder
		default:
			p.weekErr = nil
		}
		if p.weekErr != nil {
			res.Err = p.weekErr
			return res
		}
		p.week = week
		res.Week = week
		return res
	}

	fields := strings.Split(text, fieldSeparator)
	if len(fields) != rowFieldCount {
		return res
	}

	row, err := p.parseRow(fields)
	if err != nil {
		res.Kind = LineRejected
		res.Err = err
		return res
	}
	res.Kind = LineRow
	res.Row = row
	return res
}

func (p *Parser) parseRow(fields []string) (*Row, error) {
	day, ok := ParseDay(fields[0])
	if !ok {
		return nil, ErrUnknownDay
	}
	typ, ok := ParseImportType(fields[1])
	if !ok {
		return nil, ErrUnknownType
	}
	distance, err := parseDistance(fields[2])
	if err != nil {
		return nil, err
	}
	pace, err := parsePaceRange(fields[3])
	if err != nil {
		return nil, err
	}

	switch {
	case p.weekErr != nil:
		return nil, p.weekErr
	case p.week == 0:
		return nil, ErrRowBeforeWeek
	}

	row := &Row{Week: p.week, Day: day, Type: typ, Distance: distance, Pace: pace}
	if typ == ImportRest && distance > 0 {
		return nil, ErrRestWithDistance
	}
	if row.IsRest() && pace != nil {
		return nil, ErrRestWithPace
	}
	return row, nil
}

// parseDistance accepts a non-negative decimal. "-" and "" mean rest (0).
func parseDistance(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidDistance
	}
	return v, nil
}

// parsePaceRange accepts "-" (no target) or "MM:SS-MM:SS".
func parsePaceRange(s string) (*PaceRange, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil, nil
	}
	m := paceRangeRe.FindStringSubmatch(s)
	if m == nil {
		return nil, ErrInvalidPace
	}
	lo := clockSeconds(m[1], m[2])
	hi := clockSeconds(m[3], m[4])
	if lo > hi {
		return nil, ErrPaceInverted
	}
	return &PaceRange{Min: lo, Max: hi}, nil
}

func clockSeconds(minutes, seconds string) int {
	mm, _ := strconv.Atoi(minutes)
	ss, _ := strconv.Atoi(seconds)
	return mm*60 + ss
}

// Document is the parse of a whole schedule text.
type Document struct {
	Lines    []LineResult
	Accepted int
	Rejected int
}

// Rows returns the accepted rows in document order.
func (d *Document) Rows() []*Row {
	rows := make([]*Row, 0, d.Accepted)
	for _, l := range d.Lines {
		if l.Kind == LineRow {
			rows = append(rows, l.Row)
		}
	}
	return rows
}

// ParseDocument parses text line by line with a fresh Parser. Accepted +
// Rejected equals the number of lines shaped like schedule rows.
func ParseDocument(text string) *Document {
	return ParseLines(strings.Split(text, "\n"))
}

// ParseLines parses pre-split lines with a fresh Parser.
func ParseLines(lines []string) *Document {
	p := NewParser()
	doc := &Document{}
	for _, line := range lines {
		res := p.ParseLine(line)
		switch res.Kind {
		case LineRow:
			doc.Accepted++
		case LineRejected:
			doc.Rejected++
		}
		doc.Lines = append(doc.Lines, res)
	}
	return doc
}
