// Package tsv reads tournament rosters pasted from a spreadsheet: one
// participant per line as Name<TAB>Club<TAB>Group.
package tsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/fairdraw/internal/domain/model"
)

const minFields = 3

// Option configures a Parser.
type Option func(*Parser)

// WithFullNames labels participants with their whole name instead of the
// first word.
func WithFullNames() Option {
	return func(p *Parser) { p.fullNames = true }
}

// Parser turns TSV rows into a Roster.
type Parser struct {
	fullNames bool
}

// NewParser creates a Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads r with the default options.
func Parse(r io.Reader) (model.Roster, error) {
	return NewParser().Parse(r)
}

// Parse reads rows until EOF. Rows with fewer than three fields are
// skipped. Participants are labelled "First (Club)"; repeated labels get a
// " #2", " #3"... suffix so every label is unique. Groups keep the order in
// which they first appear.
func (p *Parser) Parse(r io.Reader) (model.Roster, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	var roster model.Roster
	index := map[string]int{}
	labels := map[string]int{}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRead, err)
		}
		if len(rec) < minFields {
			continue
		}
		name := strings.TrimSpace(rec[0])
		club := strings.TrimSpace(rec[1])
		group := strings.TrimSpace(rec[2])
		if name == "" || group == "" {
			continue
		}

		label := p.label(name, club)
		labels[label]++
		if n := labels[label]; n > 1 {
			label = fmt.Sprintf("%s #%d", label, n)
		}

		i, ok := index[group]
		if !ok {
			i = len(roster)
			index[group] = i
			roster = append(roster, model.Group{Name: group})
		}
		roster[i].Participants = append(roster[i].Participants, label)
	}

	if roster.Len() == 0 {
		return nil, ErrNoParticipants
	}
	return roster, nil
}

func (p *Parser) label(name, club string) string {
	if !p.fullNames {
		if fields := strings.Fields(name); len(fields) > 0 {
			name = fields[0]
		}
	}
	if club == "" {
		return name
	}
	return name + " (" + club + ")"
}
