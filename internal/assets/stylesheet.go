package assets

import (
	"errors"
	"io"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// StylesheetStats summarizes a parsed stylesheet.
type StylesheetStats struct {
	Rules  int // rule sets, including those nested in at-rules
	Errors int // constructs the parser skipped
}

// InspectStylesheet parses src as CSS. The parser recovers from bad
// constructs, so they are counted instead of failing the whole sheet.
func InspectStylesheet(src string) (StylesheetStats, error) {
	var stats StylesheetStats
	p := css.NewParser(parse.NewInputString(src), false)
	for {
		gt, _, _ := p.Next()
		switch gt {
		case css.ErrorGrammar:
			err := p.Err()
			if errors.Is(err, io.EOF) {
				return stats, nil
			}
			if err != nil {
				return stats, err
			}
			stats.Errors++
		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			stats.Rules++
		}
	}
}
