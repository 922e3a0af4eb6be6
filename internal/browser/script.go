package browser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxCallDepth = 16

var ErrUnsupportedScript = errors.New("unsupported_script")

var (
	functionPattern = regexp.MustCompile(`function\s+(\w+)\s*\(\s*\)\s*\{([^}]*)\}`)
	callPattern     = regexp.MustCompile(`(?s)^(\w+)\s*\((.*)\)$`)
)

// scriptFunctions collects the argument-less functions declared in the page
// scripts, keyed by name.
func scriptFunctions(doc *goquery.Document) map[string]string {
	functions := map[string]string{}
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		for _, m := range functionPattern.FindAllStringSubmatch(s.Text(), -1) {
			functions[m[1]] = m[2]
		}
	})
	return functions
}

// run executes a sequence of statements. Only alert, confirm, string and
// boolean literals, and calls to page functions are understood.
func (p *Page) run(script string, depth int) error {
	for _, stmt := range splitStatements(script) {
		if _, err := p.eval(stmt, depth); err != nil {
			return err
		}
	}
	return nil
}

func (p *Page) eval(expr string, depth int) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || expr == "true" || expr == "false" {
		return expr, nil
	}
	if s, ok := unquote(expr); ok {
		return s, nil
	}

	m := callPattern.FindStringSubmatch(expr)
	if m == nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScript, expr)
	}
	name, arg := m[1], m[2]

	switch name {
	case "alert":
		message, err := p.eval(arg, depth)
		if err != nil {
			return "", err
		}
		p.browser.alert(p, message)
		return "", nil
	case "confirm":
		message, err := p.eval(arg, depth)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(p.browser.confirm(p, message)), nil
	}

	body, ok := p.functions[name]
	if !ok {
		return "", fmt.Errorf("%w: %s is not defined", ErrUnsupportedScript, name)
	}
	if depth >= maxCallDepth {
		return "", fmt.Errorf("%w: too much recursion in %s", ErrUnsupportedScript, name)
	}
	return "", p.run(body, depth+1)
}

func unquote(expr string) (string, bool) {
	if len(expr) < 2 {
		return "", false
	}
	q := expr[0]
	if (q != '\'' && q != '"') || expr[len(expr)-1] != q {
		return "", false
	}
	inner := expr[1 : len(expr)-1]
	if strings.IndexByte(inner, q) >= 0 {
		return "", false
	}
	return inner, true
}

// splitStatements splits on semicolons and newlines outside string literals.
func splitStatements(script string) []string {
	var (
		stmts []string
		cur   strings.Builder
		quote byte
	)
	for i := 0; i < len(script); i++ {
		c := script[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ';' || c == '\n':
			stmts = append(stmts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	stmts = append(stmts, cur.String())

	out := stmts[:0]
	for _, s := range stmts {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
