package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const defaultRequiredMessage = "Please enter a value."

var ErrElementNotFound = errors.New("element_not_found")

type Page struct {
	browser   *Browser
	url       string
	doc       *goquery.Document
	functions map[string]string
}

func (p *Page) URL() string {
	return p.url
}

func (p *Page) Title() string {
	return strings.TrimSpace(p.doc.Find("title").First().Text())
}

// Text returns the body text with whitespace collapsed.
func (p *Page) Text() string {
	return strings.Join(strings.Fields(p.doc.Find("body").Text()), " ")
}

func (p *Page) Form(name string) (*Form, error) {
	sel := p.doc.Find(fmt.Sprintf("form[name=%q]", name)).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: form %s", ErrElementNotFound, name)
	}
	return &Form{page: p, sel: sel}, nil
}

// resolve turns a link found on the page into an absolute URL.
func (p *Page) resolve(ref string) (string, error) {
	if ref == "" {
		return p.url, nil
	}
	if strings.HasPrefix(p.url, fileScheme) && !strings.Contains(ref, ":") {
		if path.IsAbs(ref) {
			return fileScheme + path.Clean(ref), nil
		}
		dir := path.Dir(strings.TrimPrefix(p.url, fileScheme))
		return fileScheme + path.Join(dir, ref), nil
	}
	base, err := url.Parse(p.url)
	if err != nil {
		return "", fmt.Errorf("failed to parse page url: %w", err)
	}
	target, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", ref, err)
	}
	return base.ResolveReference(target).String(), nil
}

type Form struct {
	page *Page
	sel  *goquery.Selection
}

func (f *Form) Input(name string) (*Input, error) {
	sel := f.sel.Find(fmt.Sprintf("input[name=%q]", name)).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: input %s", ErrElementNotFound, name)
	}
	return &Input{form: f, sel: sel}, nil
}

// Submit checks the required inputs and loads the form action. A missing
// value raises an alert and the browser stays on the current page.
func (f *Form) Submit(ctx context.Context) (*Page, error) {
	var message string
	f.sel.Find("input[required]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.AttrOr("value", "")) != "" {
			return true
		}
		message = s.AttrOr("data-message", defaultRequiredMessage)
		return false
	})
	if message != "" {
		f.page.browser.alert(f.page, message)
		return f.page, nil
	}

	action, err := f.page.resolve(f.sel.AttrOr("action", ""))
	if err != nil {
		return nil, err
	}
	return f.page.browser.GetPage(ctx, action)
}

type Input struct {
	form *Form
	sel  *goquery.Selection
}

func (i *Input) Value() string {
	return i.sel.AttrOr("value", "")
}

func (i *Input) SetValue(value string) {
	i.sel.SetAttr("value", value)
}

// Click submits the form for submit inputs and stays on the page otherwise.
func (i *Input) Click(ctx context.Context) (*Page, error) {
	if strings.EqualFold(i.sel.AttrOr("type", ""), "submit") {
		return i.form.Submit(ctx)
	}
	return i.form.page, nil
}
