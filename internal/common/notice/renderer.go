// Package notice renders confirmation notices to HTML.
package notice

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/Masterminds/sprig"

	"github.com/miblum/go-fund-notice/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templateFiles = map[models.NoticeVariant]string{
	models.NoticeIndividualBuy:  "templates/subscription.html",
	models.NoticeBusinessBuy:    "templates/subscription.html",
	models.NoticeIndividualSell: "templates/redemption.html",
	models.NoticeBusinessSell:   "templates/business_redemption.html",
}

type TemplateData struct {
	Fields         models.NoticeFields
	Classification models.RedemptionClassification
	Sender         string
}

type Renderer interface {
	Render(ctx context.Context, notice models.Notice) (string, error)
}

type renderer struct {
	sender    string
	templates map[models.NoticeVariant]*template.Template
}

// NewRenderer parses every template once, a broken template fails here
// instead of on the first notice.
func NewRenderer(sender string) (Renderer, error) {
	r := &renderer{
		sender:    sender,
		templates: make(map[models.NoticeVariant]*template.Template, len(templateFiles)),
	}

	for variant, file := range templateFiles {
		tmpl, err := template.New(string(variant)).
			Funcs(sprig.HtmlFuncMap()).
			Option("missingkey=zero").
			ParseFS(templatesFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", variant, err)
		}
		r.templates[variant] = tmpl
	}

	return r, nil
}

func (r *renderer) Render(_ context.Context, n models.Notice) (string, error) {
	tmpl, ok := r.templates[n.Variant]
	if !ok {
		return "", fmt.Errorf("no template for notice variant %q", n.Variant)
	}

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "layout", TemplateData{
		Fields:         n.Fields,
		Classification: n.Classification,
		Sender:         r.sender,
	})
	if err != nil {
		return "", fmt.Errorf("render %s notice: %w", n.Variant, err)
	}

	return buf.String(), nil
}
