// Package templates provides email template rendering functionality.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetwise/statistics/internal/application/adapter"
	domainerror "github.com/budgetwise/statistics/internal/domain/error"
)

//go:embed *.html *.txt
var templateFS embed.FS

// TemplateStatisticsReport is the name of the statistics report templates.
const TemplateStatisticsReport = "statistics_report"

// Renderer handles email template rendering.
type Renderer struct {
	htmlTemplates *htmltemplate.Template
	textTemplates *texttemplate.Template
	money         *MoneyFormatter
	appName       string
}

// NewRenderer creates a new template renderer.
func NewRenderer(appName string, money *MoneyFormatter) (*Renderer, error) {
	funcs := map[string]any{
		"money": money.Format,
		"date": func(t time.Time) string {
			return t.Format("02/01/2006")
		},
		"negative": func(d decimal.Decimal) bool {
			return d.IsNegative()
		},
		"add1": func(i int) int {
			return i + 1
		},
	}

	htmlTmpl, err := htmltemplate.New("").Funcs(funcs).ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	textTmpl, err := texttemplate.New("").Funcs(funcs).ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{
		htmlTemplates: htmlTmpl,
		textTemplates: textTmpl,
		money:         money,
		appName:       appName,
	}, nil
}

// Render renders both HTML and text versions of a template.
func (r *Renderer) Render(templateName string, data interface{}) (html string, text string, err error) {
	var htmlBuf bytes.Buffer
	if err := r.htmlTemplates.ExecuteTemplate(&htmlBuf, templateName+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", templateName, err)
	}

	var textBuf bytes.Buffer
	if err := r.textTemplates.ExecuteTemplate(&textBuf, templateName+".txt", data); err != nil {
		// Fall back to empty text if no text template exists
		return htmlBuf.String(), "", nil
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// StatisticsReportData contains data for the statistics report email template.
type StatisticsReportData struct {
	adapter.ReportData
	AppName  string
	Currency string
}

// RenderReport implements adapter.ReportRenderer.
func (r *Renderer) RenderReport(data adapter.ReportData) (*adapter.RenderedEmail, error) {
	html, text, err := r.Render(TemplateStatisticsReport, StatisticsReportData{
		ReportData: data,
		AppName:    r.appName,
		Currency:   r.money.Currency(),
	})
	if err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render statistics report",
			err,
		)
	}

	return &adapter.RenderedEmail{
		Subject: fmt.Sprintf("%s - Statistics for %s", r.appName, data.PeriodLabel),
		HTML:    html,
		Text:    text,
	}, nil
}

var _ adapter.ReportRenderer = (*Renderer)(nil)
