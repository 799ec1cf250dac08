package services

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
)

// AnswerRow is one graded answer joined against its question and option
// text, plus the question's designated correct option for display.
type AnswerRow struct {
	ID            uuid.UUID `json:"id"`
	QuestionText  string    `json:"question_text"`
	OptionText    string    `json:"option_text"`
	IsCorrect     bool      `json:"is_correct"`
	CorrectAnswer string    `json:"correct_answer"`
}

type ReportSubmission struct {
	UserName       string
	UserEmail      string
	Score          int
	TotalQuestions int
	SubmittedAt    time.Time
	Answers        []AnswerRow
}

type QuizReport struct {
	Title       string
	Description string
	GeneratedAt time.Time
	Submissions []ReportSubmission
}

// GenerateQuizReportPDF renders the report template to HTML and prints
// it to PDF through headless Chrome.
func GenerateQuizReportPDF(report QuizReport) ([]byte, error) {
	htmlContent, err := renderReportHTML(report)
	if err != nil {
		return nil, err
	}
	return generatePDFFromHTML(htmlContent)
}

func renderReportHTML(report QuizReport) (string, error) {
	tmpl, err := template.ParseFiles("templates/report.html")
	if err != nil {
		return "", err
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, report); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}
