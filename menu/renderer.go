package menu

import (
	"fmt"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-records/core"
)

const (
	// OutputText renders one human-readable line per record.
	OutputText = "text"
	// OutputJSON renders one JSON document per result.
	OutputJSON = "json"
)

const timestampLayout = "2006-01-02 15:04:05"

// Renderer turns query and command outcomes into output for the operator.
// An empty list is rendered with the given empty message in text mode.
type Renderer interface {
	Books(books []core.Book, empty string) error
	Customers(customers []core.Customer, empty string) error
	OpenLoans(loans []core.OpenLoanDetails, empty string) error
	LateLoans(lateLoans []core.LateLoan, empty string) error
	Success(message string) error
	Notice(message string) error
	Failure(err error) error
}

// NewRenderer returns the renderer for an output format name.
func NewRenderer(output string, out io.Writer) (Renderer, error) {
	switch output {
	case OutputText, "":
		return NewTextRenderer(out), nil
	case OutputJSON:
		return NewJSONRenderer(out), nil
	default:
		return nil, fmt.Errorf("unknown output format %q, want %q or %q", output, OutputText, OutputJSON)
	}
}

/*** text ***/

// TextRenderer writes one line per record.
type TextRenderer struct {
	out io.Writer
}

// NewTextRenderer creates a TextRenderer writing to out.
func NewTextRenderer(out io.Writer) *TextRenderer {
	return &TextRenderer{out: out}
}

func (r *TextRenderer) Books(books []core.Book, empty string) error {
	if len(books) == 0 {
		return r.line(empty)
	}

	for _, b := range books {
		err := r.line(fmt.Sprintf("[%d] %s by %s (%d), loan type %s, %s",
			b.ID, b.Title, b.Author, b.YearPublished, b.LoanType, b.Status))
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *TextRenderer) Customers(customers []core.Customer, empty string) error {
	if len(customers) == 0 {
		return r.line(empty)
	}

	for _, c := range customers {
		if err := r.line(fmt.Sprintf("[%d] %s, %s, age %d", c.ID, c.Name, c.City, c.Age)); err != nil {
			return err
		}
	}

	return nil
}

func (r *TextRenderer) OpenLoans(loans []core.OpenLoanDetails, empty string) error {
	if len(loans) == 0 {
		return r.line(empty)
	}

	for _, l := range loans {
		err := r.line(fmt.Sprintf("Customer: %s [%d], Book: %s [%d], Loan Date: %s, Loan Type: %s, Return Date: %s",
			l.CustomerName, l.CustomerID, l.BookTitle, l.BookID, core.FormatCalendarDate(l.LoanedOn), l.LoanType, l.DueAt))
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *TextRenderer) LateLoans(lateLoans []core.LateLoan, empty string) error {
	if len(lateLoans) == 0 {
		return r.line(empty)
	}

	for _, l := range lateLoans {
		err := r.line(fmt.Sprintf("Customer: %s [%d], Book: %s [%d], Expected Return: %s, Actual Return: %s",
			l.CustomerName, l.CustomerID, l.BookName, l.BookID, l.ExpectedReturn, l.ActualReturn.Format(timestampLayout)))
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *TextRenderer) Success(message string) error {
	return r.line(message)
}

func (r *TextRenderer) Notice(message string) error {
	return r.line(message)
}

// Failure writes the error kind and message, e.g. "Error [not_found]: book not found".
func (r *TextRenderer) Failure(err error) error {
	return r.line(fmt.Sprintf("Error [%s]: %v", core.KindOf(err), err))
}

func (r *TextRenderer) line(s string) error {
	_, err := fmt.Fprintln(r.out, s)
	return err
}

/*** json ***/

// JSONRenderer writes one JSON document per line.
type JSONRenderer struct {
	out io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to out.
func NewJSONRenderer(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

type bookView struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	YearPublished int    `json:"year_published"`
	LoanType      int    `json:"loan_type"`
	LoanDuration  string `json:"loan_duration"`
	Status        string `json:"status"`
}

type customerView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
	Age  int    `json:"age"`
}

type openLoanView struct {
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	BookID       int64  `json:"book_id"`
	BookTitle    string `json:"book_title"`
	LoanedOn     string `json:"loaned_on"`
	LoanDuration string `json:"loan_duration"`
	DueAt        string `json:"due_at"`
}

type lateLoanView struct {
	ID             string    `json:"id"`
	CustomerID     int64     `json:"customer_id"`
	CustomerName   string    `json:"customer_name"`
	BookID         int64     `json:"book_id"`
	BookName       string    `json:"book_name"`
	ExpectedReturn string    `json:"expected_return"`
	ActualReturn   time.Time `json:"actual_return"`
}

type messageView struct {
	Status  string `json:"status"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

func (r *JSONRenderer) Books(books []core.Book, _ string) error {
	views := make([]bookView, 0, len(books))
	for _, b := range books {
		views = append(views, bookView{
			ID:            b.ID,
			Title:         b.Title,
			Author:        b.Author,
			YearPublished: b.YearPublished,
			LoanType:      int(b.LoanType),
			LoanDuration:  b.LoanType.String(),
			Status:        string(b.Status),
		})
	}

	return r.write(map[string]any{"books": views})
}

func (r *JSONRenderer) Customers(customers []core.Customer, _ string) error {
	views := make([]customerView, 0, len(customers))
	for _, c := range customers {
		views = append(views, customerView{ID: c.ID, Name: c.Name, City: c.City, Age: c.Age})
	}

	return r.write(map[string]any{"customers": views})
}

func (r *JSONRenderer) OpenLoans(loans []core.OpenLoanDetails, _ string) error {
	views := make([]openLoanView, 0, len(loans))
	for _, l := range loans {
		views = append(views, openLoanView{
			CustomerID:   l.CustomerID,
			CustomerName: l.CustomerName,
			BookID:       l.BookID,
			BookTitle:    l.BookTitle,
			LoanedOn:     core.FormatCalendarDate(l.LoanedOn),
			LoanDuration: l.LoanType.String(),
			DueAt:        l.DueAt.String(),
		})
	}

	return r.write(map[string]any{"loans": views})
}

func (r *JSONRenderer) LateLoans(lateLoans []core.LateLoan, _ string) error {
	views := make([]lateLoanView, 0, len(lateLoans))
	for _, l := range lateLoans {
		views = append(views, lateLoanView{
			ID:             l.ID.String(),
			CustomerID:     l.CustomerID,
			CustomerName:   l.CustomerName,
			BookID:         l.BookID,
			BookName:       l.BookName,
			ExpectedReturn: l.ExpectedReturn.String(),
			ActualReturn:   l.ActualReturn,
		})
	}

	return r.write(map[string]any{"late_loans": views})
}

func (r *JSONRenderer) Success(message string) error {
	return r.write(messageView{Status: "ok", Message: message})
}

func (r *JSONRenderer) Notice(message string) error {
	return r.write(messageView{Status: "notice", Message: message})
}

func (r *JSONRenderer) Failure(err error) error {
	return r.write(messageView{Status: "error", Kind: string(core.KindOf(err)), Message: err.Error()})
}

func (r *JSONRenderer) write(v any) error {
	data, err := jsoniter.ConfigFastest.Marshal(v)
	if err != nil {
		return err
	}

	data = append(data, '\n')
	_, err = r.out.Write(data)

	return err
}
