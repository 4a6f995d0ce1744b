package workflow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"doccenter/internal/model"
)

var (
	ErrNoClients            = errors.New("at least one client is required")
	ErrNoDocumentsSelected  = errors.New("at least one document type must be requested")
	ErrDocumentTypeRequired = errors.New("document type is required")
	ErrDuplicateDocument    = errors.New("document type is already in the request")
	ErrRequestNotFound      = errors.New("document request not found")
	ErrUnknownPreset        = errors.New("unknown e-mail template")
	ErrInvalidStep          = errors.New("action is not allowed in the current step")
)

// RequestStep is the position of a request-documents workflow.
type RequestStep uint8

const (
	StepSelectDocuments RequestStep = iota
	StepReviewAndSend
	StepSent
	StepAddedWithoutEmail
)

func (s RequestStep) String() string {
	switch s {
	case StepSelectDocuments:
		return "select_documents"
	case StepReviewAndSend:
		return "review_and_send"
	case StepSent:
		return "sent"
	case StepAddedWithoutEmail:
		return "added_without_email"
	}
	return "step(" + strconv.Itoa(int(s)) + ")"
}

func (s RequestStep) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Done reports whether the workflow reached a terminal step.
func (s RequestStep) Done() bool { return s == StepSent || s == StepAddedWithoutEmail }

// Placeholders recognised in request e-mail bodies.
const (
	PlaceholderClientName   = "[Client Name]"
	PlaceholderDocumentList = "[Document List]"
	PlaceholderUploadLink   = "[Secure Upload Link]"
	PlaceholderFirmName     = "[Your Firm Name]"
)

// MultipleClientsName replaces [Client Name] when one body addresses several clients.
const MultipleClientsName = "Valued Client"

// DefaultEmailBody is the body a new request starts with.
const DefaultEmailBody = `Dear [Client Name],

We are preparing your tax return and need the following documents to complete your filing:

[Document List]

You can upload these documents securely through our client portal using the link below:
[Secure Upload Link]

Alternatively, you can log into your client portal at any time to upload documents.

If you have any questions, please don't hesitate to reach out.

Best regards,
[Your Firm Name]`

// EmailPreset is a named subject line for request e-mails.
type EmailPreset struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
}

// DefaultPresetID selects the preset a new request starts with.
const DefaultPresetID = "default"

// EmailPresets lists the built-in request e-mail templates.
var EmailPresets = []EmailPreset{
	{ID: "default", Name: "Default Request", Subject: "Document Request for Tax Preparation"},
	{ID: "reminder", Name: "Friendly Reminder", Subject: "Reminder: Documents Needed"},
	{ID: "urgent", Name: "Urgent Request", Subject: "URGENT: Documents Required by [Date]"},
	{ID: "followup", Name: "Follow-up Request", Subject: "Following Up: Tax Documents"},
}

// FindPreset looks up a preset by id.
func FindPreset(id string) (EmailPreset, bool) {
	for _, p := range EmailPresets {
		if p.ID == id {
			return p, true
		}
	}
	return EmailPreset{}, false
}

// DocumentCategory is a group of commonly requested document types.
type DocumentCategory struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// DocumentCatalog is the list of common IRS forms and tax documents offered for requests.
var DocumentCatalog = []DocumentCategory{
	{Category: "Personal Income", Items: []string{"W-2 Form", "1099-MISC", "1099-NEC", "1099-INT", "1099-DIV", "1099-B", "1099-R", "SSA-1099", "K-1 (1065, 1120-S, 1041)"}},
	{Category: "Business Income", Items: []string{"Schedule C", "Schedule E", "Schedule F", "1120", "1120-S", "1065", "Profit & Loss Statement", "Balance Sheet"}},
	{Category: "Deductions", Items: []string{"1098 (Mortgage Interest)", "1098-E (Student Loan Interest)", "1098-T (Tuition)", "5498 (IRA Contributions)", "Property Tax Bill", "Donation Receipts", "Medical Receipts", "Charitable Contribution Records"}},
	{Category: "Banking & Statements", Items: []string{"Bank Statements", "Investment Statements", "Retirement Account Statements", "Cryptocurrency Records", "Credit Card Statements"}},
	{Category: "Real Estate", Items: []string{"Closing Statement (HUD-1)", "Rental Income Records", "Rental Expense Records", "Home Improvement Records", "Property Sale Records"}},
	{Category: "Business Expenses", Items: []string{"Receipts", "Invoices", "Mileage Log", "Vehicle Expenses", "Office Expenses", "Travel & Entertainment Expenses", "Equipment Purchases"}},
	{Category: "Healthcare", Items: []string{"1095-A (Health Insurance)", "1095-B", "1095-C", "HSA Statements", "Medical Expense Receipts"}},
	{Category: "Other", Items: []string{"State Tax Forms", "Foreign Account Records (FBAR)", "Education Credits Documentation", "Estimated Tax Payment Records", "Prior Year Tax Returns"}},
}

// CustomCategory is the category custom document types fall into when none is given.
const CustomCategory = "Other"

// DocumentRequest is one document type being asked for.
type DocumentRequest struct {
	ID           string `json:"id"`
	DocumentType string `json:"document_type"`
	Description  string `json:"description,omitempty"`
	Custom       bool   `json:"custom"`
	Category     string `json:"category,omitempty"`
}

// RenderContext carries the firm values substituted into request e-mails.
type RenderContext struct {
	FirmName   string
	UploadLink string
}

// RequestOutcome is what completing a request produces.
type RequestOutcome struct {
	Step      RequestStep
	Documents []model.Document
	Emails    []Email
}

// Email is a rendered request e-mail for one client.
type Email struct {
	ClientID string
	To       string
	Subject  string
	Body     string
}

// Request drives the two-step request-documents flow for a set of clients.
// It is not safe for concurrent use.
type Request struct {
	step     RequestStep
	clients  []model.Client
	requests []DocumentRequest
	preset   string
	subject  string
	body     string
	year     string

	newID func() string
}

// NewRequest starts a workflow for clients. Year is the tax year the requested
// documents are filed under.
func NewRequest(clients []model.Client, year string) (*Request, error) {
	if len(clients) == 0 {
		return nil, ErrNoClients
	}
	p, _ := FindPreset(DefaultPresetID)
	return &Request{
		step:    StepSelectDocuments,
		clients: append([]model.Client(nil), clients...),
		preset:  p.ID,
		subject: p.Subject,
		body:    DefaultEmailBody,
		year:    year,
		newID:   func() string { return uuid.NewString() },
	}, nil
}

func (r *Request) Step() RequestStep       { return r.step }
func (r *Request) Subject() string         { return r.subject }
func (r *Request) Body() string            { return r.body }
func (r *Request) Preset() string          { return r.preset }
func (r *Request) Clients() []model.Client { return append([]model.Client(nil), r.clients...) }

// Requests returns the document types requested so far, in the order added.
func (r *Request) Requests() []DocumentRequest {
	return append([]DocumentRequest(nil), r.requests...)
}

// AddDocument appends a document type. The same type cannot be requested twice.
func (r *Request) AddDocument(documentType, description string) (DocumentRequest, error) {
	return r.add(documentType, description, false, catalogCategory(documentType))
}

// AddCustomDocument appends a document type that is not in the catalog.
func (r *Request) AddCustomDocument(documentType, category string) (DocumentRequest, error) {
	if strings.TrimSpace(category) == "" {
		category = CustomCategory
	}
	return r.add(documentType, "", true, category)
}

func (r *Request) add(documentType, description string, custom bool, category string) (DocumentRequest, error) {
	if r.step != StepSelectDocuments {
		return DocumentRequest{}, ErrInvalidStep
	}
	if strings.TrimSpace(documentType) == "" {
		return DocumentRequest{}, ErrDocumentTypeRequired
	}
	for _, req := range r.requests {
		if req.DocumentType == documentType {
			return DocumentRequest{}, fmt.Errorf("%w: %s", ErrDuplicateDocument, documentType)
		}
	}
	req := DocumentRequest{
		ID:           r.newID(),
		DocumentType: documentType,
		Description:  description,
		Custom:       custom,
		Category:     category,
	}
	r.requests = append(r.requests, req)
	return req, nil
}

// RemoveDocument drops a requested document type by its request id.
func (r *Request) RemoveDocument(id string) error {
	if r.step != StepSelectDocuments {
		return ErrInvalidStep
	}
	for i, req := range r.requests {
		if req.ID == id {
			r.requests = append(r.requests[:i], r.requests[i+1:]...)
			return nil
		}
	}
	return ErrRequestNotFound
}

// SetDescription updates the note shown next to a requested document type.
func (r *Request) SetDescription(id, description string) error {
	if r.step != StepSelectDocuments {
		return ErrInvalidStep
	}
	for i := range r.requests {
		if r.requests[i].ID == id {
			r.requests[i].Description = description
			return nil
		}
	}
	return ErrRequestNotFound
}

// ApplyPreset switches to a named e-mail template, replacing the subject.
func (r *Request) ApplyPreset(id string) error {
	p, ok := FindPreset(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPreset, id)
	}
	r.preset = p.ID
	r.subject = p.Subject
	return nil
}

// SetSubject overrides the subject line.
func (r *Request) SetSubject(subject string) { r.subject = subject }

// SetBody overrides the e-mail body template.
func (r *Request) SetBody(body string) { r.body = body }

// Next moves from document selection to review.
func (r *Request) Next() error {
	if r.step != StepSelectDocuments {
		return ErrInvalidStep
	}
	if len(r.requests) == 0 {
		return ErrNoDocumentsSelected
	}
	r.step = StepReviewAndSend
	return nil
}

// Back returns from review to document selection.
func (r *Request) Back() error {
	if r.step != StepReviewAndSend {
		return ErrInvalidStep
	}
	r.step = StepSelectDocuments
	return nil
}

// Preview renders the body the way the review step shows it. With several
// clients the greeting uses MultipleClientsName.
func (r *Request) Preview(rc RenderContext) string {
	name := MultipleClientsName
	if len(r.clients) == 1 {
		name = r.clients[0].Name
	}
	return r.render(name, rc)
}

func (r *Request) render(clientName string, rc RenderContext) string {
	return strings.NewReplacer(
		PlaceholderClientName, clientName,
		PlaceholderDocumentList, DocumentList(r.requests),
		PlaceholderUploadLink, rc.UploadLink,
		PlaceholderFirmName, rc.FirmName,
	).Replace(r.body)
}

// DocumentList renders requests as "N. Type" lines, adding " - description" when set.
func DocumentList(reqs []DocumentRequest) string {
	lines := make([]string, len(reqs))
	for i, req := range reqs {
		line := strconv.Itoa(i+1) + ". " + req.DocumentType
		if req.Description != "" {
			line += " - " + req.Description
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// Complete finishes the workflow. It yields one requested document per client
// and document type and, when sendEmail is set, one rendered e-mail per client.
func (r *Request) Complete(sendEmail bool, rc RenderContext, now time.Time) (*RequestOutcome, error) {
	if r.step != StepReviewAndSend {
		return nil, ErrInvalidStep
	}
	if len(r.requests) == 0 {
		return nil, ErrNoDocumentsSelected
	}

	out := &RequestOutcome{Step: StepAddedWithoutEmail}
	for _, c := range r.clients {
		for _, req := range r.requests {
			requested := now
			out.Documents = append(out.Documents, model.Document{
				ID:              r.newID(),
				Name:            req.DocumentType + " - " + c.Name,
				ClientID:        c.ID,
				DocumentType:    req.DocumentType,
				Year:            r.year,
				Status:          model.StatusRequested,
				RequestedDate:   &requested,
				Note:            req.Description,
				ReminderHistory: []model.ReminderHistory{},
				CreatedAt:       now,
			})
		}
	}
	if sendEmail {
		out.Step = StepSent
		for _, c := range r.clients {
			out.Emails = append(out.Emails, Email{
				ClientID: c.ID,
				To:       c.Email,
				Subject:  r.subject,
				Body:     r.render(c.Name, rc),
			})
		}
	}
	r.step = out.Step
	return out, nil
}

func catalogCategory(documentType string) string {
	for _, c := range DocumentCatalog {
		for _, item := range c.Items {
			if item == documentType {
				return c.Category
			}
		}
	}
	return ""
}
