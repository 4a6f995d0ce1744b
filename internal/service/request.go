package service

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"doccenter/internal/mail"
	"doccenter/internal/model"
	"doccenter/internal/workflow"
)

// RequestedDocument is one document type in a request.
type RequestedDocument struct {
	DocumentType string `json:"document_type"`
	Description  string `json:"description,omitempty"`
	Custom       bool   `json:"custom,omitempty"`
	Category     string `json:"category,omitempty"`
}

// RequestInput drives the request-documents workflow in one call.
type RequestInput struct {
	ClientIDs []string            `json:"client_ids"`
	Documents []RequestedDocument `json:"documents"`
	// Preset selects a built-in e-mail template; empty keeps the default.
	Preset string `json:"preset,omitempty"`
	// Subject and Body override the preset when set.
	Subject *string `json:"subject,omitempty"`
	Body    *string `json:"body,omitempty"`
	// Year files the requested documents under a tax year; empty means the current year.
	Year      string `json:"year,omitempty"`
	SendEmail bool   `json:"send_email"`
}

// RequestPreview is the review step of a request.
type RequestPreview struct {
	Subject   string                     `json:"subject"`
	Body      string                     `json:"body"`
	Documents []workflow.DocumentRequest `json:"documents"`
}

// RequestResult is the outcome of a completed request.
type RequestResult struct {
	Step      workflow.RequestStep `json:"step"`
	Documents []model.Document     `json:"documents"`
	// Failed lists clients whose e-mail could not be delivered.
	Failed []string `json:"failed_emails"`
}

// RequestService runs the request-documents workflow.
type RequestService interface {
	Preview(ctx context.Context, in RequestInput) (*RequestPreview, error)
	// Send creates one requested document per client and type and, when
	// asked, e-mails every client.
	Send(ctx context.Context, actor string, in RequestInput) (*RequestResult, error)
}

type requestService struct {
	base
}

// NewRequestService constructs a new RequestService.
func NewRequestService(d Deps) RequestService {
	return &requestService{base: newBase(d)}
}

func (s *requestService) renderContext() workflow.RenderContext {
	return workflow.RenderContext{FirmName: s.Firm.Name, UploadLink: s.Firm.UploadLinkBase}
}

// build replays in through the workflow up to the review step.
func (s *requestService) build(ctx context.Context, in RequestInput) (*workflow.Request, error) {
	clients := make([]model.Client, 0, len(in.ClientIDs))
	for _, id := range in.ClientIDs {
		c, err := s.findClient(ctx, id)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	year := in.Year
	if year == "" {
		year = strconv.Itoa(s.now().Year())
	}
	if !yearPattern.MatchString(year) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidYear, year)
	}

	r, err := workflow.NewRequest(clients, year)
	if err != nil {
		return nil, err
	}
	for _, d := range in.Documents {
		if d.Custom {
			_, err = r.AddCustomDocument(d.DocumentType, d.Category)
			if err == nil && d.Description != "" {
				reqs := r.Requests()
				err = r.SetDescription(reqs[len(reqs)-1].ID, d.Description)
			}
		} else {
			_, err = r.AddDocument(d.DocumentType, d.Description)
		}
		if err != nil {
			return nil, err
		}
	}
	if in.Preset != "" {
		if err := r.ApplyPreset(in.Preset); err != nil {
			return nil, err
		}
	}
	if in.Subject != nil {
		r.SetSubject(*in.Subject)
	}
	if in.Body != nil {
		r.SetBody(*in.Body)
	}
	if err := r.Next(); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *requestService) Preview(ctx context.Context, in RequestInput) (*RequestPreview, error) {
	r, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	return &RequestPreview{
		Subject:   r.Subject(),
		Body:      r.Preview(s.renderContext()),
		Documents: r.Requests(),
	}, nil
}

func (s *requestService) Send(ctx context.Context, actor string, in RequestInput) (_ *RequestResult, err error) {
	ctx, span := startSpan(ctx, "RequestService.Send",
		attribute.Int("clients", len(in.ClientIDs)),
		attribute.Bool("send_email", in.SendEmail),
	)
	defer func() { endSpan(span, err) }()

	r, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	out, err := r.Complete(in.SendEmail, s.renderContext(), s.now())
	if err != nil {
		return nil, err
	}
	if err := s.Documents.CreateMany(ctx, out.Documents); err != nil {
		return nil, fmt.Errorf("save requested documents: %w", err)
	}

	res := &RequestResult{Step: out.Step, Documents: out.Documents, Failed: []string{}}
	delivered := make(map[string]bool, len(out.Emails))
	for _, e := range out.Emails {
		msg := mail.Message{Subject: e.Subject, Body: e.Body}
		if e.To != "" {
			msg.To = []string{e.To}
		}
		if err := s.Mailer.Send(ctx, msg); err != nil {
			res.Failed = append(res.Failed, e.ClientID)
			s.Logger.Error("request_email_failed", err, map[string]any{
				"component": "service",
				"client_id": e.ClientID,
			})
			continue
		}
		delivered[e.ClientID] = true
	}

	names := make(map[string]string, len(in.ClientIDs))
	for _, c := range r.Clients() {
		names[c.ID] = c.Name
	}
	entries := make([]model.ActivityLogEntry, len(out.Documents))
	for i, d := range out.Documents {
		e := entryFor(model.ActivityRequest, actor, d, names[d.ClientID])
		e.Metadata.EmailSent = delivered[d.ClientID]
		if e.Metadata.EmailSent {
			e.Details = "Requested " + d.DocumentType + " by e-mail"
		} else {
			e.Details = "Added " + d.DocumentType + " to the request list"
		}
		entries[i] = e
	}
	s.record(ctx, entries...)
	s.Metrics.DocumentsRequested(len(out.Documents), in.SendEmail)
	return res, nil
}
