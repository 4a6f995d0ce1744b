package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"doccenter/internal/model"
)

// DefaultFirmUsers are the firm members offered as template signers.
var DefaultFirmUsers = []model.FirmUser{
	{ID: "1", Name: "David Wilson", Title: "Tax Associate", Email: "david.w@firm.com"},
	{ID: "2", Name: "Emily Davis", Title: "Accountant", Email: "emily.d@firm.com"},
	{ID: "3", Name: "Jessica Martinez", Title: "Senior Accountant", Email: "jessica.m@firm.com"},
	{ID: "4", Name: "Michael Chen", Title: "Partner", Email: "michael.c@firm.com"},
	{ID: "5", Name: "Sarah Johnson", Title: "Senior Tax Manager", Email: "sarah.j@firm.com"},
}

// Seed loads a demo client directory and document set. It does nothing when
// the directory already has clients, so restarts do not duplicate data.
func Seed(ctx context.Context, d Deps) error {
	b := newBase(d)
	existing, err := b.Clients.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := b.now()
	clients := []model.Client{
		{ID: model.FirmClientID, Name: "FIRM Documents", Type: model.ClientBusiness, IsFirm: true},
		{ID: "1", Name: "Troy Business Services LLC", Type: model.ClientBusiness, Email: "office@troybiz.example"},
		{ID: "2", Name: "Abacus 360", Type: model.ClientBusiness, Email: "books@abacus360.example"},
		{ID: "3", Name: "Best Face Forward", Type: model.ClientBusiness},
		{ID: "5", Name: "John Smith", Type: model.ClientIndividual, Email: "john.smith@example.com"},
		{ID: "6", Name: "Jane Smith", Type: model.ClientIndividual, Email: "jane.smith@example.com"},
		{ID: "10", Name: "Michael Chen", Type: model.ClientIndividual, Email: "mchen@example.com"},
		{ID: "13", Name: "Lisa Chen", Type: model.ClientIndividual, Email: "lchen@example.com"},
		{ID: "14", Name: "Chen Family Trust", Type: model.ClientBusiness},
		{ID: "15", Name: "Robert Johnson", Type: model.ClientIndividual, Email: "rjohnson@example.com"},
		{ID: "16", Name: "Maria Johnson", Type: model.ClientIndividual, Email: "maria.j@example.com"},
	}
	for i := range clients {
		clients[i].CreatedAt = now
		if _, err := b.Clients.Create(ctx, &clients[i]); err != nil {
			return fmt.Errorf("seed client %s: %w", clients[i].ID, err)
		}
	}
	for _, l := range [][2]string{{"5", "6"}, {"10", "13"}, {"10", "14"}, {"15", "16"}} {
		if err := b.Clients.Link(ctx, model.NewClientLink(l[0], l[1])); err != nil {
			return fmt.Errorf("seed link %s-%s: %w", l[0], l[1], err)
		}
	}

	year := now.Year()
	last := strconv.Itoa(year - 1)
	old := strconv.Itoa(year - 3)
	daysAgo := func(n int) *time.Time {
		t := now.Add(-time.Duration(n) * 24 * time.Hour)
		return &t
	}
	received := func(id, client, name, typ, yr string, status model.Status, at int) model.Document {
		doc := model.Document{
			ID: id, ClientID: client, Name: name, DocumentType: typ, Year: yr,
			Status: status, Method: model.MethodUploadedFile, ReceivedDate: daysAgo(at),
			ReminderHistory: []model.ReminderHistory{}, CreatedAt: *daysAgo(at),
		}
		if status == model.StatusApproved {
			doc.ReviewedDate = daysAgo(at - 1)
			doc.ReviewedBy = "Sarah Johnson"
		}
		return doc
	}
	requested := func(id, client, name, typ, yr string, at int) model.Document {
		return model.Document{
			ID: id, ClientID: client, Name: name, DocumentType: typ, Year: yr,
			Status: model.StatusRequested, RequestedDate: daysAgo(at),
			ReminderHistory: []model.ReminderHistory{}, CreatedAt: *daysAgo(at),
		}
	}

	docs := []model.Document{
		received("d1", "1", "Q4 Profit & Loss.pdf", "Profit & Loss Statement", last, model.StatusPending, 2),
		received("d2", "1", "Balance Sheet Dec.pdf", "Balance Sheet", last, model.StatusApproved, 10),
		received("d3", "1", "Office supplies receipt.jpg", "Receipts", last, model.StatusPending, 1),
		received("d4", "2", "Chase statement.pdf", "Bank Statements", last, model.StatusPending, 3),
		received("d5", "2", "Vendor invoice 1043.pdf", "Invoices", old, model.StatusPending, 40),
		received("d6", "5", "W-2 Acme Corp.pdf", "W-2 Form", last, model.StatusApproved, 12),
		received("d7", "6", "1099-INT Ally.pdf", "1099-INT", last, model.StatusPending, 4),
		received("d8", "10", "1099-B Schwab.pdf", "1099-B", last, model.StatusPending, 5),
		received("d9", "14", "Trust K-1.pdf", "K-1 (1065, 1120-S, 1041)", last, model.StatusApproved, 20),
		received("d10", model.FirmClientID, "Engagement letter template.docx", "Engagement Letter", last, model.StatusApproved, 30),
		requested("d11", "5", "1098 (Mortgage Interest) - John Smith", "1098 (Mortgage Interest)", last, 9),
		requested("d12", "13", "W-2 Form - Lisa Chen", "W-2 Form", last, 2),
		requested("d13", "15", "Property Tax Bill - Robert Johnson", "Property Tax Bill", last, 15),
	}
	docs[4].Status = model.StatusRejected
	docs[4].RejectionReason = "Invoice is illegible"
	docs[4].ReviewedDate = daysAgo(35)
	docs[4].ReviewedBy = "Emily Davis"
	if err := b.Documents.CreateMany(ctx, docs); err != nil {
		return fmt.Errorf("seed documents: %w", err)
	}
	for _, h := range []model.ReminderHistory{
		{SentDate: *daysAgo(8), SentBy: "Sarah Johnson", Status: model.ReminderSent, Viewed: true, ViewedDate: daysAgo(7)},
		{SentDate: *daysAgo(1), SentBy: "Sarah Johnson", Status: model.ReminderSent},
	} {
		if err := b.Documents.AppendReminder(ctx, docs[12].ID, h); err != nil {
			return fmt.Errorf("seed reminders: %w", err)
		}
	}

	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	var entries []model.ActivityLogEntry
	for _, doc := range docs {
		switch doc.Status {
		case model.StatusRequested:
			e := entryFor(model.ActivityRequest, "Sarah Johnson", doc, names[doc.ClientID])
			e.Details = "Requested " + doc.DocumentType + " by e-mail"
			e.Metadata.EmailSent = true
			entries = append(entries, e)
		default:
			e := entryFor(model.ActivityUpload, "Client Portal", doc, names[doc.ClientID])
			e.Details = "Uploaded " + doc.Name
			entries = append(entries, e)
		}
	}
	if err := b.Activity.Append(ctx, stamp(b, entries, now)...); err != nil {
		return fmt.Errorf("seed activity: %w", err)
	}
	return nil
}

// stamp assigns ids and spreads entries back in time, oldest first.
func stamp(b base, entries []model.ActivityLogEntry, now time.Time) []model.ActivityLogEntry {
	for i := range entries {
		entries[i].ID = b.newID()
		entries[i].Timestamp = now.Add(-time.Duration(len(entries)-i) * time.Hour)
	}
	return entries
}
