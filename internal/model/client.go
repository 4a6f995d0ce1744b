package model

import "time"

// ClientType distinguishes individual from business clients.
type ClientType string

const (
	ClientIndividual ClientType = "Individual"
	ClientBusiness   ClientType = "Business"
)

// Valid reports whether t is a known client type.
func (t ClientType) Valid() bool {
	return t == ClientIndividual || t == ClientBusiness
}

// FirmClientID is the id of the pseudo-account holding the firm's own documents.
const FirmClientID = "firm"

// Client is a tax client or the firm pseudo-account.
type Client struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      ClientType `json:"type"`
	Email     string     `json:"email,omitempty"`
	IsFirm    bool       `json:"is_firm,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ClientSummary is a client with counters derived from its documents and its
// linked accounts resolved from the link edge set.
type ClientSummary struct {
	Client
	DocumentCount    int        `json:"document_count"`
	NewDocumentCount int        `json:"new_document_count"`
	MostRecentDate   *time.Time `json:"most_recent_date"`
	LinkedAccounts   []string   `json:"linked_accounts,omitempty"`
}

// ClientLink is an undirected link between two clients, stored with A < B.
type ClientLink struct {
	A string `json:"a"`
	B string `json:"b"`
}

// NewClientLink orders the pair so the same two clients always produce the same key.
func NewClientLink(x, y string) ClientLink {
	if y < x {
		x, y = y, x
	}
	return ClientLink{A: x, B: y}
}

// Other returns the end of the link that is not id.
func (l ClientLink) Other(id string) (string, bool) {
	switch id {
	case l.A:
		return l.B, true
	case l.B:
		return l.A, true
	}
	return "", false
}
