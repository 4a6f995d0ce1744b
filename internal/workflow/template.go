package workflow

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"doccenter/internal/model"
)

var (
	ErrCategoryRequired    = errors.New("template category is required")
	ErrInvalidCategory     = errors.New("invalid template category")
	ErrPDFRequired         = errors.New("a PDF document is required")
	ErrNameRequired        = errors.New("template name is required")
	ErrInvalidYear         = errors.New("invalid template year")
	ErrInvalidSigningOrder = errors.New("invalid signing order")
	ErrNoRecipients        = errors.New("at least one recipient role is required")
	ErrRecipientName       = errors.New("recipient name is required")
	ErrRecipientEmail      = errors.New("recipient email is required")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrUnknownFirmUser     = errors.New("unknown firm user")
	ErrRecipientNotFound   = errors.New("recipient not found")
	ErrRecipientIndex      = errors.New("recipient index out of range")
	ErrNoRecipientSelected = errors.New("no recipient selected")
	ErrNoFieldType         = errors.New("no field type selected")
	ErrFieldNotFound       = errors.New("field not found")
	ErrInvalidCanvas       = errors.New("canvas has no area")
)

// PDFContentType is the only MIME type accepted as a template document.
const PDFContentType = "application/pdf"

// RoleColors is the palette recipient roles cycle through by position.
var RoleColors = []string{"#7C3AED", "#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#EC4899"}

// Minimum field size in pixels when resizing.
const (
	MinFieldWidth  = 40
	MinFieldHeight = 20
)

const defaultExternalLabel = "External Recipient"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an e-mail address.
func ValidEmail(s string) bool { return emailPattern.MatchString(s) }

// TemplateStep is the position of the template builder wizard.
type TemplateStep uint8

const (
	StepCategory TemplateStep = iota
	StepDetails
	StepRecipients
	StepFields
	StepSaved
)

func (s TemplateStep) String() string {
	switch s {
	case StepCategory:
		return "category"
	case StepDetails:
		return "details"
	case StepRecipients:
		return "recipients"
	case StepFields:
		return "fields"
	case StepSaved:
		return "saved"
	}
	return "step(" + strconv.Itoa(int(s)) + ")"
}

func (s TemplateStep) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Attachment describes the PDF the template is built on.
type Attachment struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Canvas is the on-screen rectangle of the rendered page, in pixels.
type Canvas struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Percent converts a pixel position to percentages of the canvas.
func (c Canvas) Percent(px, py float64) (x, y float64, err error) {
	if c.Width <= 0 || c.Height <= 0 {
		return 0, 0, ErrInvalidCanvas
	}
	return (px - c.Left) / c.Width * 100, (py - c.Top) / c.Height * 100, nil
}

// TemplateBuilder is the four-step signature template wizard. It is not safe
// for concurrent use.
type TemplateBuilder struct {
	step         TemplateStep
	category     model.TemplateCategory
	file         *Attachment
	name         string
	description  string
	year         int
	signingOrder model.SigningOrder
	roles        []model.ConfiguredRole
	fields       []model.TemplateField

	selectedRecipient string
	selectedFieldType *model.FieldType

	firmUsers []model.FirmUser
	newID     func() string
}

// NewTemplateBuilder starts a wizard. The template year defaults to now's year.
func NewTemplateBuilder(firmUsers []model.FirmUser, now time.Time) *TemplateBuilder {
	return &TemplateBuilder{
		step:         StepCategory,
		year:         now.Year(),
		signingOrder: model.SigningSequential,
		firmUsers:    firmUsers,
		newID:        func() string { return uuid.NewString() },
	}
}

func (b *TemplateBuilder) Step() TemplateStep        { return b.step }
func (b *TemplateBuilder) File() *Attachment         { return b.file }
func (b *TemplateBuilder) SelectedRecipient() string { return b.selectedRecipient }

// Roles returns the configured roles in signing order.
func (b *TemplateBuilder) Roles() []model.ConfiguredRole {
	return append([]model.ConfiguredRole(nil), b.roles...)
}

// Fields returns the placed fields in placement order.
func (b *TemplateBuilder) Fields() []model.TemplateField {
	return append([]model.TemplateField(nil), b.fields...)
}

func (b *TemplateBuilder) editable() error {
	if b.step == StepSaved {
		return ErrInvalidStep
	}
	return nil
}

// SelectCategory sets the template category.
func (b *TemplateBuilder) SelectCategory(c model.TemplateCategory) error {
	if err := b.editable(); err != nil {
		return err
	}
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, c)
	}
	b.category = c
	return nil
}

// AttachFile sets the template document. Anything but a PDF is rejected and
// leaves the current attachment untouched.
func (b *TemplateBuilder) AttachFile(a Attachment) error {
	if err := b.editable(); err != nil {
		return err
	}
	if a.ContentType != PDFContentType {
		return fmt.Errorf("%w: got %q", ErrPDFRequired, a.ContentType)
	}
	b.file = &a
	return nil
}

// RemoveFile clears the attachment.
func (b *TemplateBuilder) RemoveFile() { b.file = nil }

func (b *TemplateBuilder) SetName(name string)               { b.name = name }
func (b *TemplateBuilder) SetDescription(description string) { b.description = description }

// SetYear changes the template year.
func (b *TemplateBuilder) SetYear(year int) error {
	if year < 1000 || year > 9999 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	b.year = year
	return nil
}

// SetSigningOrder switches between sequential and simultaneous signing.
func (b *TemplateBuilder) SetSigningOrder(o model.SigningOrder) error {
	if !o.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSigningOrder, o)
	}
	b.signingOrder = o
	return nil
}

// Next validates the current step and advances. Entering the fields step
// selects the first recipient.
func (b *TemplateBuilder) Next() error {
	switch b.step {
	case StepCategory:
		if b.category == "" {
			return ErrCategoryRequired
		}
		if b.file == nil {
			return ErrPDFRequired
		}
	case StepDetails:
		if strings.TrimSpace(b.name) == "" {
			return ErrNameRequired
		}
	case StepRecipients:
		if len(b.roles) == 0 {
			return ErrNoRecipients
		}
		b.selectedRecipient = b.roles[0].ID
	default:
		return ErrInvalidStep
	}
	b.step++
	return nil
}

// Back returns to the previous step. It is a no-op on the first step.
func (b *TemplateBuilder) Back() error {
	if err := b.editable(); err != nil {
		return err
	}
	if b.step > StepCategory {
		b.step--
	}
	return nil
}

func (b *TemplateBuilder) nextRole(t model.RoleType, src model.SourceType, offset int) model.ConfiguredRole {
	pos := len(b.roles) + offset
	return model.ConfiguredRole{
		ID:         b.newID(),
		RoleType:   t,
		Order:      pos + 1,
		SourceType: src,
		Color:      RoleColors[pos%len(RoleColors)],
	}
}

// AddClientRole adds a client recipient resolved when the template is used.
func (b *TemplateBuilder) AddClientRole() (model.ConfiguredRole, error) {
	if err := b.editable(); err != nil {
		return model.ConfiguredRole{}, err
	}
	r := b.nextRole(model.RoleClient, model.SourceClient, 0)
	r.SelectLater = true
	b.roles = append(b.roles, r)
	return r, nil
}

// AddClientSpouseRoles adds the client and the client's spouse as two
// consecutive recipients.
func (b *TemplateBuilder) AddClientSpouseRoles() ([]model.ConfiguredRole, error) {
	if err := b.editable(); err != nil {
		return nil, err
	}
	client := b.nextRole(model.RoleClientSpouse, model.SourceClient, 0)
	client.SelectLater = true
	client.Name = "Client"
	spouse := b.nextRole(model.RoleClientSpouse, model.SourceSpouseTag, 1)
	spouse.SelectLater = true
	spouse.Name = "Client's Spouse"
	b.roles = append(b.roles, client, spouse)
	return []model.ConfiguredRole{client, spouse}, nil
}

// AddExternalRole adds a recipient outside the firm picked now by name and email.
func (b *TemplateBuilder) AddExternalRole(label, name, email string) (model.ConfiguredRole, error) {
	if err := b.editable(); err != nil {
		return model.ConfiguredRole{}, err
	}
	switch {
	case strings.TrimSpace(name) == "":
		return model.ConfiguredRole{}, ErrRecipientName
	case strings.TrimSpace(email) == "":
		return model.ConfiguredRole{}, ErrRecipientEmail
	case !ValidEmail(email):
		return model.ConfiguredRole{}, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	r := b.nextRole(model.RoleExternal, model.SourceExternal, 0)
	r.Label = orDefault(label, defaultExternalLabel)
	r.Name = name
	r.Email = email
	b.roles = append(b.roles, r)
	return r, nil
}

// AddExternalRoleLater adds an external recipient picked when the template is used.
func (b *TemplateBuilder) AddExternalRoleLater(label string) (model.ConfiguredRole, error) {
	if err := b.editable(); err != nil {
		return model.ConfiguredRole{}, err
	}
	r := b.nextRole(model.RoleExternal, model.SourceExternal, 0)
	r.Label = orDefault(label, defaultExternalLabel)
	r.SelectLater = true
	b.roles = append(b.roles, r)
	return r, nil
}

// AddFirmUserRole adds a known member of the firm as a recipient.
func (b *TemplateBuilder) AddFirmUserRole(userID string) (model.ConfiguredRole, error) {
	if err := b.editable(); err != nil {
		return model.ConfiguredRole{}, err
	}
	var user *model.FirmUser
	for i := range b.firmUsers {
		if b.firmUsers[i].ID == userID {
			user = &b.firmUsers[i]
			break
		}
	}
	if user == nil {
		return model.ConfiguredRole{}, fmt.Errorf("%w: %q", ErrUnknownFirmUser, userID)
	}
	r := b.nextRole(model.RoleFirmUser, model.SourceFirm, 0)
	r.FirmUserID = user.ID
	r.FirmUserName = user.Name
	r.Email = user.Email
	b.roles = append(b.roles, r)
	return r, nil
}

// AddFirmUserRoleLater adds a firm user recipient picked when the template is used.
func (b *TemplateBuilder) AddFirmUserRoleLater() (model.ConfiguredRole, error) {
	if err := b.editable(); err != nil {
		return model.ConfiguredRole{}, err
	}
	r := b.nextRole(model.RoleFirmUser, model.SourceFirm, 0)
	r.SelectLater = true
	b.roles = append(b.roles, r)
	return r, nil
}

// MoveRecipient moves the role at index from to index to and renumbers the
// signing order 1..n. Colors stay with their roles.
func (b *TemplateBuilder) MoveRecipient(from, to int) error {
	if err := b.editable(); err != nil {
		return err
	}
	n := len(b.roles)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrRecipientIndex
	}
	r := b.roles[from]
	b.roles = append(b.roles[:from], b.roles[from+1:]...)
	b.roles = append(b.roles[:to], append([]model.ConfiguredRole{r}, b.roles[to:]...)...)
	b.renumber()
	return nil
}

// RemoveRecipient drops a role, renumbers the rest and deletes the fields
// assigned to it. A removed selection falls back to the first remaining role.
func (b *TemplateBuilder) RemoveRecipient(id string) error {
	if err := b.editable(); err != nil {
		return err
	}
	idx := b.roleIndex(id)
	if idx < 0 {
		return ErrRecipientNotFound
	}
	b.roles = append(b.roles[:idx], b.roles[idx+1:]...)
	b.renumber()

	kept := b.fields[:0]
	for _, f := range b.fields {
		if f.RecipientID != id {
			kept = append(kept, f)
		}
	}
	b.fields = kept

	if b.selectedRecipient == id {
		b.selectedRecipient = ""
		if len(b.roles) > 0 {
			b.selectedRecipient = b.roles[0].ID
		}
	}
	return nil
}

func (b *TemplateBuilder) renumber() {
	for i := range b.roles {
		b.roles[i].Order = i + 1
	}
}

func (b *TemplateBuilder) roleIndex(id string) int {
	for i, r := range b.roles {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// SelectRecipient chooses the role new fields are assigned to.
func (b *TemplateBuilder) SelectRecipient(id string) error {
	if b.roleIndex(id) < 0 {
		return ErrRecipientNotFound
	}
	b.selectedRecipient = id
	return nil
}

// SelectFieldType chooses the kind of the next placed field.
func (b *TemplateBuilder) SelectFieldType(t model.FieldType) { b.selectedFieldType = &t }

// PlaceField drops a field of the selected type for the selected recipient at
// a click position on the canvas. The field type selection is cleared afterwards.
func (b *TemplateBuilder) PlaceField(page int, canvas Canvas, px, py float64) (model.TemplateField, error) {
	x, y, err := canvas.Percent(px, py)
	if err != nil {
		return model.TemplateField{}, err
	}
	return b.PlaceFieldAt(page, x, y)
}

// PlaceFieldAt is PlaceField with the position already in canvas percentages.
func (b *TemplateBuilder) PlaceFieldAt(page int, x, y float64) (model.TemplateField, error) {
	if b.step != StepFields {
		return model.TemplateField{}, ErrInvalidStep
	}
	if b.selectedRecipient == "" {
		return model.TemplateField{}, ErrNoRecipientSelected
	}
	if b.selectedFieldType == nil {
		return model.TemplateField{}, ErrNoFieldType
	}
	t := *b.selectedFieldType
	info := t.Info()
	f := model.TemplateField{
		ID:          b.newID(),
		Type:        t,
		Label:       info.Label,
		Required:    true,
		RecipientID: b.selectedRecipient,
		Page:        page,
		X:           x,
		Y:           y,
		Width:       info.Width,
		Height:      info.Height,
	}
	b.fields = append(b.fields, f)
	b.selectedFieldType = nil
	return f, nil
}

// DragField moves a field so that its grab point follows the pointer. The
// result is clamped to the canvas.
func (b *TemplateBuilder) DragField(id string, canvas Canvas, px, py, grabX, grabY float64) (model.TemplateField, error) {
	f, err := b.field(id)
	if err != nil {
		return model.TemplateField{}, err
	}
	x, y, err := canvas.Percent(px-grabX, py-grabY)
	if err != nil {
		return model.TemplateField{}, err
	}
	f.X = clamp(x, 0, 100)
	f.Y = clamp(y, 0, 100)
	return *f, nil
}

// ResizeField sets a field's size from the size it had when the resize began
// plus the pointer delta, never below MinFieldWidth x MinFieldHeight.
func (b *TemplateBuilder) ResizeField(id string, startWidth, startHeight, dx, dy float64) (model.TemplateField, error) {
	f, err := b.field(id)
	if err != nil {
		return model.TemplateField{}, err
	}
	f.Width = math.Max(MinFieldWidth, startWidth+dx)
	f.Height = math.Max(MinFieldHeight, startHeight+dy)
	return *f, nil
}

// DeleteField removes a field. Unknown ids are ignored.
func (b *TemplateBuilder) DeleteField(id string) {
	kept := b.fields[:0]
	for _, f := range b.fields {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	b.fields = kept
}

func (b *TemplateBuilder) field(id string) (*model.TemplateField, error) {
	if b.step != StepFields {
		return nil, ErrInvalidStep
	}
	for i := range b.fields {
		if b.fields[i].ID == id {
			return &b.fields[i], nil
		}
	}
	return nil, ErrFieldNotFound
}

// Save finishes the wizard and returns the template definition. The builder
// accepts no further edits afterwards.
func (b *TemplateBuilder) Save(createdBy string, now time.Time) (*model.SignatureTemplate, error) {
	if b.step != StepFields {
		return nil, ErrInvalidStep
	}
	if b.file == nil {
		return nil, ErrPDFRequired
	}
	t := &model.SignatureTemplate{
		ID:           b.newID(),
		Category:     b.category,
		Name:         strings.TrimSpace(b.name),
		Description:  b.description,
		Year:         b.year,
		SigningOrder: b.signingOrder,
		Roles:        b.Roles(),
		Fields:       b.Fields(),
		FileName:     b.file.FileName,
		CreatedBy:    createdBy,
		CreatedAt:    now,
	}
	if t.Fields == nil {
		t.Fields = []model.TemplateField{}
	}
	b.step = StepSaved
	return t, nil
}

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
