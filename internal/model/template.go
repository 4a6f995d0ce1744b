package model

import "time"

// TemplateCategory groups signature templates.
type TemplateCategory string

const (
	CategoryTax        TemplateCategory = "Tax"
	CategoryEngagement TemplateCategory = "Engagement"
	CategoryCustom     TemplateCategory = "Custom"
)

func (c TemplateCategory) Valid() bool {
	switch c {
	case CategoryTax, CategoryEngagement, CategoryCustom:
		return true
	}
	return false
}

// SigningOrder controls whether recipients sign one after another or all at once.
type SigningOrder string

const (
	SigningSequential   SigningOrder = "sequential"
	SigningSimultaneous SigningOrder = "simultaneous"
)

func (o SigningOrder) Valid() bool {
	return o == SigningSequential || o == SigningSimultaneous
}

// RoleType is the kind of recipient a template role stands for.
type RoleType string

const (
	RoleClient       RoleType = "client"
	RoleClientSpouse RoleType = "client-spouse"
	RoleExternal     RoleType = "external"
	RoleFirmUser     RoleType = "firm-user"
)

// SourceType records where a role's recipient is resolved from.
type SourceType string

const (
	SourceClient    SourceType = "client"
	SourceExternal  SourceType = "external"
	SourceSpouseTag SourceType = "spouse-tag"
	SourceFirm      SourceType = "firm"
)

// ConfiguredRole is one recipient slot of a signature template. Order is
// 1-based and contiguous across the template's roles.
type ConfiguredRole struct {
	ID           string     `json:"id"`
	RoleType     RoleType   `json:"role_type"`
	Order        int        `json:"order"`
	SourceType   SourceType `json:"source_type"`
	Color        string     `json:"color"`
	Label        string     `json:"label,omitempty"`
	Name         string     `json:"name,omitempty"`
	Email        string     `json:"email,omitempty"`
	FirmUserID   string     `json:"firm_user_id,omitempty"`
	FirmUserName string     `json:"firm_user_name,omitempty"`
	SelectLater  bool       `json:"select_later"`
}

// DisplayName is the name shown for the role in recipient lists.
func (r ConfiguredRole) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	switch r.RoleType {
	case RoleClient, RoleClientSpouse:
		return "Client"
	case RoleExternal:
		if r.Label != "" {
			return r.Label
		}
		return "External Recipient"
	case RoleFirmUser:
		if r.FirmUserName != "" {
			return r.FirmUserName
		}
		return "Firm User"
	}
	return "Recipient"
}

// FieldType is the kind of input placed on a template page.
type FieldType uint8

const (
	FieldSignature FieldType = iota
	FieldInitial
	FieldDateSigned
	FieldText
	FieldCheckbox
	FieldName
	FieldCompanyName
	FieldDOB
	FieldAddress
	fieldTypeCount
)

// FieldTypeInfo holds the label and default pixel size of a field type.
type FieldTypeInfo struct {
	Name   string
	Label  string
	Width  float64
	Height float64
}

var fieldTypeInfos = [...]FieldTypeInfo{
	FieldSignature:   {Name: "signature", Label: "Signature", Width: 140, Height: 50},
	FieldInitial:     {Name: "initial", Label: "Initial", Width: 60, Height: 30},
	FieldDateSigned:  {Name: "date-signed", Label: "Date", Width: 100, Height: 30},
	FieldText:        {Name: "text", Label: "Text", Width: 120, Height: 30},
	FieldCheckbox:    {Name: "checkbox", Label: "Checkbox", Width: 20, Height: 20},
	FieldName:        {Name: "name", Label: "Name", Width: 120, Height: 30},
	FieldCompanyName: {Name: "company-name", Label: "Company", Width: 140, Height: 30},
	FieldDOB:         {Name: "dob", Label: "DOB", Width: 100, Height: 30},
	FieldAddress:     {Name: "address", Label: "Address", Width: 200, Height: 60},
}

// Fails to compile when a field type is added without an info row.
var _ = [1]struct{}{}[len(fieldTypeInfos)-int(fieldTypeCount)]

var fieldTypeNames = func() []string {
	out := make([]string, len(fieldTypeInfos))
	for i, info := range fieldTypeInfos {
		out[i] = info.Name
	}
	return out
}()

// Info returns the label and default size of t.
func (t FieldType) Info() FieldTypeInfo {
	if t < fieldTypeCount {
		return fieldTypeInfos[t]
	}
	return FieldTypeInfo{Name: t.String(), Label: "Field", Width: 120, Height: 30}
}

func (t FieldType) String() string { return enumName(fieldTypeNames, t) }

// ParseFieldType converts the wire name of a field type.
func ParseFieldType(v string) (FieldType, error) {
	return parseEnum[FieldType]("field type", fieldTypeNames, v)
}

func (t FieldType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *FieldType) UnmarshalText(b []byte) error {
	v, err := ParseFieldType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// TemplateField is an input placed on a template page. X and Y are
// percentages of the page canvas; Width and Height are pixels.
type TemplateField struct {
	ID          string    `json:"id"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Required    bool      `json:"required"`
	RecipientID string    `json:"recipient_id"`
	Page        int       `json:"page"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
}

// SignatureTemplate is a saved template definition.
type SignatureTemplate struct {
	ID           string           `json:"id"`
	Category     TemplateCategory `json:"category"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Year         int              `json:"year"`
	SigningOrder SigningOrder     `json:"signing_order"`
	Roles        []ConfiguredRole `json:"roles"`
	Fields       []TemplateField  `json:"fields"`
	FileName     string           `json:"file_name"`
	StoragePath  string           `json:"storage_path,omitempty"`
	CreatedBy    string           `json:"created_by"`
	CreatedAt    time.Time        `json:"created_at"`
}

// FirmUser is a member of the firm that can be assigned as a template signer.
type FirmUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Email string `json:"email"`
}
