package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"

	"doccenter/internal/model"
	"doccenter/internal/repository"
	"doccenter/internal/storage"
	"doccenter/internal/workflow"
)

// RoleInput adds one recipient role. Kind client-spouse adds two roles.
type RoleInput struct {
	Kind       model.RoleType `json:"kind"`
	PickLater  bool           `json:"pick_later"`
	Label      string         `json:"label,omitempty"`
	Name       string         `json:"name,omitempty"`
	Email      string         `json:"email,omitempty"`
	FirmUserID string         `json:"firm_user_id,omitempty"`
}

// FieldInput places one field. Recipient indexes the roles as created, so a
// client-spouse input occupies two positions. X and Y are canvas percentages.
// Type is required.
type FieldInput struct {
	Type      *model.FieldType `json:"type"`
	Recipient int              `json:"recipient"`
	Page      int              `json:"page"`
	X         float64          `json:"x"`
	Y         float64          `json:"y"`
	// Width and Height override the field type's default size when positive.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// TemplateInput is a complete pass through the template builder.
type TemplateInput struct {
	Category     model.TemplateCategory `json:"category"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description,omitempty"`
	Year         int                    `json:"year,omitempty"`
	SigningOrder model.SigningOrder     `json:"signing_order,omitempty"`
	Roles        []RoleInput            `json:"roles"`
	Fields       []FieldInput           `json:"fields"`

	FileName    string    `json:"-"`
	ContentType string    `json:"-"`
	Size        int64     `json:"-"`
	File        io.Reader `json:"-"`
}

// TemplateService builds and stores signature templates.
type TemplateService interface {
	FirmUsers(ctx context.Context) []model.FirmUser
	// Create runs in through the builder, stores the PDF and saves the template.
	Create(ctx context.Context, actor string, in TemplateInput) (*model.SignatureTemplate, error)
	Get(ctx context.Context, id string) (*model.SignatureTemplate, error)
	List(ctx context.Context) ([]model.SignatureTemplate, error)
}

type templateService struct {
	base
}

// NewTemplateService constructs a new TemplateService.
func NewTemplateService(d Deps) TemplateService {
	return &templateService{base: newBase(d)}
}

func (s *templateService) FirmUsers(ctx context.Context) []model.FirmUser {
	return append([]model.FirmUser{}, s.Deps.FirmUsers...)
}

func (s *templateService) build(in TemplateInput) (*workflow.TemplateBuilder, error) {
	b := workflow.NewTemplateBuilder(s.Deps.FirmUsers, s.now())

	// category
	if in.Category != "" {
		if err := b.SelectCategory(in.Category); err != nil {
			return nil, err
		}
	}
	if err := b.AttachFile(workflow.Attachment{FileName: in.FileName, ContentType: in.ContentType, Size: in.Size}); err != nil {
		return nil, err
	}
	if err := b.Next(); err != nil {
		return nil, err
	}

	// details
	b.SetName(in.Name)
	b.SetDescription(in.Description)
	if in.Year != 0 {
		if err := b.SetYear(in.Year); err != nil {
			return nil, err
		}
	}
	if in.SigningOrder != "" {
		if err := b.SetSigningOrder(in.SigningOrder); err != nil {
			return nil, err
		}
	}
	if err := b.Next(); err != nil {
		return nil, err
	}

	// recipients
	for _, r := range in.Roles {
		if err := addRole(b, r); err != nil {
			return nil, err
		}
	}
	if err := b.Next(); err != nil {
		return nil, err
	}

	// fields
	roles := b.Roles()
	for i, f := range in.Fields {
		if f.Type == nil {
			return nil, fmt.Errorf("%w: field %d: type required", ErrInvalidField, i)
		}
		if f.Recipient < 0 || f.Recipient >= len(roles) {
			return nil, fmt.Errorf("%w: field %d: recipient %d out of range", ErrInvalidField, i, f.Recipient)
		}
		if f.X < 0 || f.X > 100 || f.Y < 0 || f.Y > 100 {
			return nil, fmt.Errorf("%w: field %d: position outside the page", ErrInvalidField, i)
		}
		if f.Page < 1 {
			return nil, fmt.Errorf("%w: field %d: page must be positive", ErrInvalidField, i)
		}
		if err := b.SelectRecipient(roles[f.Recipient].ID); err != nil {
			return nil, err
		}
		b.SelectFieldType(*f.Type)
		placed, err := b.PlaceFieldAt(f.Page, f.X, f.Y)
		if err != nil {
			return nil, err
		}
		if f.Width > 0 || f.Height > 0 {
			w, h := placed.Width, placed.Height
			if f.Width > 0 {
				w = f.Width
			}
			if f.Height > 0 {
				h = f.Height
			}
			if _, err := b.ResizeField(placed.ID, placed.Width, placed.Height, w-placed.Width, h-placed.Height); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

func addRole(b *workflow.TemplateBuilder, r RoleInput) error {
	var err error
	switch r.Kind {
	case model.RoleClient:
		_, err = b.AddClientRole()
	case model.RoleClientSpouse:
		_, err = b.AddClientSpouseRoles()
	case model.RoleExternal:
		if r.PickLater {
			_, err = b.AddExternalRoleLater(r.Label)
		} else {
			_, err = b.AddExternalRole(r.Label, r.Name, r.Email)
		}
	case model.RoleFirmUser:
		if r.PickLater {
			_, err = b.AddFirmUserRoleLater()
		} else {
			_, err = b.AddFirmUserRole(r.FirmUserID)
		}
	default:
		err = fmt.Errorf("%w: unknown role kind %q", ErrInvalidField, r.Kind)
	}
	return err
}

func (s *templateService) Create(ctx context.Context, actor string, in TemplateInput) (_ *model.SignatureTemplate, err error) {
	ctx, span := startSpan(ctx, "TemplateService.Create", attribute.String("template.category", string(in.Category)))
	defer func() { endSpan(span, err) }()

	if in.File == nil {
		return nil, ErrReaderNil
	}
	b, err := s.build(in)
	if err != nil {
		return nil, err
	}
	tpl, err := b.Save(actor, s.now())
	if err != nil {
		return nil, err
	}

	key := storage.TemplateKey(tpl.ID, tpl.FileName)
	objInfo, err := s.Storage.Put(ctx, key, in.File, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.FileName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}
	tpl.StoragePath = objInfo.Key

	stored, err := s.Templates.Create(ctx, tpl)
	if err != nil {
		if delErr := s.Storage.Delete(ctx, objInfo.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	s.Metrics.TemplateSaved(string(stored.Category))
	return stored, nil
}

func (s *templateService) Get(ctx context.Context, id string) (*model.SignatureTemplate, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	t, err := s.Templates.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTemplateNotFound
	}
	return t, err
}

func (s *templateService) List(ctx context.Context) ([]model.SignatureTemplate, error) {
	return s.Templates.List(ctx)
}
