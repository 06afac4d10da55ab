package organizations

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aldoetobex/hrms-backend/internal/validationapi"
	"github.com/aldoetobex/hrms-backend/pkg/models"
	"github.com/aldoetobex/hrms-backend/pkg/uniqueness"
	"github.com/aldoetobex/hrms-backend/pkg/utils"
	"github.com/aldoetobex/hrms-backend/pkg/validation"
)

// ===== DTOs =====

type OrganizationRequest struct {
	Name               string `json:"name" validate:"required,max=120"`
	Email              string `json:"email" validate:"required,email"`
	ContactNumber      string `json:"contactNumber" validate:"required,mobile"`
	Website            string `json:"website" validate:"omitempty,website"`
	PanNumber          string `json:"panNumber" validate:"required,pan"`
	GstNumber          string `json:"gstNumber" validate:"omitempty,gst"`
	CinNumber          string `json:"cinNumber" validate:"omitempty,cin"`
	RegistrationNumber string `json:"registrationNumber" validate:"omitempty,registration_number"`
	AccountNumber      string `json:"accountNumber" validate:"omitempty,account_number"`
	AccountHolderName  string `json:"accountHolderName" validate:"required_with=AccountNumber,omitempty,account_holder_name"`
	IfscCode           string `json:"ifscCode" validate:"required_with=AccountNumber,omitempty,ifsc"`
	Address            string `json:"address" validate:"max=500"`
	Pincode            string `json:"pincode" validate:"omitempty,pincode"`
}

func (in *OrganizationRequest) normalize() {
	n := validation.Normalize
	in.Name = strings.TrimSpace(in.Name)
	in.Email = n("email", in.Email)
	in.ContactNumber = n("contactNumber", in.ContactNumber)
	in.Website = strings.TrimSpace(in.Website)
	in.PanNumber = n("panNumber", in.PanNumber)
	in.GstNumber = n("gstNumber", in.GstNumber)
	in.CinNumber = n("cinNumber", in.CinNumber)
	in.RegistrationNumber = strings.TrimSpace(in.RegistrationNumber)
	in.AccountNumber = n("accountNumber", in.AccountNumber)
	in.AccountHolderName = strings.TrimSpace(in.AccountHolderName)
	in.IfscCode = n("ifscCode", in.IfscCode)
	in.Address = strings.TrimSpace(in.Address)
	in.Pincode = n("pincode", in.Pincode)
}

func (in *OrganizationRequest) uniqueTargets(excludeID string) []uniqueness.Target {
	t := func(f uniqueness.Field, key, value string) uniqueness.Target {
		return uniqueness.Target{Field: f, Value: value, ErrorKey: key, ExcludeID: excludeID}
	}
	return []uniqueness.Target{
		t(uniqueness.Email, "email", in.Email),
		t(uniqueness.ContactNumber, "contactNumber", in.ContactNumber),
		t(uniqueness.PANNumber, "panNumber", in.PanNumber),
		t(uniqueness.GST, "gstNumber", in.GstNumber),
		t(uniqueness.CINNumber, "cinNumber", in.CinNumber),
		t(uniqueness.RegistrationNumber, "registrationNumber", in.RegistrationNumber),
		t(uniqueness.AccountNumber, "accountNumber", in.AccountNumber),
	}
}

func (in *OrganizationRequest) apply(o *models.Organization) {
	o.Name = in.Name
	o.Email = in.Email
	o.ContactNumber = in.ContactNumber
	o.Website = in.Website
	o.PanNumber = in.PanNumber
	o.GstNumber = in.GstNumber
	o.CinNumber = in.CinNumber
	o.RegistrationNumber = in.RegistrationNumber
	o.AccountNumber = in.AccountNumber
	o.AccountHolderName = in.AccountHolderName
	o.IfscCode = in.IfscCode
	o.Address = in.Address
	o.Pincode = in.Pincode
}

type OrganizationListItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	PanNumber string    `json:"panNumber"`
	GstNumber string    `json:"gstNumber"`
	CreatedAt time.Time `json:"createdAt"`
}

type PageOrganizations struct {
	Page     int                    `json:"page"`
	PageSize int                    `json:"pageSize"`
	Total    int64                  `json:"total"`
	Pages    int                    `json:"pages"`
	Items    []OrganizationListItem `json:"items"`
}

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) validate(c *fiber.Ctx, in *OrganizationRequest, excludeID string) (*validation.Session, error) {
	s := validation.NewSession()
	bag, err := validation.Validate(in)
	if err != nil {
		return nil, err
	}
	s.Merge(bag)
	validationapi.EnforceUnique(c.UserContext(), h.db, s, in.uniqueTargets(excludeID))
	return s, nil
}

// Create Organization godoc
// @Summary      Create organization
// @Description  Validates formats and uniqueness of the statutory numbers, then stores the organization
// @Tags         organizations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  OrganizationRequest  true  "Organization payload"
// @Success      201  {object}  map[string]string  "id"
// @Failure      400  {object}  models.ValidationErrorResponse
// @Router       /organizations [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in OrganizationRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	in.normalize()

	s, err := h.validate(c, &in, "")
	if err != nil {
		log.Errorw("organization validation failed", "error", err)
		return fiber.ErrInternalServerError
	}
	if s.HasErrors() {
		return validation.RespondSession(c, s)
	}

	var o models.Organization
	in.apply(&o)
	if err := h.db.WithContext(c.UserContext()).Create(&o).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": o.ID})
}

// Update Organization godoc
// @Summary      Update organization
// @Tags         organizations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string               true  "organization id (uuid)"
// @Param        payload  body  OrganizationRequest  true  "Organization payload"
// @Success      200  {object}  map[string]string  "id"
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /organizations/{id} [put]
func (h *Handler) Update(c *fiber.Ctx) error {
	o, err := h.find(c)
	if err != nil {
		return err
	}

	var in OrganizationRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	in.normalize()

	s, err := h.validate(c, &in, o.ID.String())
	if err != nil {
		log.Errorw("organization validation failed", "id", o.ID, "error", err)
		return fiber.ErrInternalServerError
	}
	if s.HasErrors() {
		return validation.RespondSession(c, s)
	}

	in.apply(o)
	if err := h.db.WithContext(c.UserContext()).Save(o).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"id": o.ID})
}

// Get Organization godoc
// @Summary      Organization detail
// @Tags         organizations
// @Security     BearerAuth
// @Produce      json
// @Param        id   path string true "organization id (uuid)"
// @Success      200  {object}  models.Organization
// @Failure      404  {object}  models.ErrorResponse
// @Router       /organizations/{id} [get]
func (h *Handler) Get(c *fiber.Ctx) error {
	o, err := h.find(c)
	if err != nil {
		return err
	}
	return c.JSON(o)
}

// List Organizations godoc
// @Summary      List organizations
// @Tags         organizations
// @Security     BearerAuth
// @Produce      json
// @Param        page      query int false "page"
// @Param        pageSize  query int false "pageSize"
// @Success      200  {object}  PageOrganizations
// @Router       /organizations [get]
func (h *Handler) List(c *fiber.Ctx) error {
	page, size := utils.ParsePage(c)

	var total int64
	if err := h.db.WithContext(c.UserContext()).Model(&models.Organization{}).Count(&total).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	items := make([]OrganizationListItem, 0, size)
	if err := h.db.WithContext(c.UserContext()).
		Model(&models.Organization{}).
		Select("id, name, email, pan_number, gst_number, created_at").
		Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Scan(&items).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	return c.JSON(PageOrganizations{
		Page: page, PageSize: size, Total: total,
		Pages: utils.Pages(total, size),
		Items: items,
	})
}

func (h *Handler) find(c *fiber.Ctx) (*models.Organization, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.ErrNotFound
	}
	var o models.Organization
	if err := h.db.WithContext(c.UserContext()).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.ErrNotFound
		}
		return nil, fiber.ErrInternalServerError
	}
	return &o, nil
}
