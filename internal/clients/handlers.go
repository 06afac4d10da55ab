package clients

import (
	"strings"

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

type CreateClientRequest struct {
	OrganizationID string `json:"organizationId" validate:"omitempty,uuid"`
	Name           string `json:"name" validate:"required,max=120"`
	Email          string `json:"email" validate:"omitempty,email"`
	ContactNumber  string `json:"contactNumber" validate:"omitempty,mobile"`
	GstNumber      string `json:"gstNumber" validate:"omitempty,gst"`
	Pincode        string `json:"pincode" validate:"omitempty,pincode"`
}

// ClientOption is one entry of the client selector. Status placeholders
// come first, then real clients.
type ClientOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Create Client godoc
// @Summary      Create client
// @Tags         clients
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateClientRequest  true  "Client payload"
// @Success      201  {object}  map[string]string  "id"
// @Failure      400  {object}  models.ValidationErrorResponse
// @Router       /clients [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = validation.Normalize("email", in.Email)
	in.ContactNumber = validation.Normalize("contactNumber", in.ContactNumber)
	in.GstNumber = validation.Normalize("gstNumber", in.GstNumber)
	in.Pincode = validation.Normalize("pincode", in.Pincode)

	s := validation.NewSession()
	bag, err := validation.Validate(in)
	if err != nil {
		log.Errorw("client validation failed", "error", err)
		return fiber.ErrInternalServerError
	}
	s.Merge(bag)
	validationapi.EnforceUnique(c.UserContext(), h.db, s, []uniqueness.Target{
		{Field: uniqueness.Email, Value: in.Email, ErrorKey: "email"},
		{Field: uniqueness.ContactNumber, Value: in.ContactNumber, ErrorKey: "contactNumber"},
		{Field: uniqueness.GST, Value: in.GstNumber, ErrorKey: "gstNumber"},
	})
	if s.HasErrors() {
		return validation.RespondSession(c, s)
	}

	cl := models.Client{
		Name:          in.Name,
		Email:         in.Email,
		ContactNumber: in.ContactNumber,
		GstNumber:     in.GstNumber,
		Pincode:       in.Pincode,
	}
	if in.OrganizationID != "" {
		oid, _ := uuid.Parse(in.OrganizationID)
		cl.OrganizationID = &oid
	}
	if err := h.db.WithContext(c.UserContext()).Create(&cl).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": cl.ID})
}

// List Clients godoc
// @Summary      List clients
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        page      query int false "page"
// @Param        pageSize  query int false "pageSize"
// @Success      200  {object}  map[string]interface{}
// @Router       /clients [get]
func (h *Handler) List(c *fiber.Ctx) error {
	page, size := utils.ParsePage(c)

	var total int64
	if err := h.db.WithContext(c.UserContext()).Model(&models.Client{}).Count(&total).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	rows := []models.Client{}
	if err := h.db.WithContext(c.UserContext()).
		Order("name ASC").
		Offset((page - 1) * size).Limit(size).
		Find(&rows).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{
		"page": page, "pageSize": size, "total": total,
		"pages": utils.Pages(total, size),
		"items": rows,
	})
}

// Options godoc
// @Summary      Client selector options
// @Description  Status placeholders (BENCH, INHOUSE, ...) followed by every client
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  ClientOption
// @Router       /clients/options [get]
func (h *Handler) Options(c *fiber.Ctx) error {
	var rows []models.Client
	if err := h.db.WithContext(c.UserContext()).
		Select("id, name").
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	out := make([]ClientOption, 0, len(validation.StatusClients)+len(rows))
	for _, st := range validation.StatusClients {
		sel := validation.ClientSelection{Kind: validation.SelectionStatus, Value: st}
		out = append(out, ClientOption{Value: sel.String(), Label: statusLabel(st)})
	}
	for _, r := range rows {
		sel := validation.ClientSelection{Kind: validation.SelectionClient, Value: r.ID.String()}
		out = append(out, ClientOption{Value: sel.String(), Label: r.Name})
	}
	return c.JSON(out)
}

// statusLabel turns NOTICE_PERIOD into "Notice Period".
func statusLabel(s string) string {
	words := strings.Split(strings.ToLower(s), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
