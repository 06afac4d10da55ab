package validationapi

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/aldoetobex/hrms-backend/pkg/models"
	"github.com/aldoetobex/hrms-backend/pkg/sanitize"
	"github.com/aldoetobex/hrms-backend/pkg/uniqueness"
	"github.com/aldoetobex/hrms-backend/pkg/validation"
)

// ===== DTOs =====

type FieldRequest struct {
	Field    string         `json:"field"`
	Value    any            `json:"value"`
	Snapshot map[string]any `json:"snapshot"`
}

type FieldResponse struct {
	Field      string `json:"field"`
	Kind       string `json:"kind"`
	Normalized string `json:"normalized"`
	Error      string `json:"error"`
	Valid      bool   `json:"valid"`
}

type DatesRequest struct {
	validation.DateCluster
	ClientSelection string `json:"clientSelection"`
}

type ErrorsResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

type FormRequest struct {
	Values map[string]any `json:"values"`
}

type Handler struct {
	finder  uniqueness.Client
	fields  *validation.FieldValidator
	timeout time.Duration
}

func NewHandler(finder uniqueness.Client, timeout time.Duration) *Handler {
	fv := validation.NewFieldValidator()
	fv.Strict = true
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Handler{finder: finder, fields: fv, timeout: timeout}
}

// Register mounts the validation routes on r.
func (h *Handler) Register(r fiber.Router) {
	r.Post("/field", h.Field)
	r.Post("/dates", h.Dates)
	r.Post("/form", h.Form)
	r.Get("/unique", h.Unique)
	r.Get("/unique/edit", h.UniqueEdit)
}

// Validate Field godoc
// @Summary      Validate one field
// @Description  Normalizes and validates a single form field against the rest of the form
// @Tags         validation
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  FieldRequest  true  "field, value and form snapshot"
// @Success      200  {object}  FieldResponse
// @Failure      400  {object}  models.ErrorResponse  "unknown field"
// @Router       /validation/field [post]
func (h *Handler) Field(c *fiber.Ctx) error {
	var in FieldRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	in.Field = strings.TrimSpace(in.Field)
	if in.Field == "" {
		return fiber.NewError(fiber.StatusBadRequest, "field is required")
	}

	value := in.Value
	if s, ok := value.(string); ok {
		value = validation.Normalize(in.Field, s)
	}

	msg, err := h.fields.Check(in.Field, value, validation.MapSnapshot(in.Snapshot))
	if errors.Is(err, validation.ErrUnknownField) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown field: "+in.Field)
	}

	norm := ""
	if s, ok := value.(string); ok {
		norm = s
	}
	return c.JSON(FieldResponse{
		Field:      in.Field,
		Kind:       validation.Resolve(in.Field).String(),
		Normalized: norm,
		Error:      msg,
		Valid:      msg == "",
	})
}

// Check Dates godoc
// @Summary      Check the employment date cluster
// @Description  Recomputes joining, onboarding, offboarding and billing date errors
// @Tags         validation
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  DatesRequest  true  "dates and client selection"
// @Success      200  {object}  ErrorsResponse
// @Router       /validation/dates [post]
func (h *Handler) Dates(c *fiber.Ctx) error {
	var in DatesRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	cluster := in.DateCluster
	cluster.Client = validation.ParseClientSelection(in.ClientSelection)

	errs := validation.DateErrors(cluster)
	return c.JSON(ErrorsResponse{Valid: len(errs) == 0, Errors: errs})
}

// Validate Form godoc
// @Summary      Validate a whole form
// @Description  Runs the field rules on every leaf value and the date cluster checks
// @Tags         validation
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  FormRequest  true  "form values"
// @Success      200  {object}  ErrorsResponse
// @Router       /validation/form [post]
func (h *Handler) Form(c *fiber.Ctx) error {
	var in FormRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	validation.NormalizeValues(in.Values)
	snap := validation.MapSnapshot(in.Values)
	s := validation.NewSession()

	validation.CheckDates(s, validation.DateClusterFromSnapshot(snap))
	// Format errors win over cluster errors on the same key.
	s.Sweep(h.fields, in.Values)

	errs := s.Errors()
	return c.JSON(ErrorsResponse{Valid: len(errs) == 0, Errors: errs})
}

// Unique godoc
// @Summary      Check uniqueness (create)
// @Description  Reports whether a value is already held by any record
// @Tags         validation
// @Security     BearerAuth
// @Produce      json
// @Param        field  query string true "EMAIL, PAN_NUMBER, GST, ..."
// @Param        value  query string true "value to check"
// @Success      200  {object}  models.Envelope  "response: true when the value exists"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /validation/unique [get]
func (h *Handler) Unique(c *fiber.Ctx) error {
	return h.unique(c, uniqueness.ModeCreate)
}

// Unique Edit godoc
// @Summary      Check uniqueness (edit)
// @Description  Like /validation/unique but ignores the record being edited
// @Tags         validation
// @Security     BearerAuth
// @Produce      json
// @Param        field        query string true  "EMAIL, PAN_NUMBER, GST, ..."
// @Param        value        query string true  "value to check"
// @Param        excludeId    query string true  "id of the record being edited"
// @Param        fieldColumn  query string false "restrict to one column"
// @Success      200  {object}  models.Envelope  "response: true when the value exists"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /validation/unique/edit [get]
func (h *Handler) UniqueEdit(c *fiber.Ctx) error {
	return h.unique(c, uniqueness.ModeEdit)
}

func (h *Handler) unique(c *fiber.Ctx, mode uniqueness.Mode) error {
	field, err := uniqueness.ParseField(c.Query("field"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid field")
	}
	value := strings.TrimSpace(c.Query("value"))
	if value == "" {
		return fiber.NewError(fiber.StatusBadRequest, "value is required")
	}

	req := uniqueness.Request{Field: field, Value: value, Mode: mode}
	if mode == uniqueness.ModeEdit {
		req.ExcludeID = strings.TrimSpace(c.Query("excludeId"))
		req.FieldColumn = strings.TrimSpace(c.Query("fieldColumn"))
		if req.ExcludeID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "excludeId is required")
		}
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	res, err := uniqueness.Lookup(ctx, h.finder, req)
	switch {
	case errors.Is(err, ErrColumnNotAllowed), errors.Is(err, ErrInvalidExcludeID):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case err != nil:
		log.Errorw("uniqueness lookup failed", "field", field, "value", sanitize.Mask(value), "error", err)
		return fiber.ErrInternalServerError
	}

	log.Debugw("uniqueness lookup", "field", field, "mode", mode, "value", sanitize.Mask(value), "exists", res.Exists)
	return c.JSON(models.NewEnvelope(res.Message, res.Exists))
}
