package employees

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aldoetobex/hrms-backend/internal/auth"
	"github.com/aldoetobex/hrms-backend/internal/validationapi"
	"github.com/aldoetobex/hrms-backend/pkg/models"
	"github.com/aldoetobex/hrms-backend/pkg/uniqueness"
	"github.com/aldoetobex/hrms-backend/pkg/utils"
	"github.com/aldoetobex/hrms-backend/pkg/validation"
)

const MsgClientNotFound = "Selected client does not exist"

// ===== DTOs =====

type AllowanceDTO struct {
	AllowanceType string `json:"allowanceType" validate:"required,allowance_type"`
	Amount        string `json:"amount" validate:"required,amount"`
}

type SalaryDTO struct {
	Allowances []AllowanceDTO `json:"allowances" validate:"dive"`
}

type EmployeeRequest struct {
	OrganizationID         string `json:"organizationId" validate:"omitempty,uuid"`
	FirstName              string `json:"firstName" validate:"required,person_name"`
	LastName               string `json:"lastName" validate:"omitempty,person_name"`
	Email                  string `json:"email" validate:"required,email"`
	OfficialEmail          string `json:"officialEmail" validate:"omitempty,email"`
	ContactNumber          string `json:"contactNumber" validate:"required,mobile"`
	AlternateContactNumber string `json:"alternateContactNumber" validate:"omitempty,mobile"`
	DateOfBirth            string `json:"dateOfBirth" validate:"omitempty,isodate"`

	PanNumber      string `json:"panNumber" validate:"required,pan"`
	AadharNumber   string `json:"aadharNumber" validate:"omitempty,aadhaar"`
	PassportNumber string `json:"passportNumber" validate:"omitempty,passport"`
	UanNumber      string `json:"uanNumber" validate:"omitempty,uan"`
	EsiNumber      string `json:"esiNumber" validate:"omitempty,esi"`
	SsnNumber      string `json:"ssnNumber" validate:"omitempty,ssn"`
	PolicyNumber   string `json:"policyNumber" validate:"omitempty,policy_number"`

	AccountNumber     string `json:"accountNumber" validate:"omitempty,account_number"`
	AccountHolderName string `json:"accountHolderName" validate:"required_with=AccountNumber,omitempty,account_holder_name"`
	IfscCode          string `json:"ifscCode" validate:"required_with=AccountNumber,omitempty,ifsc"`

	ClientSelection          string `json:"clientSelection" validate:"omitempty,clientsel"`
	DateOfJoining            string `json:"dateOfJoining" validate:"omitempty,isodate"`
	DateOfOnboardingToClient string `json:"dateOfOnboardingToClient" validate:"omitempty,isodate"`
	DateOfClientOffboarding  string `json:"dateOfClientOffboarding" validate:"omitempty,isodate"`
	BillingStartDate         string `json:"billingStartDate" validate:"omitempty,isodate"`
	BillingStopDate          string `json:"billingStopDate" validate:"omitempty,isodate"`

	EmployeeSalaryDTO SalaryDTO `json:"employeeSalaryDTO"`
}

// normalize applies the input formatters field by field.
func (in *EmployeeRequest) normalize() {
	n := validation.Normalize
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = n("email", in.Email)
	in.OfficialEmail = n("officialEmail", in.OfficialEmail)
	in.ContactNumber = n("contactNumber", in.ContactNumber)
	in.AlternateContactNumber = n("alternateContactNumber", in.AlternateContactNumber)
	in.PanNumber = n("panNumber", in.PanNumber)
	in.AadharNumber = n("aadharNumber", in.AadharNumber)
	in.PassportNumber = n("passportNumber", in.PassportNumber)
	in.UanNumber = n("uanNumber", in.UanNumber)
	in.EsiNumber = n("esiNumber", in.EsiNumber)
	in.SsnNumber = strings.TrimSpace(in.SsnNumber)
	in.PolicyNumber = strings.TrimSpace(in.PolicyNumber)
	in.AccountNumber = n("accountNumber", in.AccountNumber)
	in.AccountHolderName = strings.TrimSpace(in.AccountHolderName)
	in.IfscCode = n("ifscCode", in.IfscCode)
	for i := range in.EmployeeSalaryDTO.Allowances {
		a := &in.EmployeeSalaryDTO.Allowances[i]
		a.AllowanceType = strings.TrimSpace(a.AllowanceType)
		a.Amount = strings.TrimSpace(a.Amount)
	}
}

func (in *EmployeeRequest) dates() validation.DateCluster {
	return validation.DateCluster{
		Joining:      in.DateOfJoining,
		Onboarding:   in.DateOfOnboardingToClient,
		Offboarding:  in.DateOfClientOffboarding,
		BillingStart: in.BillingStartDate,
		BillingStop:  in.BillingStopDate,
		Client:       validation.ParseClientSelection(in.ClientSelection),
	}
}

// uniqueTargets lists the values that must not be held by any other record.
func (in *EmployeeRequest) uniqueTargets(excludeID string) []uniqueness.Target {
	t := func(f uniqueness.Field, key, value string) uniqueness.Target {
		return uniqueness.Target{Field: f, Value: value, ErrorKey: key, ExcludeID: excludeID}
	}
	return []uniqueness.Target{
		t(uniqueness.Email, "email", in.Email),
		t(uniqueness.Email, "officialEmail", in.OfficialEmail),
		t(uniqueness.ContactNumber, "contactNumber", in.ContactNumber),
		t(uniqueness.PANNumber, "panNumber", in.PanNumber),
		t(uniqueness.AadharNumber, "aadharNumber", in.AadharNumber),
		t(uniqueness.PassportNumber, "passportNumber", in.PassportNumber),
		t(uniqueness.PFUANNumber, "uanNumber", in.UanNumber),
		t(uniqueness.ESINumber, "esiNumber", in.EsiNumber),
		t(uniqueness.SSNNumber, "ssnNumber", in.SsnNumber),
		t(uniqueness.PolicyNumber, "policyNumber", in.PolicyNumber),
		t(uniqueness.AccountNumber, "accountNumber", in.AccountNumber),
	}
}

type EmployeeListItem struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contactNumber"`
	ClientID      *string   `json:"clientId"`
	ClientStatus  string    `json:"clientStatus"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type PageEmployees struct {
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
	Total    int64              `json:"total"`
	Pages    int                `json:"pages"`
	Items    []EmployeeListItem `json:"items"`
}

type Handler struct {
	db     *gorm.DB
	fields *validation.FieldValidator
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, fields: validation.NewFieldValidator()}
}

// validate runs every submit-time rule and returns the collected errors.
// excludeID is the id of the employee being edited, "" on create.
func (h *Handler) validate(c *fiber.Ctx, in *EmployeeRequest, excludeID string) (*validation.Session, error) {
	s := validation.NewSession()

	// Cluster first: it owns its keys and recomputes them from scratch.
	validation.CheckDates(s, in.dates())

	bag, err := validation.Validate(in)
	if err != nil {
		return nil, err
	}
	s.Merge(bag)

	values, err := validation.ToMap(in)
	if err != nil {
		return nil, err
	}
	s.Sweep(h.fields, values)

	if sel := validation.ParseClientSelection(in.ClientSelection); sel.Kind == validation.SelectionClient {
		if _, bad := s.Error(validation.KeyClientSelection); !bad {
			if ok, err := h.clientExists(c, sel.Value); err != nil {
				return nil, err
			} else if !ok {
				s.SetError(validation.KeyClientSelection, MsgClientNotFound)
			}
		}
	}

	validationapi.EnforceUnique(c.UserContext(), h.db, s, in.uniqueTargets(excludeID))
	return s, nil
}

func (h *Handler) clientExists(c *fiber.Ctx, id string) (bool, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	var n int64
	err = h.db.WithContext(c.UserContext()).Model(&models.Client{}).Where("id = ?", cid).Count(&n).Error
	return n > 0, err
}

// Create Employee godoc
// @Summary      Create employee
// @Description  Validates formats, the date cluster and uniqueness, then stores the employee
// @Tags         employees
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  EmployeeRequest  true  "Employee payload"
// @Success      201  {object}  map[string]string  "id"
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Router       /employees [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in EmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	in.normalize()

	s, err := h.validate(c, &in, "")
	if err != nil {
		log.Errorw("employee validation failed", "error", err)
		return fiber.ErrInternalServerError
	}
	if s.HasErrors() {
		return validation.RespondSession(c, s)
	}

	var emp models.Employee
	if err := apply(&emp, &in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := h.db.WithContext(c.UserContext()).Create(&emp).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	actor, _ := uuid.Parse(auth.MustUserID(c))
	utils.LogEmployeeHistory(c.UserContext(), h.db, emp.ID, actor, "created", deployment(&emp))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": emp.ID})
}

// Update Employee godoc
// @Summary      Update employee
// @Description  Replaces the employee's details; uniqueness ignores the employee itself
// @Tags         employees
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string           true  "employee id (uuid)"
// @Param        payload  body  EmployeeRequest  true  "Employee payload"
// @Success      200  {object}  map[string]string  "id"
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /employees/{id} [put]
func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	var emp models.Employee
	if err := h.db.WithContext(c.UserContext()).First(&emp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}

	var in EmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	in.normalize()

	s, err := h.validate(c, &in, id.String())
	if err != nil {
		log.Errorw("employee validation failed", "id", id, "error", err)
		return fiber.ErrInternalServerError
	}
	if s.HasErrors() {
		return validation.RespondSession(c, s)
	}

	before := deployment(&emp)
	if err := apply(&emp, &in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	err = h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", emp.ID).Delete(&models.EmployeeAllowance{}).Error; err != nil {
			return err
		}
		for i := range emp.Allowances {
			emp.Allowances[i].EmployeeID = emp.ID
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&emp).Error
	})
	if err != nil {
		return fiber.ErrInternalServerError
	}

	actor, _ := uuid.Parse(auth.MustUserID(c))
	utils.LogEmployeeHistory(c.UserContext(), h.db, emp.ID, actor, "updated", "")
	if after := deployment(&emp); after != before {
		utils.LogEmployeeHistory(c.UserContext(), h.db, emp.ID, actor, "client_changed", before+" -> "+after)
	}

	return c.JSON(fiber.Map{"id": emp.ID})
}

// Get Employee godoc
// @Summary      Employee detail
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Param        id   path string true "employee id (uuid)"
// @Success      200  {object}  models.Employee
// @Failure      404  {object}  models.ErrorResponse
// @Router       /employees/{id} [get]
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	var emp models.Employee
	err = h.db.WithContext(c.UserContext()).
		Preload("Allowances").
		First(&emp, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.ErrInternalServerError
	}
	if emp.Allowances == nil {
		emp.Allowances = []models.EmployeeAllowance{}
	}
	return c.JSON(emp)
}

// History godoc
// @Summary      Employee audit history
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Param        id   path string true "employee id (uuid)"
// @Success      200  {array}  models.EmployeeHistory
// @Router       /employees/{id}/history [get]
func (h *Handler) History(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	rows := []models.EmployeeHistory{}
	if err := h.db.WithContext(c.UserContext()).
		Where("employee_id = ?", id).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(rows)
}

// List Employees godoc
// @Summary      List employees
// @Description  Paginated, optionally filtered by name/email (q) and client
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Param        q         query string false "search"
// @Param        clientId  query string false "client id"
// @Param        page      query int false "page"
// @Param        pageSize  query int false "pageSize"
// @Success      200  {object}  PageEmployees
// @Router       /employees [get]
func (h *Handler) List(c *fiber.Ctx) error {
	page, size := utils.ParsePage(c)

	q := h.db.WithContext(c.UserContext()).Model(&models.Employee{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}
	if cid := strings.TrimSpace(c.Query("clientId")); cid != "" {
		q = q.Where("client_id = ?", cid)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	var rows []models.Employee
	if err := q.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&rows).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	items := make([]EmployeeListItem, 0, len(rows))
	for _, e := range rows {
		item := EmployeeListItem{
			ID: e.ID, FirstName: e.FirstName, LastName: e.LastName,
			Email: e.Email, ContactNumber: e.ContactNumber,
			ClientStatus: e.ClientStatus, Status: string(e.Status), CreatedAt: e.CreatedAt,
		}
		if e.ClientID != nil {
			s := e.ClientID.String()
			item.ClientID = &s
		}
		items = append(items, item)
	}

	return c.JSON(PageEmployees{
		Page: page, PageSize: size, Total: total,
		Pages: utils.Pages(total, size),
		Items: items,
	})
}

/* ============================== helpers ============================== */

// apply copies a validated request onto emp.
func apply(emp *models.Employee, in *EmployeeRequest) error {
	emp.FirstName = in.FirstName
	emp.LastName = in.LastName
	emp.Email = in.Email
	emp.OfficialEmail = in.OfficialEmail
	emp.ContactNumber = in.ContactNumber
	emp.AlternateContactNumber = in.AlternateContactNumber
	emp.DateOfBirth = datePtr(in.DateOfBirth)

	emp.PanNumber = in.PanNumber
	emp.AadharNumber = in.AadharNumber
	emp.PassportNumber = in.PassportNumber
	emp.UanNumber = in.UanNumber
	emp.EsiNumber = in.EsiNumber
	emp.SsnNumber = in.SsnNumber
	emp.PolicyNumber = in.PolicyNumber

	emp.AccountNumber = in.AccountNumber
	emp.AccountHolderName = in.AccountHolderName
	emp.IfscCode = in.IfscCode

	emp.OrganizationID = nil
	if in.OrganizationID != "" {
		oid, err := uuid.Parse(in.OrganizationID)
		if err != nil {
			return errors.New("invalid organizationId")
		}
		emp.OrganizationID = &oid
	}

	emp.ClientID, emp.ClientStatus = nil, ""
	switch sel := validation.ParseClientSelection(in.ClientSelection); sel.Kind {
	case validation.SelectionClient:
		cid, err := uuid.Parse(sel.Value)
		if err != nil {
			return errors.New("invalid client id")
		}
		emp.ClientID = &cid
	case validation.SelectionStatus:
		emp.ClientStatus = sel.Value
	}

	emp.DateOfJoining = datePtr(in.DateOfJoining)
	emp.DateOfOnboardingToClient = datePtr(in.DateOfOnboardingToClient)
	emp.DateOfClientOffboarding = datePtr(in.DateOfClientOffboarding)
	emp.BillingStartDate = datePtr(in.BillingStartDate)
	emp.BillingStopDate = datePtr(in.BillingStopDate)

	emp.Allowances = make([]models.EmployeeAllowance, 0, len(in.EmployeeSalaryDTO.Allowances))
	for _, a := range in.EmployeeSalaryDTO.Allowances {
		paise, err := toPaise(a.Amount)
		if err != nil {
			return err
		}
		emp.Allowances = append(emp.Allowances, models.EmployeeAllowance{
			AllowanceType: a.AllowanceType,
			AmountPaise:   paise,
		})
	}
	return nil
}

func datePtr(s string) *time.Time {
	t, ok := validation.ParseDate(s)
	if !ok {
		return nil
	}
	return &t
}

// toPaise converts "1234.5" to 123450. Input must already match patterns.Amount.
func toPaise(s string) (int64, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(s), ".")
	rupees, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	paise, err := strconv.ParseInt(frac[:2], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return rupees*100 + paise, nil
}

// deployment describes where the employee is deployed, for audit rows.
func deployment(e *models.Employee) string {
	if e.ClientID != nil {
		return "client:" + e.ClientID.String()
	}
	if e.ClientStatus != "" {
		return "status:" + e.ClientStatus
	}
	return ""
}
