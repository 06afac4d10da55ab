package utils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aldoetobex/hrms-backend/pkg/models"
)

// LogEmployeeHistory inserts an audit record into employee_histories.
// Used to track creation, updates and deployment changes of an employee.
// Errors are ignored on purpose (best-effort logging).
func LogEmployeeHistory(
	ctx context.Context,
	db *gorm.DB,
	employeeID, actorID uuid.UUID,
	action string,
	detail string,
) {
	_ = db.WithContext(ctx).Create(&models.EmployeeHistory{
		EmployeeID: employeeID,
		ActorID:    actorID,
		Action:     action,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}).Error
}
