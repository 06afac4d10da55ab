package validationapi

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/aldoetobex/hrms-backend/pkg/uniqueness"
	"github.com/aldoetobex/hrms-backend/pkg/validation"
)

// EnforceUnique runs the submit-time uniqueness checks against the database.
// Targets that are empty or already carry an error in s are not looked up.
func EnforceUnique(ctx context.Context, db *gorm.DB, s *validation.Session, targets []uniqueness.Target) {
	run := make([]uniqueness.Target, 0, len(targets))
	for _, t := range targets {
		if strings.TrimSpace(t.Value) == "" {
			continue
		}
		if _, bad := s.Error(t.ErrorKey); bad {
			continue
		}
		run = append(run, t)
	}
	if len(run) == 0 {
		return
	}

	checker := uniqueness.NewChecker(NewStore(db), s)
	for i, out := range checker.CheckAll(ctx, run) {
		if out.Err != nil {
			log.Errorw("uniqueness check failed", "field", run[i].Field, "key", run[i].ErrorKey, "error", out.Err)
		}
	}
}
