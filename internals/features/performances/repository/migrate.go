package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "performance_backend/internals/features/performances/model"
)

// Migrate creates the table on a fresh database, or evolves an existing one:
// the approval columns are added when absent, ID gets a unique index, and
// legacy approval labels are rewritten to canonical values. Existing rows are
// otherwise left alone.
// No AutoMigrate: imported tables must keep their column types.
func (r *PerformanceRepository) Migrate(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	m := db.Migrator()

	if !m.HasTable(&model.PerformanceModel{}) {
		if err := m.CreateTable(&model.PerformanceModel{}); err != nil {
			return fmt.Errorf("create performances table: %w", err)
		}
		log.Println("[MIGRATE] performances table created")
		return nil
	}

	for _, col := range []string{model.ColApprovalStatus, model.ColRejectionReason} {
		if m.HasColumn(&model.PerformanceModel{}, col) {
			continue
		}
		if err := m.AddColumn(&model.PerformanceModel{}, col); err != nil {
			return fmt.Errorf("add column %s: %w", col, err)
		}
		log.Printf("[MIGRATE] column %s added", col)
	}

	if err := ensureUniqueID(db); err != nil {
		return err
	}
	if err := normalizeApprovalLabels(db); err != nil {
		return err
	}
	return r.resetApprovalDefault(db)
}

const uniqueIDIndex = "idx_performances_id_unique"

// ErrDuplicateIDsInTable is returned when an existing table already holds
// repeated ids, so the unique index can't be created.
var ErrDuplicateIDsInTable = errors.New("performances table contains duplicate ids")

// ensureUniqueID adds a unique index on ID to tables created without a
// primary key (spreadsheet imports).
func ensureUniqueID(db *gorm.DB) error {
	var dups []string
	err := db.Model(&model.PerformanceModel{}).
		Where(clause.Neq{Column: clause.Column{Name: model.ColID}, Value: nil}).
		Group(model.ColID).
		Having("COUNT(*) > 1").
		Limit(10).
		Pluck(model.ColID, &dups).Error
	if err != nil {
		return fmt.Errorf("check duplicate ids: %w", err)
	}
	if len(dups) > 0 {
		return fmt.Errorf("%w: %s (resolve them before migrating)", ErrDuplicateIDsInTable, strings.Join(dups, ", "))
	}

	err = db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS ? ON ? (?)",
		clause.Column{Name: uniqueIDIndex},
		clause.Table{Name: model.PerformanceModel{}.TableName()},
		clause.Column{Name: model.ColID},
	).Error
	if err != nil {
		return fmt.Errorf("create unique index on %s: %w", model.ColID, err)
	}
	return nil
}

// resetApprovalDefault replaces a legacy label default where the engine allows it.
func (r *PerformanceRepository) resetApprovalDefault(db *gorm.DB) error {
	expr, ok := r.backend.ColumnDefault(model.PerformanceModel{}.TableName(), model.ColApprovalStatus, string(model.ApprovalUnreviewed))
	if !ok {
		return nil
	}
	if err := db.Exec(expr.SQL, expr.Vars...).Error; err != nil {
		return fmt.Errorf("reset %s default: %w", model.ColApprovalStatus, err)
	}
	return nil
}

func normalizeApprovalLabels(db *gorm.DB) error {
	approval := clause.Column{Name: model.ColApprovalStatus}
	steps := []struct {
		where   clause.Expression
		changes Changes
	}{
		{
			where:   clause.Eq{Column: approval, Value: model.LegacyApprovedLabel},
			changes: Changes{model.ColApprovalStatus: string(model.ApprovalApproved), model.ColRejectionReason: nil},
		},
		{
			where:   clause.Eq{Column: approval, Value: model.LegacyRejectedLabel},
			changes: Changes{model.ColApprovalStatus: string(model.ApprovalRejected)},
		},
		{
			where: clause.Or(
				clause.Eq{Column: approval, Value: model.LegacyUnreviewedLabel},
				clause.Eq{Column: approval, Value: nil},
				clause.Eq{Column: approval, Value: ""},
			),
			changes: Changes{model.ColApprovalStatus: string(model.ApprovalUnreviewed), model.ColRejectionReason: nil},
		},
	}

	for _, s := range steps {
		res := db.Model(&model.PerformanceModel{}).Where(s.where).Updates(map[string]any(s.changes))
		if res.Error != nil {
			return fmt.Errorf("normalize approval labels: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			log.Printf("[MIGRATE] %d rows normalized to %v", res.RowsAffected, s.changes[model.ColApprovalStatus])
		}
	}
	return nil
}
