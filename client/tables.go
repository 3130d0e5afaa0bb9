package client

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/PrayerJournal/models"
)

// RowCodec converts between the in-memory entity shape and its relational
// row. Collections are parameterized by codec plus table name, so adding a
// synced entity means writing two small functions, not another sync layer.
type RowCodec[T any, R any] struct {
	TableName string
	IDColumn  string
	// ConflictTarget overrides the upsert conflict columns when the primary
	// key is composite. Defaults to IDColumn.
	ConflictTarget string
	// OrderColumn sorts List results descending. Defaults to datetime_create.
	OrderColumn string
	ToRow       func(item T, userID int) (R, error)
	FromRow     func(row R) (T, error)
}

// SQLTable implements Table[T] over goqu. Every query is constrained by
// user_profile_id; the id column alone is never enough.
type SQLTable[T any, R any] struct {
	db    *goqu.Database
	codec RowCodec[T, R]
}

func NewSQLTable[T any, R any](db *goqu.Database, codec RowCodec[T, R]) *SQLTable[T, R] {
	return &SQLTable[T, R]{db: db, codec: codec}
}

func (t *SQLTable[T, R]) List(ctx context.Context, userID int) ([]T, error) {
	orderBy := t.codec.OrderColumn
	if orderBy == "" {
		orderBy = "datetime_create"
	}

	var rows []R
	err := t.db.From(t.codec.TableName).
		Where(goqu.C("user_profile_id").Eq(userID)).
		Order(goqu.C(orderBy).Desc()).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(rows))
	for _, row := range rows {
		item, err := t.codec.FromRow(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ErrRowNotOwned reports an upsert that conflicted with another user's
// row. The guarded update arm skips it, leaving the row untouched.
var ErrRowNotOwned = errors.New("row belongs to another user")

func (t *SQLTable[T, R]) Upsert(ctx context.Context, userID int, item T) error {
	row, err := t.codec.ToRow(item, userID)
	if err != nil {
		return err
	}

	target := t.codec.ConflictTarget
	if target == "" {
		target = t.codec.IDColumn
	}

	result, err := t.db.Insert(t.codec.TableName).
		Rows(row).
		OnConflict(goqu.DoUpdate(target, row).
			Where(goqu.I(t.codec.TableName + ".user_profile_id").Eq(userID))).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrRowNotOwned
	}
	return nil
}

func (t *SQLTable[T, R]) Delete(ctx context.Context, userID int, id string) error {
	_, err := t.db.Delete(t.codec.TableName).
		Where(goqu.C(t.codec.IDColumn).Eq(id), goqu.C("user_profile_id").Eq(userID)).
		Executor().
		ExecContext(ctx)
	return err
}

func prayerTable(db *goqu.Database) Table[models.Prayer] {
	return NewSQLTable(db, RowCodec[models.Prayer, models.PrayerRow]{
		TableName: "prayer",
		IDColumn:  "prayer_id",
		ToRow:     models.Prayer.ToRow,
		FromRow:   models.PrayerRow.ToPrayer,
	})
}

func planTable(db *goqu.Database) Table[models.Plan] {
	return NewSQLTable(db, RowCodec[models.Plan, models.PlanRow]{
		TableName: "prayer_plan",
		IDColumn:  "plan_id",
		ToRow:     models.Plan.ToRow,
		FromRow:   models.PlanRow.ToPlan,
	})
}

func categoryTable(db *goqu.Database) Table[models.Category] {
	return NewSQLTable(db, RowCodec[models.Category, models.CategoryRow]{
		TableName:      "prayer_category",
		IDColumn:       "category_value",
		ConflictTarget: "user_profile_id, category_value",
		ToRow:          models.Category.ToRow,
		FromRow:        models.CategoryRow.ToCategory,
	})
}

func communityMemberTable(db *goqu.Database) Table[models.CommunityMember] {
	return NewSQLTable(db, RowCodec[models.CommunityMember, models.CommunityMemberRow]{
		TableName:   "community_member",
		IDColumn:    "member_id",
		OrderColumn: "joined_at",
		ToRow:       models.CommunityMember.ToRow,
		FromRow:     models.CommunityMemberRow.ToMember,
	})
}

func communitySessionTable(db *goqu.Database) Table[models.CommunitySession] {
	return NewSQLTable(db, RowCodec[models.CommunitySession, models.CommunitySessionRow]{
		TableName:   "community_session",
		IDColumn:    "session_id",
		OrderColumn: "logged_at",
		ToRow:       models.CommunitySession.ToRow,
		FromRow:     models.CommunitySessionRow.ToSession,
	})
}

func intercessionTable(db *goqu.Database) Table[models.IntercessionRequest] {
	return NewSQLTable(db, RowCodec[models.IntercessionRequest, models.IntercessionRequestRow]{
		TableName:   "intercession_request",
		IDColumn:    "request_id",
		OrderColumn: "created_at",
		ToRow:       models.IntercessionRequest.ToRow,
		FromRow:     models.IntercessionRequestRow.ToRequest,
	})
}

// checkinRow is the relational shape of one daily check-in date.
type checkinRow struct {
	User_Profile_ID int       `json:"userProfileId"`
	Checkin_Date    string    `json:"checkinDate"`
	Datetime_Create time.Time `json:"datetimeCreate"`
}

func checkinTable(db *goqu.Database) Table[string] {
	return NewSQLTable(db, RowCodec[string, checkinRow]{
		TableName:      "daily_checkin",
		IDColumn:       "checkin_date",
		ConflictTarget: "user_profile_id, checkin_date",
		ToRow: func(date string, userID int) (checkinRow, error) {
			return checkinRow{User_Profile_ID: userID, Checkin_Date: date, Datetime_Create: time.Now()}, nil
		},
		FromRow: func(row checkinRow) (string, error) {
			return row.Checkin_Date, nil
		},
	})
}

// statsSink bumps the durable completed-plan counter. Plans come and go;
// the counter does not.
type statsSink struct {
	db *goqu.Database
}

func (s *statsSink) IncrementCompletedPlans(ctx context.Context, userID int) error {
	_, err := s.db.Insert("user_stats").
		Rows(models.UserStatsRow{
			User_Profile_ID: userID,
			Completed_Plans: 1,
			Datetime_Update: time.Now(),
		}).
		OnConflict(goqu.DoUpdate("user_profile_id", goqu.Record{
			"completed_plans": goqu.L("user_stats.completed_plans + 1"),
			"datetime_update": time.Now(),
		})).
		Executor().
		ExecContext(ctx)
	return err
}
