package storage

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"tanbih-bot/internal/stories/subs"
)

const subscriptionsTable = "subscriptions"

var subscriptionRowFields = fields(subscriptionRow{})

type subscriptionRow struct {
	ID          int64      `db:"id"`
	AppID       string     `db:"app_id"`
	OwnerUID    string     `db:"owner_uid"`
	PhoneNumber *string    `db:"phone_number"`
	Status      string     `db:"status"`
	StartDate   *time.Time `db:"start_date"`
	ExpiryDate  time.Time  `db:"expiry_date"`
	Price       *float64   `db:"price"`
	Notes       *string    `db:"notes"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (r subscriptionRow) ToModel() *subs.Subscription {
	return &subs.Subscription{
		ID:          r.ID,
		AppID:       r.AppID,
		OwnerUID:    r.OwnerUID,
		PhoneNumber: r.PhoneNumber,
		Status:      subs.Status(r.Status),
		StartDate:   r.StartDate,
		ExpiryDate:  r.ExpiryDate,
		Price:       r.Price,
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (s *storageImpl) ListSubscriptions(ctx context.Context, criteria subs.ListCriteria) ([]*subs.Subscription, error) {
	query := s.stmtBuilder().
		Select(subscriptionRowFields).
		From(subscriptionsTable).
		Where(sq.Eq{"app_id": criteria.AppID}).
		Where(sq.Eq{"owner_uid": criteria.OwnerUID})

	if len(criteria.Statuses) > 0 {
		query = query.Where(sq.Eq{"status": criteria.Statuses})
	}
	// SQLite compares timestamp text lexically, so bounds and stored values
	// must carry the same offset. Everything is normalized to UTC here; a
	// bound in another location would sort against stored rows incorrectly.
	if criteria.ExpiryFrom != nil {
		query = query.Where(sq.GtOrEq{"expiry_date": criteria.ExpiryFrom.UTC()})
	}
	if criteria.ExpiryTo != nil {
		query = query.Where(sq.LtOrEq{"expiry_date": criteria.ExpiryTo.UTC()})
	}
	if criteria.Limit > 0 {
		query = query.Limit(uint64(criteria.Limit))
	}

	query = query.OrderBy("expiry_date ASC")

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var rows []subscriptionRow
	err = s.db.SelectContext(ctx, &rows, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	var subscriptions []*subs.Subscription
	for _, row := range rows {
		subscriptions = append(subscriptions, row.ToModel())
	}

	return subscriptions, nil
}

// CreateSubscription exists for the CSV import tool; the relay itself never
// writes to the store.
func (s *storageImpl) CreateSubscription(ctx context.Context, subscription subs.Subscription) (int64, error) {
	now := s.now()

	var startDate *time.Time
	if subscription.StartDate != nil {
		t := subscription.StartDate.UTC()
		startDate = &t
	}

	params := map[string]interface{}{
		"app_id":       subscription.AppID,
		"owner_uid":    subscription.OwnerUID,
		"phone_number": subscription.PhoneNumber,
		"status":       string(subscription.Status),
		"start_date":   startDate,
		"expiry_date":  subscription.ExpiryDate.UTC(),
		"price":        subscription.Price,
		"notes":        subscription.Notes,
		"created_at":   now,
		"updated_at":   now,
	}

	q, args, err := s.stmtBuilder().
		Insert(subscriptionsTable).
		SetMap(params).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sql query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("db.ExecContext: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("result.LastInsertId: %w", err)
	}

	return id, nil
}
