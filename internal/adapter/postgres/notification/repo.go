// Package notification implements the notification repository using PostgreSQL.
package notification

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres"
	"github.com/teamhub-dev/teamhub-backend/internal/domain"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const allColumns = "id, notification_type, title, message, recipient_id, sender_id, target_type, target_id, is_read, created_at"

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notification repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a notification and returns the persisted row.
func (r *Repo) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("notifications").
		Columns("id", "notification_type", "title", "message", "recipient_id",
			"sender_id", "target_type", "target_id", "is_read", "created_at").
		Values(n.ID, string(n.Type), n.Title, n.Message, n.RecipientID,
			n.SenderID, string(n.TargetType), n.TargetID, n.IsRead, n.CreatedAt).
		Suffix("RETURNING " + allColumns).
		ToSql()
	if err != nil {
		return domain.Notification{}, fmt.Errorf("build insert notification: %w", err)
	}

	var out domain.Notification
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Notification{}, postgres.MapError(err, "notification", n.ID)
	}
	return out, nil
}

// ListByRecipient returns the user's notifications, newest first, with
// limit/offset pagination.
func (r *Repo) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]domain.Notification, error) {
	return r.list(ctx, squirrel.Eq{"recipient_id": recipientID}, recipientID, limit, offset)
}

// ListUnreadByRecipient returns the user's unread notifications, newest
// first, with limit/offset pagination.
func (r *Repo) ListUnreadByRecipient(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]domain.Notification, error) {
	return r.list(ctx, squirrel.Eq{"recipient_id": recipientID, "is_read": false}, recipientID, limit, offset)
}

func (r *Repo) list(ctx context.Context, where squirrel.Eq, recipientID uuid.UUID, limit, offset int) ([]domain.Notification, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(allColumns).
		From("notifications").
		Where(where).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list notifications: %w", err)
	}

	var out []domain.Notification
	if err := pgxscan.Select(ctx, q, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list notifications of user %s: %w", recipientID, err)
	}
	return out, nil
}

// CountUnread returns the number of unread notifications for the user.
func (r *Repo) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select("COUNT(*)").
		From("notifications").
		Where(squirrel.Eq{"recipient_id": recipientID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count unread: %w", err)
	}

	var count int
	if err := q.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications of user %s: %w", recipientID, err)
	}
	return count, nil
}

// MarkRead marks one notification read. The recipient filter makes the
// operation a no-op (ErrNotFound) on someone else's notification.
func (r *Repo) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "recipient_id": recipientID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark read: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "notification", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// MarkAllRead marks every unread notification of the user read and returns
// the number of rows touched.
func (r *Repo) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"recipient_id": recipientID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build mark all read: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "notification", recipientID)
	}
	return tag.RowsAffected(), nil
}
