package repository

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	models "github.com/chrisdamba/babysitter/internal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type DBConn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

type BookingRepository struct {
	db DBConn
}

func NewBookingRepository(db DBConn) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateBooking inserts the booking and all of its care recipients in one
// transaction. A clash on booking_number is reported as
// models.ErrDuplicateBookingNumber so the caller can pick a new number.
func (r *BookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	booking.CareRecipientCount = len(booking.CareRecipients)
	err = r.createBookingTx(ctx, tx, booking)
	if err != nil {
		return nil, err
	}

	for i := range booking.CareRecipients {
		recipient := &booking.CareRecipients[i]
		recipient.BookingID = booking.ID
		if err = r.createCareRecipientTx(ctx, tx, recipient); err != nil {
			return nil, err
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) GetBookingByID(ctx context.Context, id int64) (*models.Booking, error) {
	query := `
        SELECT id, booking_number, user_id, handled_by, name, email, phone, address, city, state, zip_code,
            start_datetime, end_datetime, message, care_recipient_count, status, created_at, updated_at
        FROM bookings
        WHERE id = $1
    `
	var booking models.Booking
	err := scanBooking(r.db.QueryRow(ctx, query, id), &booking)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrBookingNotFound
		}
		return nil, err
	}

	recipients, err := r.listCareRecipients(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	booking.CareRecipients = recipients[id]
	return &booking, nil
}

func (r *BookingRepository) GetBookingsPaginated(ctx context.Context, afterCursor string, limit int, status models.Status) ([]models.Booking, string, error) {
	query := `
        SELECT
            B.id, B.booking_number, B.user_id, B.handled_by, B.name, B.email, B.phone, B.address, B.city,
            B.state, B.zip_code, B.start_datetime, B.end_datetime, B.message, B.care_recipient_count,
            B.status, B.created_at, B.updated_at
        FROM bookings B
    `
	var args []interface{}
	var conditions []string

	if afterCursor != "" {
		afterTime, afterID, err := decodeCursor(afterCursor)
		if err != nil {
			return nil, "", err
		}
		conditions = append(conditions, fmt.Sprintf("(B.created_at, B.id) > ($%d, $%d)", len(args)+1, len(args)+2))
		args = append(args, afterTime, afterID)
	}

	if status != "" {
		conditions = append(conditions, fmt.Sprintf("B.status = $%d", len(args)+1))
		args = append(args, status)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY B.created_at, B.id"
	query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var bookings []models.Booking
	var ids []int64
	for rows.Next() {
		var booking models.Booking
		if err := scanBooking(rows, &booking); err != nil {
			return nil, "", err
		}
		bookings = append(bookings, booking)
		ids = append(ids, booking.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, "", err
	}

	if len(ids) > 0 {
		recipients, err := r.listCareRecipients(ctx, ids)
		if err != nil {
			return nil, "", err
		}
		for i := range bookings {
			bookings[i].CareRecipients = recipients[bookings[i].ID]
		}
	}

	var nextCursor string
	if len(bookings) == limit {
		last := bookings[len(bookings)-1]
		nextCursor = encodeCursor(last.CreatedAt, last.ID)
	}

	return bookings, nextCursor, nil
}

// UpdateBooking writes contact and schedule fields, provided the booking is
// still in the status the caller validated against.
func (r *BookingRepository) UpdateBooking(ctx context.Context, booking *models.Booking, expected models.Status) error {
	query := `
        UPDATE bookings
        SET name = $2, email = $3, phone = $4, address = $5, city = $6, state = $7, zip_code = $8,
            start_datetime = $9, end_datetime = $10, message = $11, updated_at = $12
        WHERE id = $1 AND status = $13
    `
	tag, err := r.db.Exec(ctx, query,
		booking.ID, booking.Name, booking.Email, booking.Phone, booking.Address, booking.City, booking.State,
		booking.ZipCode, booking.StartDatetime, booking.EndDatetime, booking.Message, booking.UpdatedAt, expected)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrStale(ctx, booking.ID)
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to models.Status, at time.Time) error {
	query := `UPDATE bookings SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`
	tag, err := r.db.Exec(ctx, query, id, from, to, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrStale(ctx, id)
	}
	return nil
}

func (r *BookingRepository) UpdateHandler(ctx context.Context, id int64, handlerID *int64, expected models.Status, at time.Time) error {
	query := `UPDATE bookings SET handled_by = $2, updated_at = $3 WHERE id = $1 AND status = $4`
	tag, err := r.db.Exec(ctx, query, id, handlerID, at, expected)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrStale(ctx, id)
	}
	return nil
}

// AddCareRecipient locks the parent booking, re-checks the recipient count
// against limit and inserts the recipient, all in one transaction.
func (r *BookingRepository) AddCareRecipient(ctx context.Context, recipient *models.CareRecipient, limit int) (*models.CareRecipient, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err = lockBookingTx(ctx, tx, recipient.BookingID); err != nil {
		return nil, err
	}

	var count int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM care_recipients WHERE booking_id = $1`, recipient.BookingID).Scan(&count)
	if err != nil {
		return nil, err
	}
	if count >= limit {
		return nil, models.ErrCapacityExceeded
	}

	if err = r.createCareRecipientTx(ctx, tx, recipient); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `UPDATE bookings SET care_recipient_count = $2, updated_at = $3 WHERE id = $1`,
		recipient.BookingID, count+1, recipient.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return recipient, nil
}

func (r *BookingRepository) GetCareRecipient(ctx context.Context, id int64) (*models.CareRecipient, error) {
	query := `
        SELECT id, booking_id, name, date_of_birth, remarks, created_at, updated_at
        FROM care_recipients
        WHERE id = $1
    `
	var recipient models.CareRecipient
	err := scanCareRecipient(r.db.QueryRow(ctx, query, id), &recipient)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCareRecipientNotFound
		}
		return nil, err
	}
	return &recipient, nil
}

func (r *BookingRepository) UpdateCareRecipient(ctx context.Context, recipient *models.CareRecipient) error {
	query := `
        UPDATE care_recipients
        SET name = $2, date_of_birth = $3, remarks = $4, updated_at = $5
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query, recipient.ID, recipient.Name, recipient.DateOfBirth, recipient.Remarks, recipient.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrCareRecipientNotFound
	}
	return nil
}

// RemoveCareRecipient deletes the recipient and decrements the parent's
// count under the parent's row lock.
func (r *BookingRepository) RemoveCareRecipient(ctx context.Context, id int64, at time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var bookingID int64
	err = tx.QueryRow(ctx, `SELECT booking_id FROM care_recipients WHERE id = $1`, id).Scan(&bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrCareRecipientNotFound
		}
		return err
	}

	if err = lockBookingTx(ctx, tx, bookingID); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM care_recipients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrCareRecipientNotFound
	}

	_, err = tx.Exec(ctx, `UPDATE bookings SET care_recipient_count = care_recipient_count - 1, updated_at = $2 WHERE id = $1`,
		bookingID, at)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListStatuses reads the booking_statuses reference rows.
func (r *BookingRepository) ListStatuses(ctx context.Context) ([]models.StatusInfo, error) {
	rows, err := r.db.Query(ctx, `SELECT name, label, color FROM booking_statuses ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []models.StatusInfo
	for rows.Next() {
		var info models.StatusInfo
		if err := rows.Scan(&info.Name, &info.Label, &info.Color); err != nil {
			return nil, err
		}
		statuses = append(statuses, info)
	}
	return statuses, rows.Err()
}

func (r *BookingRepository) createBookingTx(ctx context.Context, tx pgx.Tx, booking *models.Booking) error {
	query := `
        INSERT INTO bookings (booking_number, user_id, handled_by, name, email, phone, address, city, state,
            zip_code, start_datetime, end_datetime, message, care_recipient_count, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
        RETURNING id
    `
	err := tx.QueryRow(ctx, query,
		booking.BookingNumber, booking.RequesterID, booking.HandlerID, booking.Name, booking.Email, booking.Phone,
		booking.Address, booking.City, booking.State, booking.ZipCode, booking.StartDatetime, booking.EndDatetime,
		booking.Message, booking.CareRecipientCount, booking.Status, booking.CreatedAt, booking.UpdatedAt,
	).Scan(&booking.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateBookingNumber
		}
		return err
	}
	return nil
}

func (r *BookingRepository) createCareRecipientTx(ctx context.Context, tx pgx.Tx, recipient *models.CareRecipient) error {
	query := `
        INSERT INTO care_recipients (booking_id, name, date_of_birth, remarks, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	return tx.QueryRow(ctx, query,
		recipient.BookingID, recipient.Name, recipient.DateOfBirth, recipient.Remarks, recipient.CreatedAt, recipient.UpdatedAt,
	).Scan(&recipient.ID)
}

func (r *BookingRepository) listCareRecipients(ctx context.Context, bookingIDs []int64) (map[int64][]models.CareRecipient, error) {
	query := `
        SELECT id, booking_id, name, date_of_birth, remarks, created_at, updated_at
        FROM care_recipients
        WHERE booking_id = ANY($1)
        ORDER BY booking_id, id
    `
	rows, err := r.db.Query(ctx, query, bookingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipients := make(map[int64][]models.CareRecipient, len(bookingIDs))
	for rows.Next() {
		var recipient models.CareRecipient
		if err := scanCareRecipient(rows, &recipient); err != nil {
			return nil, err
		}
		recipients[recipient.BookingID] = append(recipients[recipient.BookingID], recipient)
	}
	return recipients, rows.Err()
}

func (r *BookingRepository) missingOrStale(ctx context.Context, id int64) error {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return models.ErrBookingNotFound
	}
	return models.ErrStaleBooking
}

func lockBookingTx(ctx context.Context, tx pgx.Tx, id int64) error {
	var locked int64
	err := tx.QueryRow(ctx, `SELECT id FROM bookings WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrBookingNotFound
	}
	return err
}

func scanBooking(row pgx.Row, booking *models.Booking) error {
	return row.Scan(
		&booking.ID, &booking.BookingNumber, &booking.RequesterID, &booking.HandlerID,
		&booking.Name, &booking.Email, &booking.Phone, &booking.Address, &booking.City, &booking.State, &booking.ZipCode,
		&booking.StartDatetime, &booking.EndDatetime, &booking.Message, &booking.CareRecipientCount,
		&booking.Status, &booking.CreatedAt, &booking.UpdatedAt,
	)
}

func scanCareRecipient(row pgx.Row, recipient *models.CareRecipient) error {
	return row.Scan(
		&recipient.ID, &recipient.BookingID, &recipient.Name, &recipient.DateOfBirth,
		&recipient.Remarks, &recipient.CreatedAt, &recipient.UpdatedAt,
	)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func encodeCursor(t time.Time, id int64) string {
	cursor := fmt.Sprintf("%s,%d", t.Format(time.RFC3339Nano), id)
	return base64.StdEncoding.EncodeToString([]byte(cursor))
}

func decodeCursor(encoded string) (time.Time, int64, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return time.Time{}, 0, err
	}
	parts := strings.Split(string(decodedBytes), ",")
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid cursor format")
	}
	t, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, 0, err
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, err
	}
	return t, id, nil
}
