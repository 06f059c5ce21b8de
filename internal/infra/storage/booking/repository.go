package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m1shk4/AquaWash-BookingService/internal/domain"
	"github.com/m1shk4/AquaWash-BookingService/pkg/dbmetrics"
	"github.com/m1shk4/AquaWash-BookingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL: нарушение уникального ограничения
const pgCodeUniqueViolation = "23505"

// Имя частичного уникального индекса активных бронирований
// (center_id, scheduled_date, scheduled_time, bay_number), см. миграции
const constraintActiveBay = "uniq_active_bay"

var bookingColumns = []string{
	"id",
	"booking_number",
	"center_id",
	"customer_id",
	"vehicle_id",
	"scheduled_date",
	"scheduled_time",
	"bay_number",
	"estimated_duration",
	"total_amount",
	"final_amount",
	"status",
	"payment_status",
	"notes",
	"cancel_reason",
	"actual_start_time",
	"actual_end_time",
	"recurrence",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями, их позициями
// и назначениями сотрудников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе с позициями услуг.
// Вызывается только внутри транзакции: вставка бронирования и позиций
// должна быть атомарной, а конфликт по уникальному индексу активных
// бронирований (center, date, time, bay) транслируется в ErrBayTaken.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_number",
			"center_id",
			"customer_id",
			"vehicle_id",
			"scheduled_date",
			"scheduled_time",
			"bay_number",
			"estimated_duration",
			"total_amount",
			"final_amount",
			"status",
			"payment_status",
			"notes",
			"recurrence",
		).
		Values(
			b.BookingNumber,
			b.CenterID,
			b.CustomerID,
			b.VehicleID,
			b.ScheduledDate,
			b.ScheduledTime,
			b.BayNumber,
			b.EstimatedDuration,
			b.TotalAmount,
			b.FinalAmount,
			b.Status,
			b.PaymentStatus,
			b.Notes,
			b.Recurrence,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if constraint, ok := uniqueViolationConstraint(err); ok {
			if constraint == constraintActiveBay {
				return nil, fmt.Errorf("%w: %v", ErrBayTaken, err)
			}
			return nil, fmt.Errorf("%w: %v", ErrNumberCollision, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	for i := range b.Items {
		b.Items[i].BookingID = b.ID
		if err := r.createItem(ctx, executor, &b.Items[i]); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func (r *Repository) createItem(ctx context.Context, executor DBExecutor, item *domain.BookingItem) error {
	query, args, err := psqlbuilder.Insert("booking_items").
		Columns(
			"booking_id",
			"service_id",
			"service_name",
			"price",
			"final_price",
			"duration_minutes",
		).
		Values(
			item.BookingID,
			item.ServiceID,
			item.ServiceName,
			item.Price,
			item.FinalPrice,
			item.DurationMinutes,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: createItem - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return fmt.Errorf("%w: createItem - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID вместе с позициями и назначенными сотрудниками
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование по ID с блокировкой строки.
// Используется в транзакциях смены статуса, чтобы side effects
// (лояльность, счетчики) выполнялись ровно один раз.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: getByID - scan booking: %v", ErrScanRow, err)
	}

	if err := r.loadItems(ctx, executor, b); err != nil {
		return nil, err
	}
	staffIDs, err := r.GetStaffIDs(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.StaffIDs = staffIDs

	return b, nil
}

// GetActiveByCenterAndDate получает активные бронирования центра на дату.
// Внутри транзакции добавляет FOR UPDATE: usecase создания бронирования
// блокирует весь день центра на время подбора поста.
func (r *Repository) GetActiveByCenterAndDate(ctx context.Context, centerID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"center_id": centerID}).
		Where(squirrel.Eq{"scheduled_date": date}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		OrderBy("scheduled_time ASC, bay_number ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCenterAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCenterAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveByVehicleAndDate получает активные бронирования автомобиля на дату
// по всем центрам сети. Используется для запрета двойного бронирования машины.
func (r *Repository) GetActiveByVehicleAndDate(ctx context.Context, vehicleID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"vehicle_id": vehicleID}).
		Where(squirrel.Eq{"scheduled_date": date}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		OrderBy("scheduled_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByVehicleAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByVehicleAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByCustomer получает список бронирований клиента.
// Опционально фильтрует по статусу.
func (r *Repository) GetByCustomer(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("scheduled_date DESC, scheduled_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, err
	}

	for _, b := range bookings {
		if err := r.loadItems(ctx, executor, b); err != nil {
			return nil, err
		}
	}

	return bookings, nil
}

// UpdateStatusGuarded переводит бронирование из статуса from в статус to.
// Условие WHERE status = from делает перевод идемпотентным под конкурентными
// запросами: проигравший обновление получает ErrStatusConflict.
func (r *Repository) UpdateStatusGuarded(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()"))

	return r.execGuarded(ctx, "UpdateStatusGuarded", updateBuilder, id, from)
}

// MarkInProgress переводит бронирование в работу и фиксирует фактическое
// время начала (если оно еще не было установлено)
func (r *Repository) MarkInProgress(ctx context.Context, id int64, from domain.BookingStatus, startedAt time.Time) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", domain.StatusInProgress).
		Set("actual_start_time", squirrel.Expr("COALESCE(actual_start_time, ?)", startedAt)).
		Set("updated_at", squirrel.Expr("NOW()"))

	return r.execGuarded(ctx, "MarkInProgress", updateBuilder, id, from)
}

// MarkCompleted завершает бронирование и фиксирует фактическое время окончания
func (r *Repository) MarkCompleted(ctx context.Context, id int64, from domain.BookingStatus, finishedAt time.Time) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("actual_end_time", finishedAt).
		Set("updated_at", squirrel.Expr("NOW()"))

	return r.execGuarded(ctx, "MarkCompleted", updateBuilder, id, from)
}

// MarkCancelled переводит бронирование в cancelled или no_show с причиной
func (r *Repository) MarkCancelled(ctx context.Context, id int64, from, to domain.BookingStatus, reason *string) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("cancel_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()"))

	return r.execGuarded(ctx, "MarkCancelled", updateBuilder, id, from)
}

func (r *Repository) execGuarded(ctx context.Context, op string, updateBuilder squirrel.UpdateBuilder, id int64, from domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := updateBuilder.
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// GetStaffIDs получает идентификаторы сотрудников, назначенных на бронирование
func (r *Repository) GetStaffIDs(ctx context.Context, bookingID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("staff_id").
		From("booking_staff").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("staff_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staffIDs := make([]int64, 0)
	for rows.Next() {
		var staffID int64
		if err := rows.Scan(&staffID); err != nil {
			return nil, fmt.Errorf("%w: GetStaffIDs - scan staff_id: %v", ErrScanRow, err)
		}
		staffIDs = append(staffIDs, staffID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStaffIDs - rows error: %v", ErrScanRow, err)
	}

	return staffIDs, nil
}

// AddStaff назначает сотрудников на бронирование
func (r *Repository) AddStaff(ctx context.Context, bookingID int64, staffIDs []int64) error {
	if len(staffIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("booking_staff").
		Columns("booking_id", "staff_id")
	for _, staffID := range staffIDs {
		insertBuilder = insertBuilder.Values(bookingID, staffID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddStaff - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddStaff - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ReplaceStaff заменяет набор назначенных сотрудников целиком
func (r *Repository) ReplaceStaff(ctx context.Context, bookingID int64, staffIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_staff").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceStaff - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceStaff - execute delete: %v", ErrExecQuery, err)
	}

	return r.AddStaff(ctx, bookingID, staffIDs)
}

func (r *Repository) loadItems(ctx context.Context, executor DBExecutor, b *domain.Booking) error {
	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"service_id",
		"service_name",
		"price",
		"final_price",
		"duration_minutes",
	).
		From("booking_items").
		Where(squirrel.Eq{"booking_id": b.ID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.BookingItem, 0)
	for rows.Next() {
		var item domain.BookingItem
		err := rows.Scan(
			&item.ID,
			&item.BookingID,
			&item.ServiceID,
			&item.ServiceName,
			&item.Price,
			&item.FinalPrice,
			&item.DurationMinutes,
		)
		if err != nil {
			return fmt.Errorf("%w: loadItems - scan item: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadItems - rows error: %v", ErrScanRow, err)
	}

	b.Items = items
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBookingInto(scanner rowScanner, b *domain.Booking) error {
	var createdAt, updatedAt sql.NullTime

	err := scanner.Scan(
		&b.ID,
		&b.BookingNumber,
		&b.CenterID,
		&b.CustomerID,
		&b.VehicleID,
		&b.ScheduledDate,
		&b.ScheduledTime,
		&b.BayNumber,
		&b.EstimatedDuration,
		&b.TotalAmount,
		&b.FinalAmount,
		&b.Status,
		&b.PaymentStatus,
		&b.Notes,
		&b.CancelReason,
		&b.ActualStartTime,
		&b.ActualEndTime,
		&b.Recurrence,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return nil
}

func scanBooking(row *sql.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := scanBookingInto(row, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := scanBookingInto(rows, &b); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// uniqueViolationConstraint возвращает имя нарушенного уникального
// ограничения, если err является нарушением уникальности
func uniqueViolationConstraint(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgCodeUniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}
