package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
	"github.com/m04kA/SMC-SalonAgenda/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonAgenda/pkg/psqlbuilder"
)

const (
	pqExclusionViolation  = "23P01"
	pqForeignKeyViolation = "23503"

	professionalFKConstraint = "bookings_professional_id_fkey"
	serviceFKConstraint      = "bookings_service_id_fkey"
)

// likeEscaper экранирует метасимволы LIKE, чтобы поиск шёл по буквальной подстроке
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
//
// Нарушение ограничения bookings_no_overlap возвращается как ErrOverlap:
// это последний рубеж на случай, если проверка пересечений в транзакции
// была обойдена.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"professional_id",
			"service_id",
			"client_name",
			"client_phone",
			"start_time",
			"end_time",
		).
		Values(
			booking.ProfessionalID,
			booking.ServiceID,
			booking.ClientName,
			booking.ClientPhone,
			booking.StartTime,
			booking.EndTime,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pqExclusionViolation:
				return nil, fmt.Errorf("%w: professional_id=%d start=%s", ErrOverlap, booking.ProfessionalID, booking.StartTime.Format(time.RFC3339))
			case pqForeignKeyViolation:
				switch pqErr.Constraint {
				case professionalFKConstraint:
					return nil, fmt.Errorf("%w: %w: professional_id=%d", ErrReferenceNotFound, ErrProfessionalNotFound, booking.ProfessionalID)
				case serviceFKConstraint:
					return nil, fmt.Errorf("%w: %w: service_id=%d", ErrReferenceNotFound, ErrServiceNotFound, booking.ServiceID)
				}
				return nil, fmt.Errorf("%w: %s", ErrReferenceNotFound, pqErr.Constraint)
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе с названием услуги
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// LockProfessional берёт строковую блокировку мастера до конца транзакции.
// Блокировка выстраивает конкурирующие записи одного мастера в очередь, но не
// обновляет снимок: в SERIALIZABLE транзакция, дождавшаяся блокировки, читает
// снимок, взятый до фиксации предыдущего владельца, и может не увидеть его бронь.
// Такой конфликт завершается либо ошибкой сериализации (40001, повтор в
// txmanager.DoSerializable), либо нарушением bookings_no_overlap (ErrOverlap).
func (r *Repository) LockProfessional(ctx context.Context, professionalID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("professionals").
		Where(squirrel.Eq{"id": professionalID}).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: LockProfessional - build select query: %w", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProfessionalNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: LockProfessional - execute select: %w", ErrExecQuery, err)
	}

	return nil
}

// ListOverlapping возвращает интервалы бронирований мастера, пересекающиеся
// с полуоткрытым интервалом [from, to), упорядоченные по start_time
func (r *Repository) ListOverlapping(ctx context.Context, professionalID int64, from, to time.Time) ([]domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time", "end_time").
		From("bookings").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.Interval, 0)
	for rows.Next() {
		var interval domain.Interval
		if err := rows.Scan(&interval.Start, &interval.End); err != nil {
			return nil, fmt.Errorf("%w: ListOverlapping - scan interval: %w", ErrScanRow, err)
		}
		intervals = append(intervals, interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - rows error: %w", ErrScanRow, err)
	}

	return intervals, nil
}

// CountByDay считает бронирования мастера по календарным дням зоны tz
// в окне [from, to). Дни без бронирований в результат не попадают.
func (r *Repository) CountByDay(ctx context.Context, professionalID int64, from, to time.Time, tz string) ([]domain.DayBookingCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("to_char(start_time AT TIME ZONE ?, 'YYYY-MM-DD') AS day", tz)).
		Column("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to}).
		GroupBy("day").
		OrderBy("day ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountByDay - build select query: %w", ErrBuildQuery, err)
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByDay - load location %q: %w", ErrBuildQuery, tz, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByDay - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]domain.DayBookingCount, 0)
	for rows.Next() {
		var (
			day   string
			count int
		)
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByDay - scan row: %w", ErrScanRow, err)
		}
		date, err := time.ParseInLocation(domain.DateFormat, day, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: CountByDay - parse day %q: %w", ErrScanRow, day, err)
		}
		counts = append(counts, domain.DayBookingCount{Date: date, Count: count})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByDay - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

// List получает бронирования для административного списка.
// Поддерживает фильтрацию по:
// - мастеру и услуге
// - окну дат [From, To) по start_time
// - подстроке имени или телефона клиента (Search, без учёта регистра)
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectBookings()

	if filter.ProfessionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.professional_id": *filter.ProfessionalID})
	}
	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.service_id": *filter.ServiceID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"b.start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"b.start_time": *filter.To})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(*filter.Search) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Expr(`b.client_name ILIKE ? ESCAPE '\'`, pattern),
			squirrel.Expr(`b.client_phone ILIKE ? ESCAPE '\'`, pattern),
		})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultListLimit
	}

	query, args, err := selectBuilder.
		OrderBy("b.start_time ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan booking: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"b.id",
		"b.professional_id",
		"b.service_id",
		"b.client_name",
		"b.client_phone",
		"b.start_time",
		"b.end_time",
		"b.created_at",
		"s.name",
	).
		From("bookings b").
		Join("services s ON s.id = b.service_id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	err := row.Scan(
		&booking.ID,
		&booking.ProfessionalID,
		&booking.ServiceID,
		&booking.ClientName,
		&booking.ClientPhone,
		&booking.StartTime,
		&booking.EndTime,
		&booking.CreatedAt,
		&booking.ServiceName,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
