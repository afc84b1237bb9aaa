package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
	"github.com/m04kA/SMC-SalonAgenda/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonAgenda/pkg/psqlbuilder"
)

const pqForeignKeyViolation = "23503"

// Repository репозиторий справочников: мастера и услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var professionalColumns = []string{"id", "name", "phone", "email", "created_at"}

var serviceColumns = []string{"id", "name", "duration_minutes", "price", "description", "created_at"}

// CreateProfessional создает мастера
func (r *Repository) CreateProfessional(ctx context.Context, p *domain.Professional) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("professionals").
		Columns("name", "phone", "email").
		Values(p.Name, p.Phone, p.Email).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateProfessional - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateProfessional - execute insert: %w", ErrExecQuery, err)
	}

	return p, nil
}

// GetProfessionalByID получает мастера по ID
func (r *Repository) GetProfessionalByID(ctx context.Context, id int64) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessionalByID - build select query: %w", ErrBuildQuery, err)
	}

	p, err := scanProfessional(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessionalByID - scan professional: %w", ErrScanRow, err)
	}

	return p, nil
}

// GetFirstProfessional получает мастера с наименьшим ID.
// Используется как мастер по умолчанию для календаря.
func (r *Repository) GetFirstProfessional(ctx context.Context) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetFirstProfessional - build select query: %w", ErrBuildQuery, err)
	}

	p, err := scanProfessional(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetFirstProfessional - scan professional: %w", ErrScanRow, err)
	}

	return p, nil
}

// ListProfessionals получает всех мастеров по ID
func (r *Repository) ListProfessionals(ctx context.Context) ([]*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	professionals := make([]*domain.Professional, 0)
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListProfessionals - scan professional: %w", ErrScanRow, err)
		}
		professionals = append(professionals, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - rows error: %w", ErrScanRow, err)
	}

	return professionals, nil
}

// CreateService создает услугу
func (r *Repository) CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns("name", "duration_minutes", "price", "description").
		Values(s.Name, s.DurationMinutes, s.Price, s.Description).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateService - execute insert: %w", ErrExecQuery, err)
	}

	return s, nil
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %w", ErrBuildQuery, err)
	}

	s, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %w", ErrScanRow, err)
	}

	return s, nil
}

// ListServices получает все услуги, упорядоченные по названию
func (r *Repository) ListServices(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		OrderBy("name ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan service: %w", ErrScanRow, err)
		}
		services = append(services, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %w", ErrScanRow, err)
	}

	return services, nil
}

// DeleteService удаляет услугу.
// Бронирования ссылаются на услугу с ON DELETE RESTRICT, поэтому удаление
// используемой услуги возвращает ErrServiceInUse.
func (r *Repository) DeleteService(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteService - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return fmt.Errorf("%w: service_id=%d", ErrServiceInUse, id)
		}
		return fmt.Errorf("%w: DeleteService - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteService - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfessional(row rowScanner) (*domain.Professional, error) {
	var (
		p            domain.Professional
		phone, email sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &phone, &email, &p.CreatedAt); err != nil {
		return nil, err
	}
	if phone.Valid {
		p.Phone = &phone.String
	}
	if email.Valid {
		p.Email = &email.String
	}
	return &p, nil
}

func scanService(row rowScanner) (*domain.Service, error) {
	var (
		s     domain.Service
		price sql.NullFloat64
	)
	if err := row.Scan(&s.ID, &s.Name, &s.DurationMinutes, &price, &s.Description, &s.CreatedAt); err != nil {
		return nil, err
	}
	if price.Valid {
		s.Price = &price.Float64
	}
	return &s, nil
}
