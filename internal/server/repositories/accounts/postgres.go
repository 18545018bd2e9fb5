package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/usermgmt/internal/common"
	"github.com/dmitrijs2005/usermgmt/internal/dbx"
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
)

const (
	uniqueViolationCode      = "23505"
	integrityViolationPrefix = "23"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// hashCost is a test seam: bcrypt.MinCost keeps repository tests fast.
var hashCost = bcrypt.DefaultCost

func (r *PostgresRepository) CreateAccount(ctx context.Context, username, email, password string) (models.Outcome, error) {

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return models.Outcome{}, fmt.Errorf("hashing password: %w", err)
	}

	query :=
		`INSERT INTO accounts (username, email, password_hash)
         VALUES ($1, $2, $3)
		 RETURNING id
		 `

	var id string
	err = r.db.QueryRowContext(ctx, query, username, email, string(hash)).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return models.OutcomeFailed(duplicateReason(pgErr.ConstraintName)), nil
		}
		return models.Outcome{}, fmt.Errorf("db error: %w", err)
	}

	return models.OutcomeOK(), nil
}

// duplicateReason maps a unique-constraint name to a reason naming the
// duplicated field.
func duplicateReason(constraint string) string {
	switch {
	case strings.Contains(constraint, "email"):
		return "email already exists"
	case strings.Contains(constraint, "username"):
		return "username already exists"
	default:
		return "account already exists"
	}
}

func (r *PostgresRepository) VerifyPassword(ctx context.Context, username, password string) (*models.Account, error) {

	account, err := r.getByUserName(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("comparing password hash: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) getByUserName(ctx context.Context, username string) (*models.Account, error) {
	query :=
		`SELECT id, username, email, password_hash, avatar_key, avatar_uploaded_at, created_at FROM accounts
		 WHERE username = $1
		 `

	return r.scanAccount(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	query :=
		`SELECT id, username, email, password_hash, avatar_key, avatar_uploaded_at, created_at FROM accounts
		 WHERE id = $1
		 `

	return r.scanAccount(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanAccount(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	err := row.Scan(&account.ID, &account.UserName, &account.Email,
		&account.PasswordHash, &account.AvatarKey, &account.AvatarUploadedAt, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) Save(ctx context.Context, account *models.Account) (models.Outcome, error) {

	query :=
		`UPDATE accounts SET avatar_key = $2, avatar_uploaded_at = $3
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, account.ID, account.AvatarKey, account.AvatarUploadedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, integrityViolationPrefix) {
			return models.OutcomeFailed(pgErr.Message), nil
		}
		return models.Outcome{}, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Outcome{}, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return models.OutcomeFailed("account does not exist"), nil
	}

	return models.OutcomeOK(), nil
}
