package sqlite

import (
	"context"
	"time"

	"github.com/renewtech/inventory-auth/internal/auth/domain"
)

type tokensRepo struct {
	db dbtx
}

const tokenColumns = `id, user_id, token_hash, issued_at, expires_at,
	blacklisted, created_at, updated_at`

func scanToken(row interface{ Scan(...any) error }) (domain.AccessToken, error) {
	var (
		t           domain.AccessToken
		blacklisted int
	)

	err := row.Scan(
		&t.ID, &t.UserID, &t.TokenHash, &t.IssuedAt, &t.ExpiresAt,
		&blacklisted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.AccessToken{}, err
	}

	t.Blacklisted = blacklisted != 0
	return t, nil
}

func (r *tokensRepo) CreateToken(ctx context.Context, t domain.AccessToken) error {
	blacklisted := 0
	if t.Blacklisted {
		blacklisted = 1
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tokens (
			id, user_id, token_hash, issued_at, expires_at,
			blacklisted, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.TokenHash, t.IssuedAt, t.ExpiresAt,
		blacklisted, t.CreatedAt, t.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *tokensRepo) GetTokenByHash(ctx context.Context, hash string) (domain.AccessToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tokenColumns+` FROM tokens WHERE token_hash = ?`, hash)
	t, err := scanToken(row)
	if err != nil {
		return domain.AccessToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tokensRepo) GetTokenByID(ctx context.Context, id string) (domain.AccessToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tokenColumns+` FROM tokens WHERE id = ?`, id)
	t, err := scanToken(row)
	if err != nil {
		return domain.AccessToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tokensRepo) ListTokens(ctx context.Context) ([]domain.AccessToken, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tokenColumns+` FROM tokens ORDER BY issued_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []domain.AccessToken
	for rows.Next() {
		t, err := scanToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (r *tokensRepo) BlacklistToken(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tokens SET blacklisted = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *tokensRepo) BlacklistUserTokens(ctx context.Context, userID string) error {
	// No row requirement: a user with no live tokens is fine.
	_, err := r.db.ExecContext(ctx,
		`UPDATE tokens SET blacklisted = 1, updated_at = ? WHERE user_id = ? AND blacklisted = 0`,
		time.Now().UTC(), userID,
	)
	return err
}

func (r *tokensRepo) DeleteExpiredTokens(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tokens WHERE expires_at < ?`, before,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
