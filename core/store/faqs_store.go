package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hospital-portal/core/utils"
)

type FAQ struct {
	ID        int64     `json:"id"`
	Category  string    `json:"category"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FAQFilter struct {
	Search   string
	Category string
}

type FAQsStore interface {
	CreateFAQ(ctx context.Context, faq *FAQ) (*FAQ, error)
	UpdateFAQ(ctx context.Context, faq *FAQ) (*FAQ, error)
	DeleteFAQ(ctx context.Context, id int64) error
	GetFAQ(ctx context.Context, id int64) (*FAQ, error)
	ListFAQs(ctx context.Context, filter FAQFilter) ([]FAQ, error)
}

type faqsStore struct {
	db      *sql.DB
	dialect Dialect
}

func NewFAQsStore(db *sql.DB) FAQsStore {
	return &faqsStore{db: db, dialect: DialectOf(db)}
}

const faqColumns = `id, category, question, answer, created_at, updated_at`

func (s *faqsStore) CreateFAQ(ctx context.Context, faq *FAQ) (*FAQ, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	now := utils.NowUTC().Truncate(time.Millisecond)
	var id int64
	if err := tx.QueryRowContext(ctx, s.dialect.rebind(`
		INSERT INTO faqs(category, question, answer, created_at, updated_at)
		VALUES(?,?,?,?,?) RETURNING id`),
		faq.Category, faq.Question, faq.Answer, s.dialect.timeArg(now), s.dialect.timeArg(now)).Scan(&id); err != nil {
		return nil, fmt.Errorf("insert faq: %w", err)
	}
	created, err := s.getFAQ(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateFAQ replaces category, question and answer. The new updated_at is
// always strictly later than the stored one.
func (s *faqsStore) UpdateFAQ(ctx context.Context, faq *FAQ) (*FAQ, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	var prev dbTime
	if err := tx.QueryRowContext(ctx, s.dialect.rebind(`SELECT updated_at FROM faqs WHERE id=?`), faq.ID).Scan(&prev); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	now := laterThan(utils.NowUTC(), prev.Time)
	res, err := tx.ExecContext(ctx, s.dialect.rebind(`
		UPDATE faqs SET category=?, question=?, answer=?, updated_at=? WHERE id=?`),
		faq.Category, faq.Question, faq.Answer, s.dialect.timeArg(now), faq.ID)
	if err != nil {
		return nil, fmt.Errorf("update faq: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, ErrNotFound
	}
	updated, err := s.getFAQ(ctx, tx, faq.ID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *faqsStore) DeleteFAQ(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(`DELETE FROM faqs WHERE id=?`), id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *faqsStore) GetFAQ(ctx context.Context, id int64) (*FAQ, error) {
	return s.getFAQ(ctx, s.db, id)
}

func (s *faqsStore) getFAQ(ctx context.Context, q querier, id int64) (*FAQ, error) {
	row := q.QueryRowContext(ctx, s.dialect.rebind(`SELECT `+faqColumns+` FROM faqs WHERE id=?`), id)
	faq, err := scanFAQ(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return faq, err
}

func (s *faqsStore) ListFAQs(ctx context.Context, filter FAQFilter) ([]FAQ, error) {
	var clauses []string
	var args []any
	if filter.Category != "" {
		clauses = append(clauses, "category=?")
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		clauses = append(clauses, `(question LIKE ? ESCAPE '\' OR answer LIKE ? ESCAPE '\' OR category LIKE ? ESCAPE '\')`)
		q := likePattern(filter.Search)
		args = append(args, q, q, q)
	}
	query := `SELECT ` + faqColumns + ` FROM faqs`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []FAQ{}
	for rows.Next() {
		faq, err := scanFAQ(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *faq)
	}
	return res, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFAQ(row rowScanner) (*FAQ, error) {
	var faq FAQ
	var created, updated dbTime
	if err := row.Scan(&faq.ID, &faq.Category, &faq.Question, &faq.Answer, &created, &updated); err != nil {
		return nil, err
	}
	faq.CreatedAt = created.Time
	faq.UpdatedAt = updated.Time
	return &faq, nil
}
