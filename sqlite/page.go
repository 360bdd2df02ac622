package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/docsnip"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docsnip.PageService = (*PageService)(nil)

// PageService implements docsnip.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// SavePage stores the page and its examples in one transaction. Saving a
// URL that is already stored replaces its title, links and examples.
func (s *PageService) SavePage(ctx context.Context, page *docsnip.PageExtraction) error {
	if page.URL == "" {
		return docsnip.Errorf(docsnip.EINVALID, "page URL required")
	}

	links := page.Links
	if links == nil {
		links = []string{}
	}
	linksJSON, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("encoding links: %w", err)
	}
	fetchedAt := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var pageID string
	err = tx.QueryRowContext(ctx, "SELECT id FROM pages WHERE url = ?", page.URL).Scan(&pageID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		pageID = uuid.New().String()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pages (id, url, title, links, fetched_at)
			VALUES (?, ?, ?, ?, ?)
		`, pageID, page.URL, page.PageTitle, string(linksJSON), fetchedAt); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if _, err := tx.ExecContext(ctx, `
			UPDATE pages SET title = ?, links = ?, fetched_at = ? WHERE id = ?
		`, page.PageTitle, string(linksJSON), fetchedAt, pageID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM examples WHERE page_id = ?", pageID); err != nil {
			return err
		}
	}

	for i, ex := range page.Examples {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO examples (id, page_id, position, title, description, language, code, code_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), pageID, i, ex.Title, ex.Description, ex.Language, ex.Code, hashCode(ex.Code)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindPageByURL retrieves a stored page with its examples in document order.
func (s *PageService) FindPageByURL(ctx context.Context, url string) (*docsnip.PageExtraction, error) {
	var pageID, linksJSON string
	page := &docsnip.PageExtraction{URL: url}

	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, links FROM pages WHERE url = ?
	`, url).Scan(&pageID, &page.PageTitle, &linksJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docsnip.Errorf(docsnip.ENOTFOUND, "page %s not found", url)
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(linksJSON), &page.Links); err != nil {
		return nil, fmt.Errorf("failed to decode links: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT title, description, language, code
		FROM examples
		WHERE page_id = ?
		ORDER BY position ASC
	`, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	page.Examples = []docsnip.CodeExample{}
	for rows.Next() {
		var ex docsnip.CodeExample
		if err := rows.Scan(&ex.Title, &ex.Description, &ex.Language, &ex.Code); err != nil {
			return nil, err
		}
		page.Examples = append(page.Examples, ex)
	}

	return page, rows.Err()
}

// FindExamples retrieves stored examples matching the filter, grouped by
// page URL and in document order within a page.
func (s *PageService) FindExamples(ctx context.Context, filter docsnip.ExampleFilter) ([]*docsnip.StoredExample, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT p.url, e.position, e.title, e.description, e.language, e.code, e.code_hash
		FROM examples e JOIN pages p ON p.id = e.page_id WHERE 1=1`)

	if filter.PageURL != nil {
		query.WriteString(" AND p.url = ?")
		args = append(args, *filter.PageURL)
	}
	if filter.Language != nil {
		query.WriteString(" AND e.language = ?")
		args = append(args, *filter.Language)
	}

	query.WriteString(" ORDER BY p.url ASC, e.position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	examples := []*docsnip.StoredExample{}
	for rows.Next() {
		var ex docsnip.StoredExample
		if err := rows.Scan(&ex.PageURL, &ex.Position, &ex.Title, &ex.Description,
			&ex.Language, &ex.Code, &ex.CodeHash); err != nil {
			return nil, err
		}
		examples = append(examples, &ex)
	}

	return examples, rows.Err()
}
