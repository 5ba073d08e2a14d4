// Package library stores compiled conventions in a relational library.
//
// Thin orchestration layer delegating to the parser, compiler, and database
// packages. Each entry keeps the notation source next to its compiled JSON
// artifact so a library is always recompilable and exportable.
package library

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/solatis/bidlang/internal/core/db"
	"github.com/solatis/bidlang/internal/parser"
	"github.com/solatis/bidlang/internal/rules"
	"github.com/solatis/bidlang/internal/types"
)

// Convention is one stored library entry.
type Convention struct {
	ConventionID string    `db:"convention_id"`
	Name         string    `db:"name"`
	Source       string    `db:"source"`
	Compiled     string    `db:"compiled"`
	Checksum     string    `db:"checksum"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Nodes decodes the stored compiled artifact back into a decision tree.
func (c *Convention) Nodes() ([]rules.DecisionNode, error) {
	return rules.DecodeJSON([]byte(c.Compiled))
}

// Library provides named storage of compiled conventions.
type Library struct {
	queries  *db.Queries
	compiler *rules.Compiler
}

// New creates a library over an open database connection.
func New(dbConn *sqlx.DB, compiler *rules.Compiler) (*Library, error) {
	if dbConn == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if compiler == nil {
		return nil, fmt.Errorf("compiler cannot be nil")
	}

	queries, err := db.LoadQueries(dbConn)
	if err != nil {
		return nil, err
	}
	return &Library{queries: queries, compiler: compiler}, nil
}

// Save compiles source and stores it under name, replacing any previous
// version of the same name. The stored convention keeps its ID across
// updates; only a new name mints a new ID. filename is used in parse error
// positions.
func (l *Library) Save(ctx context.Context, name, filename string, source []byte) (*Convention, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	groups, err := parser.ParseConvention(filename, source)
	if err != nil {
		return nil, err
	}
	nodes, err := l.compiler.Compile(groups)
	if err != nil {
		return nil, err
	}
	compiled, err := rules.Encode(nodes, rules.FormatJSON, 0)
	if err != nil {
		return nil, err
	}

	// Content-addressable source checksum, same ingredients as the artifact.
	sum := sha256.Sum256(source)
	checksum := fmt.Sprintf("%x", sum)

	now := time.Now().UTC()
	existing, err := l.Get(ctx, name)
	switch {
	case err == nil:
		if _, err := l.queries.ExecContext(ctx, "update-convention",
			string(source), string(compiled), checksum, now, name); err != nil {
			return nil, fmt.Errorf("failed to update convention: %w", err)
		}
		existing.Source = string(source)
		existing.Compiled = string(compiled)
		existing.Checksum = checksum
		existing.UpdatedAt = now
		return existing, nil

	case errors.Is(err, types.ErrConventionNotFound):
		c := &Convention{
			ConventionID: string(types.NewConventionID()),
			Name:         name,
			Source:       string(source),
			Compiled:     string(compiled),
			Checksum:     checksum,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := l.queries.ExecContext(ctx, "insert-convention",
			c.ConventionID, c.Name, c.Source, c.Compiled, c.Checksum, c.CreatedAt, c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to insert convention: %w", err)
		}
		return c, nil

	default:
		return nil, err
	}
}

// Get fetches a convention by name.
func (l *Library) Get(ctx context.Context, name string) (*Convention, error) {
	var c Convention
	err := l.queries.GetContext(ctx, "get-convention", &c, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", types.ErrConventionNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get convention: %w", err)
	}
	return &c, nil
}

// GetByID fetches a convention by its ID.
func (l *Library) GetByID(ctx context.Context, id types.ConventionID) (*Convention, error) {
	var c Convention
	err := l.queries.GetContext(ctx, "get-convention-by-id", &c, string(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %q", types.ErrConventionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get convention: %w", err)
	}
	return &c, nil
}

// Resolve fetches by name first, then by ID when ref parses as one.
func (l *Library) Resolve(ctx context.Context, ref string) (*Convention, error) {
	c, err := l.Get(ctx, ref)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, types.ErrConventionNotFound) {
		return nil, err
	}
	if id, idErr := types.ParseConventionID(ref); idErr == nil {
		return l.GetByID(ctx, id)
	}
	return nil, err
}

// List returns all conventions ordered by name.
func (l *Library) List(ctx context.Context) ([]Convention, error) {
	var cs []Convention
	if err := l.queries.SelectContext(ctx, "list-conventions", &cs); err != nil {
		return nil, fmt.Errorf("failed to list conventions: %w", err)
	}
	return cs, nil
}

// Delete removes a convention by name.
func (l *Library) Delete(ctx context.Context, name string) error {
	res, err := l.queries.ExecContext(ctx, "delete-convention", name)
	if err != nil {
		return fmt.Errorf("failed to delete convention: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete convention: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", types.ErrConventionNotFound, name)
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("convention name must not be empty")
	}
	if len(name) > types.MaxConventionNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", types.ErrNameTooLong, len(name), types.MaxConventionNameLength)
	}
	return nil
}
