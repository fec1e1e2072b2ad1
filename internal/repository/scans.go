package repository

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/entity"
)

const scansTable = "scans"

// timeLayout is fixed-width so created_at sorts lexically in both dialects.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var scanColumns = []string{
	"id", "source_path", "content_hash", "format", "method",
	"ocr_confidence", "status", "needs_review", "contact", "created_at",
}

// columns refreshed when the same content is saved again
var upsertColumns = []string{
	"source_path", "format", "method", "ocr_confidence", "status", "needs_review", "contact",
}

type ScanRepository interface {
	Save(ctx context.Context, s *entity.Scan) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Scan, error)
	GetByHash(ctx context.Context, hash []byte) (*entity.Scan, error)
	List(ctx context.Context, limit int) ([]entity.Scan, error)
}

type scanRepo struct {
	db     *DB
	logger *slog.Logger
}

func NewScanRepository(db *DB, logger *slog.Logger) ScanRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &scanRepo{db: db, logger: logger}
}

// Migrate creates the scans table when missing.
func (d *DB) Migrate(ctx context.Context) error {
	b := entsql.Dialect(d.dialect)
	stmts := []entsql.Querier{
		b.CreateTable(scansTable).IfNotExists().
			Columns(
				entsql.Column("id").Type("TEXT").Attr("NOT NULL"),
				entsql.Column("source_path").Type("TEXT").Attr("NOT NULL"),
				entsql.Column("content_hash").Type("TEXT").Attr("NOT NULL UNIQUE"),
				entsql.Column("format").Type("TEXT").Attr("NOT NULL"),
				entsql.Column("method").Type("TEXT").Attr("NOT NULL DEFAULT ''"),
				entsql.Column("ocr_confidence").Type("DOUBLE PRECISION").Attr("NOT NULL DEFAULT 0"),
				entsql.Column("status").Type("TEXT").Attr("NOT NULL"),
				entsql.Column("needs_review").Type("BOOLEAN").Attr("NOT NULL DEFAULT FALSE"),
				entsql.Column("contact").Type("TEXT").Attr("NOT NULL"),
				entsql.Column("created_at").Type("TEXT").Attr("NOT NULL"),
			).
			PrimaryKey("id"),
	}
	for _, st := range stmts {
		q, args := st.Query()
		if err := d.drv.Exec(ctx, q, args, nil); err != nil {
			d.logger.Error("migration failed", "query", q, "error", err)
			return fmt.Errorf("%w: migrate: %v", common.ErrDatabase, err)
		}
	}
	d.logger.Info("database schema up to date", "table", scansTable)
	return nil
}

// Save inserts s, or refreshes the existing row with the same content hash.
// On return s carries the stored id and creation time.
func (r *scanRepo) Save(ctx context.Context, s *entity.Scan) error {
	if s == nil {
		return fmt.Errorf("%w: nil scan", common.ErrInvalidInput)
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	contact, err := json.Marshal(s.Contact)
	if err != nil {
		return fmt.Errorf("%w: marshal contact: %v", common.ErrInternal, err)
	}

	q, args := entsql.Dialect(r.db.dialect).
		Insert(scansTable).
		Columns(scanColumns...).
		Values(
			s.ID.String(), s.SourcePath, hex.EncodeToString(s.ContentHash), s.Format, s.Method,
			float64(s.OCRConfidence), s.Status, s.NeedsReview, string(contact), s.CreatedAt.UTC().Format(timeLayout),
		).
		OnConflict(
			entsql.ConflictColumns("content_hash"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				for _, c := range upsertColumns {
					u.SetExcluded(c)
				}
			}),
		).
		Query()
	if err := r.db.drv.Exec(ctx, q, args, nil); err != nil {
		r.logger.Error("failed to save scan", "source_path", s.SourcePath, "error", err)
		return fmt.Errorf("%w: save scan: %v", common.ErrDatabase, err)
	}

	stored, err := r.GetByHash(ctx, s.ContentHash)
	if err != nil {
		return err
	}
	s.ID = stored.ID
	s.CreatedAt = stored.CreatedAt
	return nil
}

func (r *scanRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Scan, error) {
	return r.one(ctx, entsql.EQ("id", id.String()))
}

func (r *scanRepo) GetByHash(ctx context.Context, hash []byte) (*entity.Scan, error) {
	return r.one(ctx, entsql.EQ("content_hash", hex.EncodeToString(hash)))
}

// List returns the newest scans first; limit <= 0 returns all of them.
func (r *scanRepo) List(ctx context.Context, limit int) ([]entity.Scan, error) {
	sel := entsql.Dialect(r.db.dialect).
		Select(scanColumns...).
		From(entsql.Table(scansTable)).
		OrderBy(entsql.Desc("created_at"))
	if limit > 0 {
		sel.Limit(limit)
	}
	return r.query(ctx, sel)
}

func (r *scanRepo) one(ctx context.Context, p *entsql.Predicate) (*entity.Scan, error) {
	sel := entsql.Dialect(r.db.dialect).
		Select(scanColumns...).
		From(entsql.Table(scansTable)).
		Where(p).
		Limit(1)
	out, err := r.query(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, common.ErrNotFound
	}
	return &out[0], nil
}

func (r *scanRepo) query(ctx context.Context, sel *entsql.Selector) ([]entity.Scan, error) {
	q, args := sel.Query()
	var rows entsql.Rows
	if err := r.db.drv.Query(ctx, q, args, &rows); err != nil {
		r.logger.Error("failed to query scans", "error", err)
		return nil, fmt.Errorf("%w: query scans: %v", common.ErrDatabase, err)
	}
	defer func() { _ = rows.Close() }()

	var out []entity.Scan
	for rows.Next() {
		s, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read scans: %v", common.ErrDatabase, err)
	}
	return out, nil
}

func scanRow(rows entsql.Rows) (entity.Scan, error) {
	var (
		s                            entity.Scan
		id, hash, contact, createdAt string
		conf                         sql.NullFloat64
	)
	if err := rows.Scan(&id, &s.SourcePath, &hash, &s.Format, &s.Method,
		&conf, &s.Status, &s.NeedsReview, &contact, &createdAt); err != nil {
		return s, fmt.Errorf("%w: scan row: %v", common.ErrDatabase, err)
	}

	var errs []error
	var err error
	if s.ID, err = uuid.Parse(id); err != nil {
		errs = append(errs, fmt.Errorf("id: %w", err))
	}
	if s.ContentHash, err = hex.DecodeString(hash); err != nil {
		errs = append(errs, fmt.Errorf("content_hash: %w", err))
	}
	if s.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		errs = append(errs, fmt.Errorf("created_at: %w", err))
	}
	if err = json.Unmarshal([]byte(contact), &s.Contact); err != nil {
		errs = append(errs, fmt.Errorf("contact: %w", err))
	}
	if len(errs) > 0 {
		return s, fmt.Errorf("%w: decode scan %s: %v", common.ErrDatabase, id, errors.Join(errs...))
	}
	s.OCRConfidence = float32(conf.Float64)
	return s, nil
}
