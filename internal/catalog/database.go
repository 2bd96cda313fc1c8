package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/zfogg/reelmatch/internal/tags"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// movieRow is the `movies` table; position is the matrix row.
type movieRow struct {
	Position int      `gorm:"column:position;primaryKey;autoIncrement:false"`
	MovieID  int64    `gorm:"column:movie_id;index"`
	Title    string   `gorm:"column:title;index"`
	Overview string   `gorm:"column:overview"`
	Tags     tags.Raw `gorm:"column:tags"`
}

func (movieRow) TableName() string { return "movies" }

// similarityRow is the `similarity_rows` table; scores is a JSON array.
type similarityRow struct {
	Position int    `gorm:"column:position;primaryKey;autoIncrement:false"`
	Scores   string `gorm:"column:scores;type:text"`
}

func (similarityRow) TableName() string { return "similarity_rows" }

// OpenDatabase opens a PostgreSQL DSN (postgres://, postgresql://, or
// key=value form) or otherwise treats dsn as a SQLite file path.
func OpenDatabase(dsn string, debug bool) (*gorm.DB, error) {
	gormLogger := gormlogger.Default.LogMode(gormlogger.Silent)
	if debug {
		gormLogger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	dialector := sqlite.Open(dsn)
	if isPostgresDSN(dsn) {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// LoadDatabase reads the catalog from the movies and similarity_rows tables.
// Both tables must hold positions 0..N-1 so that movie i pairs with row i.
func LoadDatabase(db *gorm.DB) (*Catalog, error) {
	migrator := db.Migrator()
	present := make(map[string]bool)
	if migrator.HasTable(&movieRow{}) {
		for _, col := range RequiredColumns {
			present[col] = migrator.HasColumn(&movieRow{}, col)
		}
	}
	if err := checkColumns(present); err != nil {
		return nil, err
	}

	var rows []movieRow
	if err := db.Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch movies: %w", err)
	}

	var simRows []similarityRow
	if migrator.HasTable(&similarityRow{}) {
		if err := db.Order("position").Find(&simRows).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch similarity rows: %w", err)
		}
	}

	movies := make([]Movie, len(rows))
	for i, r := range rows {
		if r.Position != i {
			return nil, fmt.Errorf("%w: movies position %d at row %d", ErrShapeMismatch, r.Position, i)
		}
		movies[i] = Movie{
			MovieID:  r.MovieID,
			Title:    r.Title,
			Overview: r.Overview,
			Tags:     r.Tags,
		}
	}

	matrix := make(Matrix, len(simRows))
	for i, r := range simRows {
		if r.Position != i {
			return nil, fmt.Errorf("%w: similarity position %d at row %d", ErrShapeMismatch, r.Position, i)
		}
		if err := json.UnmarshalFromString(r.Scores, &matrix[i]); err != nil {
			return nil, fmt.Errorf("decode similarity row %d: %w", r.Position, err)
		}
	}

	return New(movies, matrix)
}

// WriteDatabase replaces the contents of the catalog tables.
func WriteDatabase(db *gorm.DB, movies []Movie, matrix Matrix) error {
	if err := db.AutoMigrate(&movieRow{}, &similarityRow{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&movieRow{}).Error; err != nil {
			return fmt.Errorf("clear movies: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&similarityRow{}).Error; err != nil {
			return fmt.Errorf("clear similarity rows: %w", err)
		}

		if len(movies) > 0 {
			rows := make([]movieRow, len(movies))
			for i, m := range movies {
				rows[i] = movieRow{Position: i, MovieID: m.MovieID, Title: m.Title, Overview: m.Overview, Tags: m.Tags}
			}
			if err := tx.CreateInBatches(&rows, 100).Error; err != nil {
				return fmt.Errorf("insert movies: %w", err)
			}
		}

		if len(matrix) > 0 {
			simRows := make([]similarityRow, len(matrix))
			for i, row := range matrix {
				scores, err := json.MarshalToString(row)
				if err != nil {
					return fmt.Errorf("encode similarity row %d: %w", i, err)
				}
				simRows[i] = similarityRow{Position: i, Scores: scores}
			}
			if err := tx.CreateInBatches(&simRows, 100).Error; err != nil {
				return fmt.Errorf("insert similarity rows: %w", err)
			}
		}
		return nil
	})
}
