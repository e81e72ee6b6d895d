package archive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/models"
)

type Options struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Username        string
	Password        string
	Database        string
}

// Archive persists watched postings to ClickHouse for offline analysis of
// the local job market.
type Archive struct {
	conn   clickhouse.Conn
	logger *zap.Logger
}

func New(ctx context.Context, opts Options, logger *zap.Logger) (*Archive, error) {
	hostAndParams := strings.Split(opts.DSN, "?")
	host := hostAndParams[0]

	conn, err := clickhouse.Open(&clickhouse.Options{
		Protocol: clickhouse.Native,
		Addr:     []string{host},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		DialTimeout:     time.Second * 30,
		MaxOpenConns:    opts.MaxOpenConns,
		MaxIdleConns:    opts.MaxIdleConns,
		ConnMaxLifetime: opts.ConnMaxLifetime,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create clickhouse connection: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	return &Archive{
		conn:   conn,
		logger: logger,
	}, nil
}

// EnsureSchema creates the postings table. One table, so a versioned
// migrator would be overkill.
func (a *Archive) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS job_postings (
			id Int64,
			title String,
			company String,
			location String,
			category String,
			job_type String,
			experience_level String,
			salary_min Float64,
			salary_max Float64,
			salary_type String,
			is_remote UInt8,
			required_skills Array(String),
			application_count Int32,
			posted_at DateTime,
			fetched_at DateTime
		) ENGINE = MergeTree()
		ORDER BY (id, fetched_at)
	`

	if err := a.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("create job_postings table: %w", err)
	}

	a.logger.Debug("job_postings schema ensured")
	return nil
}

func (a *Archive) StorePosting(ctx context.Context, job models.Job) error {
	query := `
		INSERT INTO job_postings (
			id, title, company, location, category, job_type,
			experience_level, salary_min, salary_max, salary_type,
			is_remote, required_skills, application_count,
			posted_at, fetched_at
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)
	`

	category := ""
	if job.Category != nil {
		category = job.Category.Name
	}

	skills := make([]string, 0, len(job.RequiredSkills))
	for _, skill := range job.RequiredSkills {
		skills = append(skills, skill.Name)
	}

	isRemote := uint8(0)
	if job.IsRemote {
		isRemote = 1
	}

	if err := a.conn.Exec(ctx, query,
		job.ID,
		job.Title,
		job.Company.Name,
		job.Location,
		category,
		string(job.JobType),
		string(job.ExperienceLevel),
		job.SalaryMin,
		job.SalaryMax,
		string(job.SalaryType),
		isRemote,
		skills,
		int32(job.ApplicationCount),
		job.CreatedAt,
		time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("insert job posting: %w", err)
	}

	return nil
}

func (a *Archive) Close() error {
	return a.conn.Close()
}
