package postgres

import (
	"context"
	"database/sql"
	"time"

	"kb-analytics-service/internal/qalogs/core/domain"
	"kb-analytics-service/internal/qalogs/core/ports"
)

type QaLogRepository struct {
	db DB
}

func NewQaLogRepository(db DB) *QaLogRepository {
	return &QaLogRepository{db: db}
}

var _ ports.QaLogRepositoryPort = (*QaLogRepository)(nil)

const insertQaLogSQL = `
INSERT INTO qa_logs (id, question, answer, study_program, org_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6);
`

// org_id filter is skipped when $1 is zero
const listQaLogsSQL = `
SELECT id, question, answer, study_program, org_id, created_at
FROM qa_logs
WHERE ($1 = 0 OR org_id = $1)
ORDER BY created_at DESC, id DESC;
`

const deleteQaLogsBeforeSQL = `
DELETE FROM qa_logs
WHERE created_at < $1;
`

func (r *QaLogRepository) InsertQaLog(ctx context.Context, l *domain.QaLog) error {
	var studyProgram, orgID any
	if l.StudyProgram != "" {
		studyProgram = l.StudyProgram
	}
	if l.OrgID != 0 {
		orgID = l.OrgID
	}

	_, err := r.db.ExecContext(ctx, insertQaLogSQL,
		l.ID,
		l.Question,
		l.Answer,
		studyProgram,
		orgID,
		l.CreatedAt,
	)
	return err
}

func (r *QaLogRepository) ListQaLogs(ctx context.Context, orgID int64) ([]domain.QaLog, error) {
	rows, err := r.db.QueryContext(ctx, listQaLogsSQL, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.QaLog
	for rows.Next() {
		var (
			l            domain.QaLog
			studyProgram sql.NullString
			org          sql.NullInt64
		)
		if err := rows.Scan(&l.ID, &l.Question, &l.Answer, &studyProgram, &org, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.StudyProgram = studyProgram.String
		l.OrgID = org.Int64
		l.CreatedAt = l.CreatedAt.UTC()
		logs = append(logs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *QaLogRepository) DeleteQaLogsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteQaLogsBeforeSQL, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
