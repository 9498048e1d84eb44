package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eduadmin/eduadmin-backend/internal/config"
	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/eduadmin/eduadmin-backend/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ClassStatusWorker advances classes along the clock: scheduled classes
// whose start time has passed become ongoing, ongoing classes whose end
// time has passed become completed. Manual transitions through the API win
// because the guarded updates only touch rows still in the expected state.
type ClassStatusWorker struct {
	pool     *pgxpool.Pool
	rdb      *redis.Client
	interval time.Duration
	log      zerolog.Logger
}

func NewClassStatusWorker(pool *pgxpool.Pool, rdb *redis.Client, interval time.Duration, log zerolog.Logger) *ClassStatusWorker {
	return &ClassStatusWorker{
		pool:     pool,
		rdb:      rdb,
		interval: interval,
		log:      log.With().Str("component", "class_status_worker").Logger(),
	}
}

type advancedClass struct {
	ID        uuid.UUID
	StudentID uuid.UUID
	TeacherID uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}

// ----------------------------------------------------------------
// Worker loop
// ----------------------------------------------------------------

func (w *ClassStatusWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("ClassStatusWorker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Catch up immediately on boot, then every tick.
	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("ClassStatusWorker stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *ClassStatusWorker) tick(ctx context.Context) {
	now := time.Now()

	started, err := w.advance(ctx,
		`UPDATE classes
		 SET status = 'ongoing', updated_at = CURRENT_TIMESTAMP
		 WHERE status = 'scheduled' AND start_time <= $1
		 RETURNING id, student_id, teacher_id, start_time, end_time`, now)
	if err != nil {
		w.log.Error().Err(err).Msg("Advance to ongoing failed")
	} else {
		w.publishAll(ctx, started, model.StatusOngoing)
	}

	finished, err := w.advance(ctx,
		`UPDATE classes
		 SET status = 'completed', updated_at = CURRENT_TIMESTAMP
		 WHERE status = 'ongoing' AND end_time <= $1
		 RETURNING id, student_id, teacher_id, start_time, end_time`, now)
	if err != nil {
		w.log.Error().Err(err).Msg("Advance to completed failed")
	} else {
		w.publishAll(ctx, finished, model.StatusCompleted)
	}
}

func (w *ClassStatusWorker) advance(ctx context.Context, query string, now time.Time) ([]advancedClass, error) {
	rows, err := w.pool.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var advanced []advancedClass
	for rows.Next() {
		var a advancedClass
		if err := rows.Scan(&a.ID, &a.StudentID, &a.TeacherID, &a.StartTime, &a.EndTime); err != nil {
			return nil, err
		}
		advanced = append(advanced, a)
	}
	return advanced, rows.Err()
}

// publishAll emits one live event per advanced class. Best effort; the DB
// state is already committed.
func (w *ClassStatusWorker) publishAll(ctx context.Context, advanced []advancedClass, status model.ClassStatus) {
	if len(advanced) == 0 {
		return
	}

	pipe := w.rdb.Pipeline()
	at := time.Now().UTC()
	for _, a := range advanced {
		payload, err := json.Marshal(service.ScheduleEvent{
			Type:      service.EventClassStatusChanged,
			ClassID:   a.ID,
			StudentID: a.StudentID,
			TeacherID: a.TeacherID,
			Status:    status,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			At:        at,
		})
		if err != nil {
			continue
		}
		pipe.Publish(ctx, config.CacheKey.ScheduleEventChannel(), payload)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		w.log.Warn().Err(err).Int("count", len(advanced)).Msg("Status event publish failed")
	}

	w.log.Info().Int("count", len(advanced)).Str("status", string(status)).Msg("Classes advanced")
}
