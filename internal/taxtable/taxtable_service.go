package taxtable

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"github.com/Mthinuay/SingularXpress/internal/events"
	"github.com/Mthinuay/SingularXpress/internal/messaging/kafka"
	"github.com/Mthinuay/SingularXpress/internal/shared/apperror"
	"github.com/Mthinuay/SingularXpress/internal/shared/contextutil"
	"github.com/Mthinuay/SingularXpress/internal/shared/filestore"
	taxtableerrors "github.com/Mthinuay/SingularXpress/internal/taxtable/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	HistoryCacheKey = "taxtables:history"
	uploadSubdir    = "Uploads/TaxTables"
)

//go:generate mockgen -source=taxtable_service.go -destination=mock/taxtable_service_mock.go -package=mock
type Service interface {
	Upload(ctx context.Context, uploadedBy string, req UploadTaxTableRequest) (UploadTaxTableResponse, error)
	GetHistory(ctx context.Context) ([]TaxTableResponse, error)
	GetByID(ctx context.Context, id int64) (TaxTableResponse, error)
	GetEntries(ctx context.Context, id int64) ([]TaxTableEntryResponse, error)
	Update(ctx context.Context, id int64, req UpdateTaxTableRequest) (TaxTableResponse, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	parser *Parser
	files  filestore.Store
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	parser *Parser,
	files filestore.Store,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger *zap.Logger,
) Service {
	return &service{
		db:     db,
		repo:   repo,
		parser: parser,
		files:  files,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: logger.Named("taxtable.service"),
	}
}

// Upload runs the full ingestion sequence. Entries are parsed and verified
// non-empty before anything is persisted, so a content-invalid sheet never
// leaves an orphaned header or a stray file behind.
func (s *service) Upload(ctx context.Context, uploadedBy string, req UploadTaxTableRequest) (UploadTaxTableResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("tax table upload requested",
		zap.String("request_id", rid),
		zap.String("year", req.Year),
		zap.String("file_name", req.FileName),
		zap.Int("file_size", len(req.Data)),
	)

	if err := ValidateUpload(req.Year, req.FileName, len(req.Data)); err != nil {
		s.logger.Warn("tax table upload validation failed", zap.String("request_id", rid), zap.Error(err))
		return UploadTaxTableResponse{}, err
	}
	year := NormalizeYear(req.Year)

	uploaderID, err := uuid.Parse(uploadedBy)
	if err != nil {
		return UploadTaxTableResponse{}, apperror.New(apperror.CodeUnauthorized, "Invalid uploader identity", 401)
	}

	entries, err := s.parser.Parse(req.Data)
	if err != nil {
		s.logger.Warn("tax table workbook unreadable", zap.String("request_id", rid), zap.Error(err))
		return UploadTaxTableResponse{}, taxtableerrors.ErrUnreadableWorkbook
	}
	if len(entries) == 0 {
		s.logger.Warn("tax table upload produced no entries", zap.String("request_id", rid))
		return UploadTaxTableResponse{}, taxtableerrors.ErrNoEntries
	}

	fileURL, err := s.files.Save(uploadSubdir, req.FileName, req.Data)
	if err != nil {
		s.logger.Error("tax table file write failed", zap.String("request_id", rid), zap.Error(err))
		return UploadTaxTableResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to store uploaded file", 500)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("tax table upload begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return UploadTaxTableResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	table := &TaxTable{
		TaxYear:      year,
		FileName:     req.FileName,
		FileURL:      fileURL,
		UploadedBy:   uploaderID,
		UploadedDate: time.Now().UTC(),
	}
	if err := qtx.Create(ctx, table); err != nil {
		s.logger.Error("tax table header persist failed", zap.String("request_id", rid), zap.Error(err))
		return UploadTaxTableResponse{}, mapRepositoryError(err)
	}

	rows := make([]TaxTableEntry, len(entries))
	for i, e := range entries {
		rows[i] = TaxTableEntry{
			TaxTableID:       table.ID,
			Remuneration:     e.Remuneration,
			AnnualEquivalent: e.AnnualEquivalent,
			TaxUnder65:       e.TaxUnder65,
		}
	}
	if err := qtx.InsertEntries(ctx, rows); err != nil {
		s.logger.Error("tax table entries persist failed",
			zap.String("request_id", rid),
			zap.Int64("tax_table_id", table.ID),
			zap.Error(err),
		)
		return UploadTaxTableResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.TaxTableUploadedEvent{
			EventType:  "taxtable_uploaded",
			TaxTableID: table.ID,
			TaxYear:    year,
			EntryCount: len(rows),
			UploadedBy: uploadedBy,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal taxtable event failed", zap.String("request_id", rid), zap.Error(err))
			return UploadTaxTableResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "taxtable",
			AggregateID:   strconv.FormatInt(table.ID, 10),
			EventType:     event.EventType,
			Topic:         events.TaxTableUploadedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("tax table outbox persist failed", zap.String("request_id", rid), zap.Error(err))
			return UploadTaxTableResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("tax table upload commit failed", zap.String("request_id", rid), zap.Error(err))
		return UploadTaxTableResponse{}, err
	}

	s.invalidateHistoryCache(ctx)

	s.logger.Info("tax table uploaded",
		zap.String("request_id", rid),
		zap.Int64("tax_table_id", table.ID),
		zap.String("year", year),
		zap.Int("entry_count", len(rows)),
	)

	return UploadTaxTableResponse{
		TaxTableID:   table.ID,
		Year:         table.TaxYear,
		FileName:     table.FileName,
		FileURL:      table.FileURL,
		UploadedDate: table.UploadedDate.Format(time.RFC3339),
		EntryCount:   len(rows),
		Message:      "Tax table uploaded successfully",
	}, nil
}

func (s *service) GetHistory(ctx context.Context) ([]TaxTableResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, HistoryCacheKey).Result(); err == nil {
			var resp []TaxTableResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(HistoryCacheKey, func() (interface{}, error) {
		tables, err := s.repo.FindAllByUploadDateDesc(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]TaxTableResponse, len(tables))
		for i, t := range tables {
			resp[i] = mapToResponse(t)
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, HistoryCacheKey, jsonData, 10*time.Minute)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]TaxTableResponse), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (TaxTableResponse, error) {
	table, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TaxTableResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*table), nil
}

func (s *service) GetEntries(ctx context.Context, id int64) ([]TaxTableEntryResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, mapRepositoryError(err)
	}

	entries, err := s.repo.FindEntriesByTableID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]TaxTableEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = TaxTableEntryResponse{
			ID:               e.ID,
			Remuneration:     e.Remuneration,
			AnnualEquivalent: e.AnnualEquivalent,
			TaxUnder65:       e.TaxUnder65,
		}
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateTaxTableRequest) (TaxTableResponse, error) {
	if err := ValidateYearLabel(req.Year); err != nil {
		return TaxTableResponse{}, err
	}

	table, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TaxTableResponse{}, mapRepositoryError(err)
	}

	table.TaxYear = NormalizeYear(req.Year)
	if err := s.repo.Update(ctx, table); err != nil {
		return TaxTableResponse{}, mapRepositoryError(err)
	}

	s.invalidateHistoryCache(ctx)

	s.logger.Info("tax table updated", zap.Int64("tax_table_id", id), zap.String("year", table.TaxYear))
	return mapToResponse(*table), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	s.invalidateHistoryCache(ctx)

	s.logger.Info("tax table deleted", zap.Int64("tax_table_id", id))
	return nil
}

func (s *service) invalidateHistoryCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, HistoryCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate tax table history cache",
			zap.String("key", HistoryCacheKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(t TaxTable) TaxTableResponse {
	return TaxTableResponse{
		TaxTableID:       t.ID,
		Year:             t.TaxYear,
		FileName:         t.FileName,
		FileURL:          t.FileURL,
		UploadedDate:     t.UploadedDate.Format(time.RFC3339),
		UploadedByUserID: t.UploadedBy.String(),
	}
}
