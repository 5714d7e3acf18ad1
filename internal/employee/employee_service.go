package employee

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Mthinuay/SingularXpress/internal/events"
	"github.com/Mthinuay/SingularXpress/internal/messaging/kafka"
	"github.com/Mthinuay/SingularXpress/internal/shared/apperror"
	"github.com/Mthinuay/SingularXpress/internal/shared/contextutil"
	"github.com/Mthinuay/SingularXpress/internal/shared/counter"
	employeeerrors "github.com/Mthinuay/SingularXpress/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	OptionsCacheKey = "employees:options"
	emailDomain     = "@singular.co.za"

	counterTypeEmployeeNumber = "employee_number"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req UpsertEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
	GetByEmployeeNumber(ctx context.Context, employeeNumber string) (EmployeeResponse, error)
	GetByIDNumber(ctx context.Context, idNumber string) (EmployeeResponse, error)
	Update(ctx context.Context, employeeNumber string, req UpsertEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, employeeNumber string) error
}

type service struct {
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger *zap.Logger,
) Service {
	return &service{
		repo:    repo,
		counter: counterRepo,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  logger.Named("employee.service"),
	}
}

func (s *service) Create(ctx context.Context, req UpsertEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("id_type", req.IDType),
		zap.String("email", req.Email),
	)

	if err := validateRequest(req); err != nil {
		s.logger.Warn("create employee validation failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	exists, err := s.repo.ExistsByIDNumber(ctx, req.IDNumber)
	if err != nil {
		s.logger.Error("create employee id check failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if exists {
		return EmployeeResponse{}, employeeerrors.ErrIDNumberExists
	}

	emp, err := buildEntity(req)
	if err != nil {
		return EmployeeResponse{}, err
	}

	// Sequence per surname prefix, so "SMITH" and "SMIT" share SMI numbering.
	prefix := surnamePrefix(req.LastName)
	seq, err := s.counter.GetNextValue(ctx, counterTypeEmployeeNumber, prefix)
	if err != nil {
		s.logger.Error("create employee generate number failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	emp.EmployeeNumber = GenerateEmployeeNumber(req.LastName, seq)

	ApplyIdentity(emp)
	DeriveDefaults(emp)

	if err := s.repo.Create(ctx, emp); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:      "employee_created",
			EmployeeID:     emp.IDNumber,
			EmployeeNumber: emp.EmployeeNumber,
			OccurredAt:     time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal employee event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		if err := s.outbox.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   emp.EmployeeNumber,
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_number", emp.EmployeeNumber),
				zap.Error(err),
			)
		}
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_number", emp.EmployeeNumber),
	)

	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	emps, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]EmployeeResponse, len(emps))
	for i, e := range emps {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (interface{}, error) {
		emps, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(emps))
		for i, e := range emps {
			resp[i] = EmployeeOptionResponse{
				EmployeeNumber: e.EmployeeNumber,
				FullName:       strings.TrimSpace(e.FirstName + " " + e.LastName),
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, OptionsCacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByEmployeeNumber(ctx context.Context, employeeNumber string) (EmployeeResponse, error) {
	emp, err := s.repo.FindByEmployeeNumber(ctx, employeeNumber)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*emp), nil
}

func (s *service) GetByIDNumber(ctx context.Context, idNumber string) (EmployeeResponse, error) {
	if strings.TrimSpace(idNumber) == "" {
		return EmployeeResponse{}, apperror.RequiredField("id_number")
	}

	emp, err := s.repo.FindByIDNumber(ctx, idNumber)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*emp), nil
}

func (s *service) Update(ctx context.Context, employeeNumber string, req UpsertEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_number", employeeNumber))

	existing, err := s.repo.FindByEmployeeNumber(ctx, employeeNumber)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := validateRequest(req); err != nil {
		return EmployeeResponse{}, err
	}

	idChanged := existing.IDNumber != req.IDNumber
	if idChanged {
		exists, err := s.repo.ExistsByIDNumber(ctx, req.IDNumber)
		if err != nil {
			return EmployeeResponse{}, mapRepositoryError(err)
		}
		if exists {
			return EmployeeResponse{}, employeeerrors.ErrIDNumberExists
		}
	}

	updated, err := buildEntity(req)
	if err != nil {
		return EmployeeResponse{}, err
	}
	updated.EmployeeNumber = existing.EmployeeNumber
	updated.CreatedAt = existing.CreatedAt

	// Derived identity fields carry over unless the document changed.
	updated.DateOfBirth = existing.DateOfBirth
	updated.Gender = existing.Gender
	updated.Nationality = existing.Nationality
	if idChanged {
		ApplyIdentity(updated)
	}
	DeriveDefaults(updated)

	if err := s.repo.Update(ctx, updated); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("update employee success", zap.String("employee_number", employeeNumber))
	return mapToResponse(*updated), nil
}

func (s *service) Delete(ctx context.Context, employeeNumber string) error {
	if _, err := s.repo.FindByEmployeeNumber(ctx, employeeNumber); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, employeeNumber); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("delete employee success", zap.String("employee_number", employeeNumber))
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.String("key", OptionsCacheKey),
			zap.Error(err),
		)
	}
}

func validateRequest(req UpsertEmployeeRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return employeeerrors.ErrFirstNameRequired
	}
	if strings.TrimSpace(req.LastName) == "" {
		return employeeerrors.ErrLastNameRequired
	}

	if strings.TrimSpace(req.Email) == "" {
		return employeeerrors.ErrEmailRequired
	}
	if !strings.HasSuffix(strings.ToLower(req.Email), emailDomain) {
		return employeeerrors.ErrEmailDomain
	}

	switch req.IDType {
	case IDTypeNational:
		if !nationalIDPattern.MatchString(req.IDNumber) {
			return employeeerrors.ErrInvalidIDNumber
		}
	case IDTypePassport:
		if !passportPattern.MatchString(req.IDNumber) {
			return employeeerrors.ErrInvalidPassport
		}
	default:
		return employeeerrors.ErrInvalidIDType
	}

	return nil
}

func buildEntity(req UpsertEmployeeRequest) (*Employee, error) {
	emp := &Employee{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		MaidenName:     req.MaidenName,
		Title:          req.Title,
		Initials:       req.Initials,
		IDType:         req.IDType,
		IDNumber:       req.IDNumber,
		PreferredName:  req.PreferredName,
		MiddleName:     req.MiddleName,
		ContactNumber:  req.ContactNumber,
		Disability:     req.Disability,
		DisabilityType: req.DisabilityType,
		Email:          req.Email,
		MaritalStatus:  req.MaritalStatus,
		HomeAddress:    req.HomeAddress,
		City:           req.City,
		PostalCode:     req.PostalCode,
		Department:     req.Department,
		JobTitle:       req.JobTitle,
		EmployeeStatus: req.EmployeeStatus,
		ReportsTo:      req.ReportsTo,
		DocumentPath:   req.DocumentPath,
	}

	if req.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, apperror.New(apperror.CodeInvalidInput, "Invalid start_date format, expected YYYY-MM-DD", http.StatusBadRequest)
		}
		emp.StartDate = &startDate
	}

	return emp, nil
}

func surnamePrefix(lastName string) string {
	return GenerateEmployeeNumber(lastName, 0)[:3]
}

func mapToResponse(emp Employee) EmployeeResponse {
	resp := EmployeeResponse{
		EmployeeNumber: emp.EmployeeNumber,
		FirstName:      emp.FirstName,
		LastName:       emp.LastName,
		MaidenName:     emp.MaidenName,
		Title:          emp.Title,
		Initials:       emp.Initials,
		IDType:         emp.IDType,
		IDNumber:       emp.IDNumber,
		PreferredName:  emp.PreferredName,
		Gender:         emp.Gender,
		MiddleName:     emp.MiddleName,
		ContactNumber:  emp.ContactNumber,
		Nationality:    emp.Nationality,
		Citizenship:    emp.Citizenship,
		Disability:     emp.Disability,
		DisabilityType: emp.DisabilityType,
		Email:          emp.Email,
		MaritalStatus:  emp.MaritalStatus,
		HomeAddress:    emp.HomeAddress,
		City:           emp.City,
		PostalCode:     emp.PostalCode,
		Department:     emp.Department,
		JobTitle:       emp.JobTitle,
		EmployeeStatus: emp.EmployeeStatus,
		ReportsTo:      emp.ReportsTo,
		DocumentPath:   emp.DocumentPath,
	}
	if emp.DateOfBirth != nil {
		resp.DateOfBirth = emp.DateOfBirth.Format("2006-01-02")
	}
	if emp.StartDate != nil {
		resp.StartDate = emp.StartDate.Format("2006-01-02")
	}
	return resp
}
