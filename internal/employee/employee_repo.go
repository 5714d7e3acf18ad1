package employee

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, emp *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByEmployeeNumber(ctx context.Context, employeeNumber string) (*Employee, error)
	FindByIDNumber(ctx context.Context, idNumber string) (*Employee, error)
	ExistsByIDNumber(ctx context.Context, idNumber string) (bool, error)
	Update(ctx context.Context, emp *Employee) error
	Delete(ctx context.Context, employeeNumber string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var emps []Employee
	err := r.db.WithContext(ctx).
		Order("last_name, first_name").
		Find(&emps).Error
	return emps, err
}

func (r *repository) FindByEmployeeNumber(ctx context.Context, employeeNumber string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		First(&emp, "employee_number = ?", employeeNumber).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) FindByIDNumber(ctx context.Context, idNumber string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		First(&emp, "id_number = ?", idNumber).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) ExistsByIDNumber(ctx context.Context, idNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id_number = ?", idNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}

func (r *repository) Delete(ctx context.Context, employeeNumber string) error {
	return r.db.WithContext(ctx).
		Delete(&Employee{}, "employee_number = ?", employeeNumber).Error
}
