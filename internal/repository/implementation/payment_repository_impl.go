package implementation

import (
	"context"
	"errors"

	"vistratv-be/internal/entity"
	"vistratv-be/internal/mapper"
	"vistratv-be/internal/model"
	"vistratv-be/internal/repository/contract"
	"vistratv-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentMapper
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentMapper(),
	}
}

func (r *PaymentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PaymentRepositoryImpl) CreateTransaction(ctx context.Context, tx *entity.PaymentTransaction) error {
	m := r.mapper.TransactionToModel(tx)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tx = *r.mapper.TransactionToEntity(m)
	return nil
}

func (r *PaymentRepositoryImpl) UpdateTransaction(ctx context.Context, tx *entity.PaymentTransaction) error {
	m := r.mapper.TransactionToModel(tx)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*tx = *r.mapper.TransactionToEntity(m)
	return nil
}

func (r *PaymentRepositoryImpl) FindOneTransaction(ctx context.Context, specs ...specification.Specification) (*entity.PaymentTransaction, error) {
	var m model.PaymentTransaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TransactionToEntity(&m), nil
}

func (r *PaymentRepositoryImpl) FindAllTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentTransaction, error) {
	var models []*model.PaymentTransaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.PaymentTransaction, len(models))
	for i, m := range models {
		entities[i] = r.mapper.TransactionToEntity(m)
	}
	return entities, nil
}

func (r *PaymentRepositoryImpl) CountTransactions(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.PaymentTransaction{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

func (r *PaymentRepositoryImpl) SumCompletedAmount(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.PaymentTransaction{}).
		Where("status = ?", string(entity.PaymentStatusCompleted)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// Webhook log implementation

type WebhookLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentMapper
}

func NewWebhookLogRepository(db *gorm.DB) contract.WebhookLogRepository {
	return &WebhookLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentMapper(),
	}
}

func (r *WebhookLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WebhookLogRepositoryImpl) CreateIfAbsent(ctx context.Context, log *entity.WebhookLog) (bool, *entity.WebhookLog, error) {
	m := r.mapper.WebhookLogToModel(log)

	// ON CONFLICT DO NOTHING over the (provider, transaction_id, event_status)
	// unique index. RowsAffected == 0 means a concurrent or earlier delivery
	// already owns this event.
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}, {Name: "transaction_id"}, {Name: "event_status"}},
		DoNothing: true,
	}).Create(m)
	if res.Error != nil {
		return false, nil, res.Error
	}

	if res.RowsAffected == 0 {
		existing, err := r.FindOne(ctx,
			specification.ByProvider{Provider: string(log.Provider)},
			specification.Filter("transaction_id", log.TransactionId),
			specification.Filter("event_status", log.EventStatus),
		)
		if err != nil {
			return false, nil, err
		}
		return false, existing, nil
	}

	*log = *r.mapper.WebhookLogToEntity(m)
	return true, log, nil
}

func (r *WebhookLogRepositoryImpl) Update(ctx context.Context, log *entity.WebhookLog) error {
	m := r.mapper.WebhookLogToModel(log)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.WebhookLogToEntity(m)
	return nil
}

func (r *WebhookLogRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WebhookLog, error) {
	var m model.WebhookLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.WebhookLogToEntity(&m), nil
}

func (r *WebhookLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WebhookLog, error) {
	var models []*model.WebhookLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.WebhookLog, len(models))
	for i, m := range models {
		entities[i] = r.mapper.WebhookLogToEntity(m)
	}
	return entities, nil
}

func (r *WebhookLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.WebhookLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
