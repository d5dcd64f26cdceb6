package db

import (
	"context"
	"time"

	"github.com/NasaVasa/stocky/internal/domain"
	"gorm.io/gorm"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	model := mapAlertToModel(*alert)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	alert.ID = model.ID
	alert.CreatedAt = model.CreatedAt
	alert.UpdatedAt = model.UpdatedAt
	return nil
}

// ListPending returns evaluation candidates. Alerts without a deadline
// have a NULL expired column and are included; `expired = false` alone
// would drop them under SQL three-valued logic.
func (r *AlertRepository) ListPending(ctx context.Context) ([]domain.Alert, error) {
	var models []alertModel
	if err := r.db.WithContext(ctx).
		Where("triggered = ? AND (expired = ? OR expired IS NULL)", false, false).
		Order("id").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return mapAlertsToDomain(models), nil
}

func (r *AlertRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Alert, error) {
	var models []alertModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapAlertsToDomain(models), nil
}

func (r *AlertRepository) SearchByOwner(ctx context.Context, userID uint, term string) ([]domain.Alert, error) {
	var models []alertModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND ticker ILIKE ?", userID, "%"+term+"%").
		Order("id").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return mapAlertsToDomain(models), nil
}

// MarkTriggered commits the pending-to-triggered transition in one guarded
// UPDATE. Triggering clears the deadline bookkeeping: a resolved alert
// carries neither an expiration time nor an expired flag. The triggered
// guard in the WHERE clause makes the transition one-way even across
// overlapping evaluation passes.
func (r *AlertRepository) MarkTriggered(ctx context.Context, alertID uint, when time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Where("id = ? AND triggered = ?", alertID, false).
		Updates(map[string]interface{}{
			"triggered":       true,
			"triggered_time":  when,
			"expired":         nil,
			"expiration_time": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AlertRepository) MarkExpired(ctx context.Context, alertID uint) error {
	result := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Where("id = ? AND triggered = ? AND expired = ?", alertID, false, false).
		Update("expired", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AlertRepository) Delete(ctx context.Context, userID uint, alertID uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", alertID, userID).Delete(&alertModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapAlertsToDomain(models []alertModel) []domain.Alert {
	alerts := make([]domain.Alert, 0, len(models))
	for _, model := range models {
		alerts = append(alerts, domain.Alert{
			ID:             model.ID,
			UserID:         model.UserID,
			Ticker:         model.Ticker,
			Price:          model.Price,
			Direction:      domain.Direction(model.Direction),
			ExpirationTime: model.ExpirationTime,
			Expired:        model.Expired,
			Triggered:      model.Triggered,
			TriggeredTime:  model.TriggeredTime,
			CreatedAt:      model.CreatedAt,
			UpdatedAt:      model.UpdatedAt,
		})
	}
	return alerts
}

func mapAlertToModel(alert domain.Alert) alertModel {
	return alertModel{
		ID:             alert.ID,
		UserID:         alert.UserID,
		Ticker:         alert.Ticker,
		Price:          alert.Price,
		Direction:      string(alert.Direction),
		ExpirationTime: alert.ExpirationTime,
		Expired:        alert.Expired,
		Triggered:      alert.Triggered,
		TriggeredTime:  alert.TriggeredTime,
		CreatedAt:      alert.CreatedAt,
		UpdatedAt:      alert.UpdatedAt,
	}
}
