package notification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const historyLimit = 50

type DeliveryRepository interface {
	Create(d *Delivery) error
	ListByUser(userID uuid.UUID) ([]Delivery, error)
}

type deliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(d *Delivery) error {
	return r.db.Create(d).Error
}

func (r *deliveryRepository) ListByUser(userID uuid.UUID) ([]Delivery, error) {
	var deliveries []Delivery
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(historyLimit).
		Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}
