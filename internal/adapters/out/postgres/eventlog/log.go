package eventlog

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"gorm.io/gorm"
)

// GormEventLog implements the EventLog port using GORM.
type GormEventLog struct {
	db *gorm.DB
}

var _ ports.EventLog = (*GormEventLog)(nil)

// NewGormEventLog creates a new GORM event log.
func NewGormEventLog(db *gorm.DB) *GormEventLog {
	return &GormEventLog{db: db}
}

// Append inserts a new event at the tail of the log.
func (l *GormEventLog) Append(ctx context.Context, evt order.Event) error {
	dto, err := fromDomain(evt)
	if err != nil {
		return err
	}

	return l.db.WithContext(ctx).Create(&dto).Error
}

// Load returns the full event stream in append order.
func (l *GormEventLog) Load(ctx context.Context) ([]order.Event, error) {
	var dtos []EventDTO
	if err := l.db.WithContext(ctx).Order("seq").Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]order.Event, 0, len(dtos))
	for _, dto := range dtos {
		evt, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}

	return events, nil
}
