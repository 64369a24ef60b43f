package gormrepo

import (
	"context"
	"errors"

	"soulledger/internal/adapter/repo/gorm/model"
	"soulledger/internal/app/ports"
	"soulledger/internal/domain/catalog"

	"gorm.io/gorm"
)

type CatalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) CatalogRepo {
	return CatalogRepo{db: db}
}

func (r CatalogRepo) CreateEvent(ctx context.Context, event catalog.Event) error {
	m := model.Event{
		Name:      event.Name,
		Authority: event.Authority,
		Active:    event.Active,
		CreatedAt: event.CreatedAt,
	}
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r CatalogRepo) GetEvent(ctx context.Context, name string) (catalog.Event, error) {
	var m model.Event
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Event{}, ports.ErrNotFound
		}
		return catalog.Event{}, err
	}
	return catalog.Event{
		Name:      m.Name,
		Authority: m.Authority,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
	}, nil
}

func (r CatalogRepo) SetEventActive(ctx context.Context, name string, active bool) error {
	res := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Model(&model.Event{}).
		Where("name = ?", name).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r CatalogRepo) CreateQuest(ctx context.Context, quest catalog.Quest) error {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)
	var count int64
	if err := db.Model(&model.Event{}).Where("name = ?", quest.Event).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ports.ErrNotFound
	}
	m := model.Quest{
		EventName: quest.Event,
		Name:      quest.Name,
		XpReward:  quest.XPReward,
		CreatedAt: quest.CreatedAt,
	}
	if err := db.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r CatalogRepo) GetQuest(ctx context.Context, event, name string) (catalog.Quest, error) {
	var m model.Quest
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where("event_name = ? AND name = ?", event, name).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Quest{}, ports.ErrNotFound
		}
		return catalog.Quest{}, err
	}
	return catalog.Quest{
		Event:     m.EventName,
		Name:      m.Name,
		XPReward:  m.XpReward,
		CreatedAt: m.CreatedAt,
	}, nil
}
