package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string

	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`

	Fee        *float64
	IsActive   bool `gorm:"not null;default:false"`
	MaxPlayers int  `gorm:"not null;default:0"`

	RegistrationOpenDate  *time.Time
	RegistrationCloseDate *time.Time
	EarlyBirdPrice        *float64
	EarlyBirdEndDate      *time.Time
	RegularPrice          *float64

	LeagueID *uint   `gorm:"index"`
	League   *League `gorm:"foreignKey:LeagueID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{
		db: db,
	}
}

func (d *SessionDAO) Insert(ctx context.Context, session Session) (Session, error) {
	result := d.db.WithContext(ctx).Create(&session)
	if result.Error != nil {
		return Session{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) FindByID(ctx context.Context, id uint) (Session, error) {
	var session Session

	result := d.db.WithContext(ctx).Preload("League").First(&session, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Session{}, ErrSessionNotFound
		}

		return Session{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) FindAll(ctx context.Context) ([]Session, error) {
	var sessions []Session

	result := d.db.WithContext(ctx).Preload("League").Order("start_date").Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (d *SessionDAO) Update(ctx context.Context, session Session) (Session, error) {
	result := d.db.WithContext(ctx).Model(&Session{ID: session.ID}).Updates(map[string]any{
		"name":                    session.Name,
		"description":             session.Description,
		"start_date":              session.StartDate,
		"end_date":                session.EndDate,
		"fee":                     session.Fee,
		"is_active":               session.IsActive,
		"max_players":             session.MaxPlayers,
		"registration_open_date":  session.RegistrationOpenDate,
		"registration_close_date": session.RegistrationCloseDate,
		"early_bird_price":        session.EarlyBirdPrice,
		"early_bird_end_date":     session.EarlyBirdEndDate,
		"regular_price":           session.RegularPrice,
		"league_id":               session.LeagueID,
	})
	if result.Error != nil {
		return Session{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Session{}, ErrSessionNotFound
	}

	return d.FindByID(ctx, session.ID)
}

// ApplyLifecycleChanges persists flag flips computed by the lifecycle
// evaluator: one transaction, at most two UPDATE statements per batch.
func (d *SessionDAO) ApplyLifecycleChanges(ctx context.Context, activateIDs, deactivateIDs []uint) error {
	if len(activateIDs) == 0 && len(deactivateIDs) == 0 {
		return nil
	}

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(activateIDs) > 0 {
			if err := tx.Model(&Session{}).Where("id IN ?", activateIDs).
				Update("is_active", true).Error; err != nil {
				return err
			}
		}
		if len(deactivateIDs) > 0 {
			if err := tx.Model(&Session{}).Where("id IN ?", deactivateIDs).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *SessionDAO) Deactivate(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Session{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (d *SessionDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Session{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (d *SessionDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	result := d.db.WithContext(ctx).Model(&Session{}).Count(&count)

	return count, result.Error
}

func (d *SessionDAO) CountActive(ctx context.Context) (int64, error) {
	var count int64
	result := d.db.WithContext(ctx).Model(&Session{}).Where("is_active = ?", true).Count(&count)

	return count, result.Error
}
