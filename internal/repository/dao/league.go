package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrLeagueNotFound = errors.New("league not found")

type League struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	StartDate   *time.Time

	EarlyBirdPrice        *float64
	EarlyBirdEndDate      *time.Time
	RegularPrice          *float64
	RegistrationOpenDate  *time.Time
	RegistrationCloseDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type LeagueDAO struct {
	db *gorm.DB
}

func NewLeagueDAO(db *gorm.DB) *LeagueDAO {
	return &LeagueDAO{
		db: db,
	}
}

func (d *LeagueDAO) Insert(ctx context.Context, league League) (League, error) {
	result := d.db.WithContext(ctx).Create(&league)
	if result.Error != nil {
		return League{}, result.Error
	}

	return league, nil
}

func (d *LeagueDAO) FindByID(ctx context.Context, id uint) (League, error) {
	var league League

	result := d.db.WithContext(ctx).First(&league, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return League{}, ErrLeagueNotFound
		}

		return League{}, result.Error
	}

	return league, nil
}

func (d *LeagueDAO) FindAll(ctx context.Context) ([]League, error) {
	var leagues []League

	result := d.db.WithContext(ctx).Order("id").Find(&leagues)
	if result.Error != nil {
		return nil, result.Error
	}

	return leagues, nil
}

func (d *LeagueDAO) Update(ctx context.Context, league League) (League, error) {
	result := d.db.WithContext(ctx).Model(&League{ID: league.ID}).Updates(map[string]any{
		"name":                    league.Name,
		"description":             league.Description,
		"start_date":              league.StartDate,
		"early_bird_price":        league.EarlyBirdPrice,
		"early_bird_end_date":     league.EarlyBirdEndDate,
		"regular_price":           league.RegularPrice,
		"registration_open_date":  league.RegistrationOpenDate,
		"registration_close_date": league.RegistrationCloseDate,
	})
	if result.Error != nil {
		return League{}, result.Error
	}
	if result.RowsAffected == 0 {
		return League{}, ErrLeagueNotFound
	}

	return d.FindByID(ctx, league.ID)
}

func (d *LeagueDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&League{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLeagueNotFound
	}

	return nil
}
