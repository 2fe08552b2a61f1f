package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrTeamNameExists = errors.New("team name already taken in this session")
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("registration already drafted to a team")
)

type Team struct {
	ID uint `gorm:"primaryKey"`

	SessionID uint     `gorm:"not null;uniqueIndex:idx_teams_session_name"`
	Session   *Session `gorm:"foreignKey:SessionID"`

	Name       string `gorm:"not null;uniqueIndex:idx_teams_session_name"`
	Color      string
	CaptainID  *uint
	MaxPlayers int `gorm:"not null;default:0"`

	Players []Player `gorm:"foreignKey:TeamID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Player struct {
	ID uint `gorm:"primaryKey"`

	TeamID         uint                 `gorm:"not null;index"`
	RegistrationID uint                 `gorm:"not null;uniqueIndex"`
	Registration   *SessionRegistration `gorm:"foreignKey:RegistrationID"`
	UserID         *uint
	JerseyNumber   *int

	CreatedAt time.Time
}

type TeamDAO struct {
	db *gorm.DB
}

func NewTeamDAO(db *gorm.DB) *TeamDAO {
	return &TeamDAO{
		db: db,
	}
}

func (d *TeamDAO) Insert(ctx context.Context, team Team) (Team, error) {
	result := d.db.WithContext(ctx).Create(&team)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Team{}, ErrTeamNameExists
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) FindByID(ctx context.Context, id uint) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).Preload("Players").First(&team, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) FindBySessionID(ctx context.Context, sessionID uint) ([]Team, error) {
	var teams []Team

	result := d.db.WithContext(ctx).Preload("Players").
		Where("session_id = ?", sessionID).
		Order("id").
		Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}

	return teams, nil
}

func (d *TeamDAO) Update(ctx context.Context, team Team) (Team, error) {
	result := d.db.WithContext(ctx).Model(&Team{ID: team.ID}).Updates(map[string]any{
		"name":        team.Name,
		"color":       team.Color,
		"captain_id":  team.CaptainID,
		"max_players": team.MaxPlayers,
	})
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Team{}, ErrTeamNameExists
		}

		return Team{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Team{}, ErrTeamNotFound
	}

	return d.FindByID(ctx, team.ID)
}

// Delete removes the team and its roster slots. Registrations survive and go
// back to the undrafted pool.
func (d *TeamDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&Player{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Team{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTeamNotFound
		}

		return nil
	})
}

func (d *TeamDAO) DeleteBySessionID(ctx context.Context, sessionID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var teamIDs []uint
		if err := tx.Model(&Team{}).Where("session_id = ?", sessionID).
			Pluck("id", &teamIDs).Error; err != nil {
			return err
		}
		if len(teamIDs) == 0 {
			return nil
		}
		if err := tx.Where("team_id IN ?", teamIDs).Delete(&Player{}).Error; err != nil {
			return err
		}

		return tx.Where("session_id = ?", sessionID).Delete(&Team{}).Error
	})
}

func (d *TeamDAO) InsertPlayer(ctx context.Context, player Player) (Player, error) {
	result := d.db.WithContext(ctx).Create(&player)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Player{}, ErrPlayerExists
		}

		return Player{}, result.Error
	}

	return player, nil
}

func (d *TeamDAO) FindPlayerByID(ctx context.Context, id uint) (Player, error) {
	var player Player

	result := d.db.WithContext(ctx).First(&player, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Player{}, ErrPlayerNotFound
		}

		return Player{}, result.Error
	}

	return player, nil
}

func (d *TeamDAO) UpdatePlayerTeam(ctx context.Context, playerID, teamID uint) error {
	result := d.db.WithContext(ctx).Model(&Player{}).Where("id = ?", playerID).Update("team_id", teamID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlayerNotFound
	}

	return nil
}

func (d *TeamDAO) DeletePlayer(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Player{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlayerNotFound
	}

	return nil
}

func (d *TeamDAO) CountPlayersByTeamID(ctx context.Context, teamID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Player{}).Where("team_id = ?", teamID).Count(&count)

	return count, result.Error
}

func (d *TeamDAO) CountPlayersBySessionID(ctx context.Context, sessionID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Player{}).
		Joins("JOIN teams ON teams.id = players.team_id").
		Where("teams.session_id = ?", sessionID).
		Count(&count)

	return count, result.Error
}
