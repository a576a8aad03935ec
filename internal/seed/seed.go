package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models"
)

// CreateDefaultData seeds a development database with a demo community, an
// admin, a volunteer team and a handful of adoptable areas. Every statement
// is idempotent; a populated database is left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data...")

	var communityID int64
	err := dbPool.QueryRow(ctx,
		`SELECT id FROM communities WHERE name = $1`, "Demo Community").Scan(&communityID)
	if err == nil {
		lgr.Debug().Int64("communityId", communityID).Msg("Default data already present")
		return nil
	}

	var finalErr error

	err = dbPool.QueryRow(ctx,
		`INSERT INTO communities (name) VALUES ($1) RETURNING id`,
		"Demo Community").Scan(&communityID)
	if err != nil {
		return err
	}

	var adminID int64
	err = dbPool.QueryRow(ctx, `
		INSERT INTO users (email, first_name, last_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id`,
		"admin@demo.trashmob.eco", "Demo", "Admin").Scan(&adminID)
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	} else {
		_, err = dbPool.Exec(ctx, `
			INSERT INTO community_admins (community_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			communityID, adminID)
		finalErr = errors.Join(finalErr, err)
	}

	var teamID int64
	err = dbPool.QueryRow(ctx,
		`INSERT INTO teams (community_id, name) VALUES ($1, $2) RETURNING id`,
		communityID, "Demo Cleanup Crew").Scan(&teamID)
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	} else if adminID > 0 {
		_, err = dbPool.Exec(ctx, `
			INSERT INTO team_members (team_id, user_id, is_lead)
			VALUES ($1, $2, TRUE)
			ON CONFLICT DO NOTHING`,
			teamID, adminID)
		finalErr = errors.Join(finalErr, err)
	}

	sampleAreas := []struct {
		name      string
		areaType  models.AreaType
		coAdopt   bool
		frequency int
	}{
		{"Riverside Park", models.AreaTypePark, false, 90},
		{"Main Street North", models.AreaTypeStreet, false, 60},
		{"Willow Creek Trail", models.AreaTypeTrail, true, 90},
		{"Highway 9 Mile 12", models.AreaTypeHighwaySection, false, 120},
	}
	for _, area := range sampleAreas {
		_, err = dbPool.Exec(ctx, `
			INSERT INTO adoptable_areas (community_id, name, area_type, allow_co_adoption, cleanup_frequency_days)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT DO NOTHING`,
			communityID, area.name, area.areaType, area.coAdopt, area.frequency)
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr != nil {
		lgr.Error().Err(finalErr).Msg("Some default data could not be created")
		return finalErr
	}

	lgr.Info().Int64("communityId", communityID).Msg("Default data created")
	return nil
}
