package postgres

import (
	"database/sql"

	"bikefleet-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.TeamRepository
	repository.BikeRepository
	repository.RentalRepository
	repository.PaxProfileRepository
	repository.PoiRepository
	repository.DepartureRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		UserRepository:       NewUserRepository(db),
		TeamRepository:       NewTeamRepository(db),
		BikeRepository:       NewBikeRepository(db),
		RentalRepository:     NewRentalRepository(db),
		PaxProfileRepository: NewPaxProfileRepository(db),
		PoiRepository:        NewPoiRepository(db),
		DepartureRepository:  NewDepartureRepository(db),
	}
}
