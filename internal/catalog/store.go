// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package catalog

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database record of a catalog row
type starRecord struct {
	ID         uint   `gorm:"primaryKey"`
	Catalog    string `gorm:"index:idx_stars_catalog;not null"`
	HIP        int64
	HasHIP     bool
	RAHours    float64
	DecDegrees float64
	Magnitude  float64 `gorm:"index:idx_stars_magnitude"`
	BV         float64
	HasBV      bool
	PMRA       float64
	PMDec      float64
	Parallax   float64
}

func (starRecord) TableName() string { return "stars" }

func recordFromRow(id ID, r Row) starRecord {
	return starRecord{
		Catalog: string(id), HIP: r.ID, HasHIP: r.HasID,
		RAHours: r.RAHours, DecDegrees: r.DecDegrees, Magnitude: r.Magnitude,
		BV: r.BV, HasBV: r.HasBV, PMRA: r.PMRA, PMDec: r.PMDec, Parallax: r.Parallax,
	}
}

func (s *starRecord) row() Row {
	return Row{
		ID: s.HIP, HasID: s.HasHIP,
		RAHours: s.RAHours, DecDegrees: s.DecDegrees, Magnitude: s.Magnitude,
		BV: s.BV, HasBV: s.HasBV, PMRA: s.PMRA, PMDec: s.PMDec, Parallax: s.Parallax,
	}
}

// A SQLite database holding any number of star catalogs
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Opens the SQLite catalog database at the given path, creating it if needed.
// An empty path opens a shared in-memory database.
func OpenStore(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		CreateBatchSize:        2000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening catalog database %q: %w", path, err)
	}
	if err := db.AutoMigrate(&starRecord{}); err != nil {
		return nil, fmt.Errorf("migrating catalog database %q: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("Opened catalog database")
	return &Store{db: db, log: log}, nil
}

// Replaces the catalog with the given ID by the given rows
func (s *Store) Import(id ID, rows []Row) error {
	recs := make([]starRecord, len(rows))
	for i, r := range rows {
		recs[i] = recordFromRow(id, r)
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("catalog = ?", string(id)).Delete(&starRecord{}).Error; err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}
		return tx.CreateInBatches(recs, 2000).Error
	})
	if err != nil {
		return fmt.Errorf("importing catalog %s: %w", id, err)
	}
	s.log.Info().Str("catalog", string(id)).Int("rows", len(rows)).Msg("Imported catalog")
	return nil
}

// Loads the catalog with the given ID. Returns ErrUnknownCatalog if it holds no rows
func (s *Store) Load(id ID) (*Catalog, error) {
	var recs []starRecord
	if err := s.db.Where("catalog = ?", string(id)).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", id, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: %s not in database", ErrUnknownCatalog, id)
	}
	rows := make([]Row, len(recs))
	for i := range recs {
		rows[i] = recs[i].row()
	}
	return &Catalog{ID: id, Rows: rows}, nil
}

// Lists the IDs of all catalogs in the store
func (s *Store) Catalogs() ([]ID, error) {
	var names []string
	if err := s.db.Model(&starRecord{}).Distinct("catalog").Order("catalog").Pluck("catalog", &names).Error; err != nil {
		return nil, err
	}
	ids := make([]ID, len(names))
	for i, n := range names {
		ids[i] = ID(n)
	}
	return ids, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return errors.New("catalog database not open")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
