package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/mppt2go/internal/load"
	"github.com/markusressel/mppt2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketTelemetry = "telemetry"
)

// TelemetryRecord is one captured sample of the system state.
type TelemetryRecord struct {
	Time time.Time `json:"time"`

	WindSpeed     float64 `json:"windSpeed"`
	WindGust      float64 `json:"windGust"`
	WindDirection float64 `json:"windDirection"`

	Voltage     float64    `json:"voltage"`
	Power       float64    `json:"power"`
	LoadState   load.State `json:"loadState"`
	RisingCycle bool       `json:"risingCycle"`
}

type Persistence interface {
	Init() error

	SaveTelemetryRecord(record TelemetryRecord) (err error)
	// LoadTelemetryHistory returns the most recent records in
	// chronological order, at most limit entries. limit <= 0 returns
	// everything.
	LoadTelemetryHistory(limit int) ([]TelemetryRecord, error)
	DeleteTelemetryHistory() (err error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (p persistence) SaveTelemetryRecord(record TelemetryRecord) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	// keys sort chronologically
	key := fmt.Sprintf("%020d", record.Time.UnixNano())

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketTelemetry))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		err = b.Put([]byte(key), data)
		return err
	})
}

func (p persistence) LoadTelemetryHistory(limit int) ([]TelemetryRecord, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var records []TelemetryRecord
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketTelemetry))
		if b == nil {
			return os.ErrNotExist
		}

		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(records) >= limit {
				break
			}

			var record TelemetryRecord
			err := json.Unmarshal(v, &record)
			if err != nil {
				// if we cannot read the saved data, delete it
				ui.Warning("Unable to unmarshal saved telemetry record %s: %v", string(k), err)
				err := b.Delete(k)
				if err != nil {
					ui.Error("Unable to delete corrupt data key %s: %v", string(k), err)
				}
				continue
			}

			records = append(records, record)
		}

		return nil
	})

	// records were collected newest first
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	return records, err
}

func (p persistence) DeleteTelemetryHistory() error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketTelemetry))
		if b == nil {
			// no telemetry bucket yet
			return nil
		}
		return tx.DeleteBucket([]byte(BucketTelemetry))
	})
}
