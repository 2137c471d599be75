package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/bazario/settlement-daemon/internal/core/domain"
	"github.com/bazario/settlement-daemon/internal/core/ports"
)

// repoManager holds all the badgerhold stores in a single data structure.
type repoManager struct {
	escrowStore *badgerhold.Store
	rateStore   *badgerhold.Store

	escrowRepository domain.EscrowRepository
	quoteRepository  domain.QuoteRepository
	rateRepository   domain.RateRepository
}

// NewRepoManager opens (or creates if not exists) the badger stores on disk
// under the given base data dir, one dedicated directory for settlements and
// one for the rate history.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	escrowStore, err := createDb(baseDbDir+"/settlements", logger)
	if err != nil {
		return nil, fmt.Errorf("opening settlements db: %w", err)
	}

	rateStore, err := createDb(baseDbDir+"/rates", logger)
	if err != nil {
		escrowStore.Close()
		return nil, fmt.Errorf("opening rates db: %w", err)
	}

	return &repoManager{
		escrowStore:      escrowStore,
		rateStore:        rateStore,
		escrowRepository: newEscrowRepositoryImpl(escrowStore),
		quoteRepository:  newQuoteRepositoryImpl(escrowStore),
		rateRepository:   newRateRepositoryImpl(rateStore),
	}, nil
}

func (d *repoManager) EscrowRepository() domain.EscrowRepository {
	return d.escrowRepository
}

func (d *repoManager) QuoteRepository() domain.QuoteRepository {
	return d.quoteRepository
}

func (d *repoManager) RateRepository() domain.RateRepository {
	return d.rateRepository
}

func (d *repoManager) Close() error {
	if err := d.escrowStore.Close(); err != nil {
		return err
	}
	return d.rateStore.Close()
}

// JSONEncode is a custom JSON based encoder for badger.
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)
	if err := en.Encode(value); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger.
func JSONDecode(data []byte, value interface{}) error {
	de := json.NewDecoder(bytes.NewReader(data))
	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
