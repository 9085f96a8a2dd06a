package repositories

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/gachip90/employee-task-management-be/domain/staff"
)

type IOwnerRepository interface {
	SaveAccessCode(phoneNumber, code string) error
	Get(phoneNumber string) (staff.Owner, bool, error)
	MarkVerified(phoneNumber string) error
}

type OwnerRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewOwnerRepository(db *badger.DB, log *slog.Logger) OwnerRepository {
	return OwnerRepository{db: db, log: log}
}

type diskOwner struct {
	PhoneNumber string     `cbor:"phone_number"`
	AccessCode  string     `cbor:"access_code"`
	IsVerified  bool       `cbor:"is_verified"`
	CreatedAt   time.Time  `cbor:"created_at"`
	LastLogin   *time.Time `cbor:"last_login"`
}

func ownerKey(phoneNumber string) []byte {
	return []byte(fmt.Sprintf("owner:%s", phoneNumber))
}

// SaveAccessCode upserts the owner document with a fresh pending code.
// Requesting a new code always replaces the previous one.
func (r OwnerRepository) SaveAccessCode(phoneNumber, code string) error {
	record := diskOwner{
		PhoneNumber: phoneNumber,
		AccessCode:  code,
		IsVerified:  false,
		CreatedAt:   time.Now().UTC(),
	}
	bytes, err := encode(record)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(ownerKey(phoneNumber), bytes)
	})
}

func (r OwnerRepository) Get(phoneNumber string) (staff.Owner, bool, error) {
	var owner staff.Owner
	found := false
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(ownerKey(phoneNumber))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			var record diskOwner
			if err := decode(value, &record); err != nil {
				return err
			}
			owner = staff.Owner{
				PhoneNumber: record.PhoneNumber,
				AccessCode:  record.AccessCode,
				IsVerified:  record.IsVerified,
				CreatedAt:   record.CreatedAt.UTC(),
				LastLogin:   record.LastLogin,
			}
			found = true
			return nil
		})
	})
	return owner, found, err
}

// MarkVerified clears the pending code and records the login time.
func (r OwnerRepository) MarkVerified(phoneNumber string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(ownerKey(phoneNumber))
		if err != nil {
			return err
		}
		var record diskOwner
		if err = item.Value(func(value []byte) error {
			return decode(value, &record)
		}); err != nil {
			return err
		}
		now := time.Now().UTC()
		record.AccessCode = ""
		record.IsVerified = true
		record.LastLogin = &now
		bytes, err := encode(record)
		if err != nil {
			return err
		}
		return txn.Set(ownerKey(phoneNumber), bytes)
	})
}
