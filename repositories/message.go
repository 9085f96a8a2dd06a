//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/gachip90/employee-task-management-be/domain/chat"
)

type IMessageRepository interface {
	Store(message chat.Message) (chat.Message, error)
	Get(id uuid.UUID) (chat.Message, bool, error)
	MarkRead(id uuid.UUID) (chat.Message, bool, error)
	ListByGroup(groupID string) ([]chat.Message, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

// diskMessage is the stored record layout.
type diskMessage struct {
	ID       string     `cbor:"id"`
	GroupID  string     `cbor:"group_id"`
	Sender   string     `cbor:"sender"`
	SenderID string     `cbor:"sender_id"`
	Content  string     `cbor:"content"`
	Status   string     `cbor:"status"`
	IsRead   bool       `cbor:"is_read"`
	ReadAt   *time.Time `cbor:"read_at"`
	At       time.Time  `cbor:"at"`
}

// dataKey is formatted as "msg:{group_id}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two messages
//     arrive at the same nanosecond.
func dataKey(groupID string, at time.Time, id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("msg:%s:%019d:%s", groupID, at.UnixNano(), id))
}

// idKey is a secondary index from the message id to its data key, so that
// read receipts can find a record without knowing its timestamp.
func idKey(id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("msgid:%s", id))
}

func groupPrefix(groupID string) []byte {
	return []byte(fmt.Sprintf("msg:%s:", groupID))
}

// Store persists a new message. The timestamp is assigned here, at write
// time, and the stored record is returned so callers broadcast exactly what
// was persisted instead of recomputing a timestamp of their own.
func (m MessageRepository) Store(message chat.Message) (chat.Message, error) {
	message.Timestamp = time.Now().UTC()
	key := dataKey(message.GroupID, message.Timestamp, message.ID)
	bytes, err := encode(fromMessage(message))
	if err != nil {
		return chat.Message{}, err
	}
	err = m.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, bytes); err != nil {
			return err
		}
		return txn.Set(idKey(message.ID), key)
	})
	if err != nil {
		return chat.Message{}, err
	}
	return message, nil
}

func (m MessageRepository) Get(id uuid.UUID) (chat.Message, bool, error) {
	var message chat.Message
	found := false
	err := m.db.View(func(txn *badger.Txn) error {
		record, _, ok, err := m.lookup(txn, id)
		if err != nil || !ok {
			return err
		}
		message, found = record, true
		return nil
	})
	return message, found, err
}

// MarkRead applies the sent -> read transition. A missing message is not an
// error: found reports whether anything was there to mark. Re-marking an
// already-read message leaves the stored record untouched (first read wins)
// but still returns it, so callers can re-broadcast the receipt.
func (m MessageRepository) MarkRead(id uuid.UUID) (chat.Message, bool, error) {
	var message chat.Message
	found := false
	err := m.db.Update(func(txn *badger.Txn) error {
		record, key, ok, err := m.lookup(txn, id)
		if err != nil || !ok {
			return err
		}
		found = true
		if !record.IsRead {
			record.MarkRead(time.Now().UTC())
			bytes, err := encode(fromMessage(record))
			if err != nil {
				return err
			}
			// Write back under the key the index resolved to, so the
			// record stays unique even if the decoded timestamp ever
			// drifts from the one embedded in the key.
			if err := txn.Set(key, bytes); err != nil {
				return err
			}
		}
		message = record
		return nil
	})
	return message, found, err
}

// ListByGroup retrieves every message of a group, ascending by timestamp.
// Thanks to the padded timestamp in the key, a forward prefix scan yields
// the messages already sorted. An unknown group yields an empty slice.
func (m MessageRepository) ListByGroup(groupID string) ([]chat.Message, error) {
	var messages []chat.Message
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := groupPrefix(groupID)
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var record diskMessage
				if err := decode(value, &record); err != nil {
					return err
				}
				message, err := toMessage(record)
				if err != nil {
					return err
				}
				messages = append(messages, message)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return messages, err
}

// lookup resolves the msgid: index and returns the record together with
// the data key it lives under.
func (m MessageRepository) lookup(txn *badger.Txn, id uuid.UUID) (chat.Message, []byte, bool, error) {
	item, err := txn.Get(idKey(id))
	if err == badger.ErrKeyNotFound {
		return chat.Message{}, nil, false, nil
	}
	if err != nil {
		return chat.Message{}, nil, false, err
	}
	var key []byte
	if err = item.Value(func(value []byte) error {
		key = append([]byte(nil), value...)
		return nil
	}); err != nil {
		return chat.Message{}, nil, false, err
	}

	item, err = txn.Get(key)
	if err == badger.ErrKeyNotFound {
		// Dangling index entry; treat as absent.
		m.log.Warn("message index points to missing record", "id", id)
		return chat.Message{}, nil, false, nil
	}
	if err != nil {
		return chat.Message{}, nil, false, err
	}
	var record diskMessage
	if err = item.Value(func(value []byte) error {
		return decode(value, &record)
	}); err != nil {
		return chat.Message{}, nil, false, err
	}
	message, err := toMessage(record)
	if err != nil {
		return chat.Message{}, nil, false, err
	}
	return message, key, true, nil
}

func fromMessage(message chat.Message) diskMessage {
	return diskMessage{
		ID:       message.ID.String(),
		GroupID:  message.GroupID,
		Sender:   message.Sender,
		SenderID: message.SenderID,
		Content:  message.Content,
		Status:   string(message.Status),
		IsRead:   message.IsRead,
		ReadAt:   message.ReadAt,
		At:       message.Timestamp,
	}
}

func toMessage(record diskMessage) (chat.Message, error) {
	parsedID, err := uuid.Parse(record.ID)
	if err != nil {
		return chat.Message{}, err
	}
	return chat.Message{
		ID:        parsedID,
		GroupID:   record.GroupID,
		Sender:    record.Sender,
		SenderID:  record.SenderID,
		Content:   record.Content,
		Status:    chat.Status(record.Status),
		IsRead:    record.IsRead,
		ReadAt:    record.ReadAt,
		Timestamp: record.At.UTC(),
	}, nil
}
