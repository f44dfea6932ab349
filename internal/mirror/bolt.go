package mirror

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// Bolt is a Mirror backed by a BoltDB file. One bucket per store, keyed by
// big-endian id so cursor order equals id order.
type Bolt struct {
	db     *bolt.DB
	bucket []byte
}

var _ Mirror = (*Bolt)(nil)

// boltRow is the stored value format: the entry name plus its JSON data.
type boltRow struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

// OpenBolt creates or opens a BoltDB file at the given path and binds the
// mirror to the bucket named after the store.
func OpenBolt(path, store string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Bolt{db: db, bucket: []byte(store)}, nil
}

// idKey encodes an id as a big-endian key so lexicographic bucket order
// matches numeric id order.
func idKey(id int64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], uint64(id))
	return k[:]
}

// EnsureSchema creates the store's bucket if it does not exist. Idempotent.
func (b *Bolt) EnsureSchema(ctx context.Context) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(b.bucket)
		return err
	})
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// LoadAll returns all mirrored rows ordered by id ascending.
func (b *Bolt) LoadAll(ctx context.Context) ([]Row, error) {
	out := []Row{}
	err := b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.bucket)
		if bk == nil {
			return nil
		}
		return bk.ForEach(func(k, v []byte) error {
			var r boltRow
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("decode row: %w", err)
			}
			out = append(out, Row{
				ID:   int64(binary.BigEndian.Uint64(k)),
				Name: r.Name,
				Data: string(r.Data),
			})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	return out, nil
}

func (b *Bolt) put(id int64, name, data string) error {
	val, err := json.Marshal(boltRow{Name: name, Data: json.RawMessage(data)})
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.bucket)
		if bk == nil {
			return bolt.ErrBucketNotFound
		}
		return bk.Put(idKey(id), val)
	})
}

// Insert writes a new row.
func (b *Bolt) Insert(ctx context.Context, id int64, name, data string) error {
	if err := b.put(id, name, data); err != nil {
		return fmt.Errorf("insert row: %w", err)
	}
	return nil
}

// Replace upserts a row keyed by id. In Bolt this is the same Put as Insert.
func (b *Bolt) Replace(ctx context.Context, id int64, name, data string) error {
	if err := b.put(id, name, data); err != nil {
		return fmt.Errorf("replace row: %w", err)
	}
	return nil
}

// DeleteID removes the row with the given id.
func (b *Bolt) DeleteID(ctx context.Context, id int64) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.bucket)
		if bk == nil {
			return nil
		}
		return bk.Delete(idKey(id))
	})
	if err != nil {
		return fmt.Errorf("delete row by id: %w", err)
	}
	return nil
}

// DeleteName removes the row with the given name. Bolt has no secondary
// index, so this scans the bucket.
func (b *Bolt) DeleteName(ctx context.Context, name string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.bucket)
		if bk == nil {
			return nil
		}
		// Mutating the bucket mid-iteration invalidates the cursor,
		// so find the key first and delete after.
		var match []byte
		c := bk.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var r boltRow
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("decode row: %w", err)
			}
			if r.Name == name {
				match = append([]byte(nil), k...)
				break
			}
		}
		if match == nil {
			return nil
		}
		return bk.Delete(match)
	})
	if err != nil {
		return fmt.Errorf("delete row by name: %w", err)
	}
	return nil
}

// DeleteRange removes all rows with lo <= id <= hi.
func (b *Bolt) DeleteRange(ctx context.Context, lo, hi int64) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.bucket)
		if bk == nil {
			return nil
		}
		var keys [][]byte
		c := bk.Cursor()
		for k, _ := c.Seek(idKey(lo)); k != nil; k, _ = c.Next() {
			if int64(binary.BigEndian.Uint64(k)) > hi {
				break
			}
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := bk.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete row range: %w", err)
	}
	return nil
}

// Clear removes every row by dropping and recreating the bucket.
func (b *Bolt) Clear(ctx context.Context) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(b.bucket) != nil {
			if err := tx.DeleteBucket(b.bucket); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucketIfNotExists(b.bucket)
		return err
	})
	if err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}
	return nil
}

// Close closes the database file.
func (b *Bolt) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}
