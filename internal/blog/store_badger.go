package blog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	badgerstore "github.com/taibuivan/blogapi/internal/platform/badger"
	"github.com/taibuivan/blogapi/internal/platform/constants"
	"github.com/taibuivan/blogapi/internal/platform/dberr"
	"github.com/taibuivan/blogapi/pkg/uuid"
)

// BadgerRepository stores each post as a JSON value under "post:<id>".
// Ids are UUIDv7, so key order is creation order.
type BadgerRepository struct {
	db *badger.DB
}

func NewBadgerRepository(db *badger.DB) *BadgerRepository {
	return &BadgerRepository{db: db}
}

func badgerKey(id string) []byte {
	return []byte(constants.BadgerPostPrefix + id)
}

func (repository *BadgerRepository) ListPosts(ctx context.Context) ([]*Post, error) {
	posts := make([]*Post, 0)

	err := repository.db.View(func(txn *badger.Txn) error {
		prefix := []byte(constants.BadgerPostPrefix)
		it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix, PrefetchValues: true, PrefetchSize: 100})
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var p Post
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			}); err != nil {
				return err
			}
			posts = append(posts, &p)
		}
		return nil
	})
	if err != nil {
		return nil, dberr.Wrap(err, "list_posts")
	}

	return posts, nil
}

func (repository *BadgerRepository) GetPost(ctx context.Context, id string) (*Post, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}

	var p Post

	err := repository.db.View(func(txn *badger.Txn) error {
		return readPost(txn, id, &p)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "get_post")
	}

	return &p, nil
}

func (repository *BadgerRepository) CreatePost(ctx context.Context, p *Post) error {
	now := time.Now().UTC()
	stored := *p
	stored.ID = uuid.New()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	err := repository.db.Update(func(txn *badger.Txn) error {
		return writePost(txn, &stored)
	})
	if err != nil {
		return dberr.Wrap(err, "create_post")
	}

	*p = stored
	return nil
}

// UpdatePost reads, patches and writes back inside one read-write
// transaction; Badger aborts it with ErrConflict if another writer touched
// the key in between.
func (repository *BadgerRepository) UpdatePost(ctx context.Context, id string, patch PostPatch) error {
	if !uuid.Valid(id) {
		return dberr.ErrNotFound
	}

	err := repository.db.Update(func(txn *badger.Txn) error {
		var p Post
		if err := readPost(txn, id, &p); err != nil {
			return err
		}

		patch.Apply(&p)
		p.UpdatedAt = time.Now().UTC()
		return writePost(txn, &p)
	})

	return dberr.Wrap(err, "update_post")
}

func (repository *BadgerRepository) DeletePost(ctx context.Context, id string) error {
	if !uuid.Valid(id) {
		return nil
	}

	err := repository.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(id))
	})

	return dberr.Wrap(err, "delete_post")
}

func (repository *BadgerRepository) Ping(ctx context.Context) error {
	return badgerstore.Ping(repository.db)
}

func readPost(txn *badger.Txn, id string, p *Post) error {
	item, err := txn.Get(badgerKey(id))
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, p)
	})
}

func writePost(txn *badger.Txn, p *Post) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return txn.Set(badgerKey(p.ID), data)
}
