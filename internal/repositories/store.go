package repositories

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-memdb"

	"socialdb/internal/models"
	"socialdb/internal/query"
)

// Record is implemented by every entity kind the store holds.
type Record[T any] interface {
	Clone() T
}

// Patch is a partial update applied to a private copy of a stored record.
type Patch[T any] interface {
	Apply(*T)
}

type kind[T any] struct {
	name  string
	setID func(*T, string)
}

var (
	userKind       = kind[models.User]{name: "user", setID: func(u *models.User, id string) { u.ID = id }}
	profileKind    = kind[models.Profile]{name: "profile", setID: func(p *models.Profile, id string) { p.ID = id }}
	postKind       = kind[models.Post]{name: "post", setID: func(p *models.Post, id string) { p.ID = id }}
	memberTypeKind = kind[models.MemberType]{name: "member type", setID: func(m *models.MemberType, id string) { m.ID = id }}
)

var errReadOnly = errors.New("write attempted in a read-only transaction")

// Store is the collection of one entity kind. Values passed in are copied
// before they are stored and values handed out are copies, so callers never
// share memory with the table.
//
// A Store obtained from DB runs each call in its own transaction; one
// obtained from a Tx runs inside that transaction.
type Store[T Record[T]] struct {
	db     *DB
	tx     *Tx
	table  string
	fields query.Fields[T]
	kind   kind[T]
}

func newStore[T Record[T]](db *DB, tx *Tx, table string, fields query.Fields[T], k kind[T]) *Store[T] {
	return &Store[T]{db: db, tx: tx, table: table, fields: fields, kind: k}
}

func (s *Store[T]) read(fn func(txn *memdb.Txn) error) error {
	if s.tx != nil {
		return fn(s.tx.txn)
	}
	txn := s.db.mem.Txn(false)
	defer txn.Abort()
	return fn(txn)
}

func (s *Store[T]) write(fn func(txn *memdb.Txn) error) error {
	if s.tx != nil {
		if !s.tx.write {
			return errReadOnly
		}
		return fn(s.tx.txn)
	}
	txn := s.db.mem.Txn(true)
	defer txn.Abort()
	if err := fn(txn); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// Create stores rec under a freshly allocated id and returns the stored copy.
func (s *Store[T]) Create(rec T) (*T, error) {
	return s.insert(rec, s.db.newID())
}

// Insert stores rec under the id it already carries. It is used to seed
// fixed records such as member types.
func (s *Store[T]) Insert(rec T) (*T, error) {
	id, _ := s.fields["id"](&rec).(string)
	if id == "" {
		return nil, fmt.Errorf("%s id is required: %w", s.kind.name, models.ErrInvalidInput)
	}
	return s.insert(rec, id)
}

func (s *Store[T]) insert(rec T, id string) (*T, error) {
	stored := rec.Clone()
	s.kind.setID(&stored, id)

	err := s.write(func(txn *memdb.Txn) error {
		existing, err := txn.First(s.table, idIndex, id)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%s with ID %s already exists: %w", s.kind.name, id, models.ErrConflict)
		}
		return txn.Insert(s.table, &row[T]{ID: id, Seq: s.db.seq.Add(1), Record: stored})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", s.kind.name, err)
	}
	out := stored.Clone()
	return &out, nil
}

// FindMany returns copies of every record matching p, in insertion order.
// A nil predicate matches everything.
func (s *Store[T]) FindMany(p *query.Predicate) ([]T, error) {
	var out []T
	err := s.read(func(txn *memdb.Txn) error {
		it, err := txn.Get(s.table, seqIndex)
		if err != nil {
			return err
		}
		out = make([]T, 0)
		for obj := it.Next(); obj != nil; obj = it.Next() {
			r := obj.(*row[T])
			ok, err := query.Evaluate(s.fields, &r.Record, p)
			if err != nil {
				return err
			}
			if ok {
				out = append(out, r.Record.Clone())
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s records (%s): %w", s.kind.name, p, err)
	}
	return out, nil
}

// FindOne returns the first match in insertion order, or nil when nothing
// matches.
func (s *Store[T]) FindOne(p *query.Predicate) (*T, error) {
	if p != nil && p.Op == query.OpEquals && p.Key == "id" {
		id, ok := p.Value.(string)
		if !ok {
			return nil, nil
		}
		rec, err := s.FindByID(id)
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return rec, err
	}

	var out *T
	err := s.read(func(txn *memdb.Txn) error {
		it, err := txn.Get(s.table, seqIndex)
		if err != nil {
			return err
		}
		for obj := it.Next(); obj != nil; obj = it.Next() {
			r := obj.(*row[T])
			ok, err := query.Evaluate(s.fields, &r.Record, p)
			if err != nil {
				return err
			}
			if ok {
				c := r.Record.Clone()
				out = &c
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s records (%s): %w", s.kind.name, p, err)
	}
	return out, nil
}

// FindByID returns the record with the given id or an ErrNotFound error.
func (s *Store[T]) FindByID(id string) (*T, error) {
	var out *T
	err := s.read(func(txn *memdb.Txn) error {
		r, err := s.lookup(txn, id)
		if err != nil {
			return err
		}
		c := r.Record.Clone()
		out = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Change applies patch to the record with the given id and stores the result.
// The record keeps its id and its position in listing order.
func (s *Store[T]) Change(id string, patch Patch[T]) (*T, error) {
	var out T
	err := s.write(func(txn *memdb.Txn) error {
		r, err := s.lookup(txn, id)
		if err != nil {
			return err
		}
		next := r.Record.Clone()
		patch.Apply(&next)
		s.kind.setID(&next, id)

		if err := txn.Insert(s.table, &row[T]{ID: id, Seq: r.Seq, Record: next}); err != nil {
			return fmt.Errorf("failed to update %s with ID %s: %w", s.kind.name, id, err)
		}
		out = next.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the record with the given id and returns it.
func (s *Store[T]) Delete(id string) (*T, error) {
	var out T
	err := s.write(func(txn *memdb.Txn) error {
		r, err := s.lookup(txn, id)
		if err != nil {
			return err
		}
		if s.db.onDelete != nil {
			if err := s.db.onDelete(s.table, id); err != nil {
				return fmt.Errorf("failed to delete %s with ID %s: %w", s.kind.name, id, err)
			}
		}
		if err := txn.Delete(s.table, r); err != nil {
			return fmt.Errorf("failed to delete %s with ID %s: %w", s.kind.name, id, err)
		}
		out = r.Record.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Count returns the number of stored records.
func (s *Store[T]) Count() (int, error) {
	n := 0
	err := s.read(func(txn *memdb.Txn) error {
		it, err := txn.Get(s.table, idIndex)
		if err != nil {
			return err
		}
		for obj := it.Next(); obj != nil; obj = it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s records: %w", s.kind.name, err)
	}
	return n, nil
}

func (s *Store[T]) lookup(txn *memdb.Txn, id string) (*row[T], error) {
	obj, err := txn.First(s.table, idIndex, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s by ID %s: %w", s.kind.name, id, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%s with ID %s %w", s.kind.name, id, models.ErrNotFound)
	}
	return obj.(*row[T]), nil
}
