package repositories

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"

	"socialdb/internal/models"
)

// Table names, also used in error messages.
const (
	usersTable       = "users"
	profilesTable    = "profiles"
	postsTable       = "posts"
	memberTypesTable = "member_types"
)

const (
	idIndex  = "id"
	seqIndex = "seq"
)

// IDFunc allocates a fresh record id.
type IDFunc func() string

// DB is the in-memory aggregate owning one table per entity kind. Write
// transactions are serialized; readers always observe a committed snapshot.
type DB struct {
	mem      *memdb.MemDB
	seq      *atomic.Uint64
	newID    IDFunc
	onDelete DeleteHook
}

// DeleteHook is called before a record is deleted. A non-nil error aborts the
// delete and the transaction it runs in.
type DeleteHook func(table, id string) error

// Option configures a DB.
type Option func(*DB)

// WithIDFunc replaces the uuid generator, mostly for tests.
func WithIDFunc(fn IDFunc) Option {
	return func(db *DB) { db.newID = fn }
}

// WithDeleteHook installs fn in front of every delete. Tests use it to make a
// single step of a larger transaction fail.
func WithDeleteHook(fn DeleteHook) Option {
	return func(db *DB) { db.onDelete = fn }
}

// NewDB creates an empty store.
func NewDB(opts ...Option) (*DB, error) {
	mem, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory database: %w", err)
	}
	db := &DB{
		mem:   mem,
		seq:   new(atomic.Uint64),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db, nil
}

// SeedMemberTypes inserts the given tiers, keeping their ids.
func (db *DB) SeedMemberTypes(types []models.MemberType) error {
	return db.Update(func(tx *Tx) error {
		for _, mt := range types {
			if _, err := tx.MemberTypes().Insert(mt); err != nil {
				return fmt.Errorf("failed to seed member type %s: %w", mt.ID, err)
			}
		}
		return nil
	})
}

func (db *DB) Users() *Store[models.User] {
	return newStore(db, nil, usersTable, models.UserFields, userKind)
}

func (db *DB) Profiles() *Store[models.Profile] {
	return newStore(db, nil, profilesTable, models.ProfileFields, profileKind)
}

func (db *DB) Posts() *Store[models.Post] {
	return newStore(db, nil, postsTable, models.PostFields, postKind)
}

func (db *DB) MemberTypes() *Store[models.MemberType] {
	return newStore(db, nil, memberTypesTable, models.MemberTypeFields, memberTypeKind)
}

// Update runs fn inside a single write transaction. Every change fn makes is
// committed together when it returns nil and discarded otherwise.
func (db *DB) Update(fn func(tx *Tx) error) error {
	txn := db.mem.Txn(true)
	defer txn.Abort()

	if err := fn(&Tx{txn: txn, db: db, write: true}); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// View runs fn against a read-only snapshot.
func (db *DB) View(fn func(tx *Tx) error) error {
	txn := db.mem.Txn(false)
	defer txn.Abort()
	return fn(&Tx{txn: txn, db: db})
}

// Snapshot returns a point-in-time copy sharing no mutable state with db.
// It is meant for concurrent readers that must agree on one version.
func (db *DB) Snapshot() *DB {
	return &DB{mem: db.mem.Snapshot(), seq: db.seq, newID: db.newID, onDelete: db.onDelete}
}

// Tx is an open transaction. Stores obtained from it read and write through
// the transaction.
type Tx struct {
	txn   *memdb.Txn
	db    *DB
	write bool
}

func (tx *Tx) Users() *Store[models.User] {
	return newStore(tx.db, tx, usersTable, models.UserFields, userKind)
}

func (tx *Tx) Profiles() *Store[models.Profile] {
	return newStore(tx.db, tx, profilesTable, models.ProfileFields, profileKind)
}

func (tx *Tx) Posts() *Store[models.Post] {
	return newStore(tx.db, tx, postsTable, models.PostFields, postKind)
}

func (tx *Tx) MemberTypes() *Store[models.MemberType] {
	return newStore(tx.db, tx, memberTypesTable, models.MemberTypeFields, memberTypeKind)
}

// row is what a table actually stores: the record plus its insertion
// sequence number.
type row[T any] struct {
	ID     string
	Seq    uint64
	Record T
}

func (r *row[T]) sequence() uint64 { return r.Seq }

type sequenced interface {
	sequence() uint64
}

// seqIndexer encodes the sequence big-endian so that index order equals
// insertion order.
type seqIndexer struct{}

func (seqIndexer) FromObject(obj interface{}) (bool, []byte, error) {
	s, ok := obj.(sequenced)
	if !ok {
		return false, nil, fmt.Errorf("object %T has no sequence", obj)
	}
	return true, encodeSeq(s.sequence()), nil
}

func (seqIndexer) FromArgs(args ...interface{}) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("must provide only a single argument")
	}
	v, ok := args[0].(uint64)
	if !ok {
		return nil, fmt.Errorf("argument must be a uint64: %#v", args[0])
	}
	return encodeSeq(v), nil
}

func encodeSeq(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func schema() *memdb.DBSchema {
	tables := []string{usersTable, profilesTable, postsTable, memberTypesTable}
	s := &memdb.DBSchema{Tables: make(map[string]*memdb.TableSchema, len(tables))}
	for _, name := range tables {
		s.Tables[name] = &memdb.TableSchema{
			Name: name,
			Indexes: map[string]*memdb.IndexSchema{
				idIndex: {
					Name:    idIndex,
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				seqIndex: {
					Name:    seqIndex,
					Unique:  true,
					Indexer: seqIndexer{},
				},
			},
		}
	}
	return s
}
