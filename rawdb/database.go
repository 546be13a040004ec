package rawdb

import (
	"errors"

	"github.com/everFinance/names/common"
	"github.com/everFinance/names/schema"
)

var log = common.NewLog("rawdb")

type KeyValueDB interface {
	Put(bucket, key string, value []byte) (err error)

	Get(bucket, key string) (data []byte, err error)

	GetAllKey(bucket string) (keys []string, err error)

	Delete(bucket, key string) (err error)

	// Batch applies every op or none of them.
	Batch(ops []Op) (err error)

	Close() (err error)

	Type() string

	Exist(bucket, key string) bool
}

// Op is one write of a batch. Delete ops ignore Value.
type Op struct {
	Bucket string
	Key    string
	Value  []byte
	Delete bool
}

// applySequential is used by backends without multi-key transactions.
// Applied ops are undone in reverse order when a later op fails.
func applySequential(db KeyValueDB, ops []Op) error {
	undo := make([]Op, 0, len(ops))
	for _, op := range ops {
		prev, err := db.Get(op.Bucket, op.Key)
		switch {
		case err == nil:
			undo = append(undo, Op{Bucket: op.Bucket, Key: op.Key, Value: prev})
		case errors.Is(err, schema.ErrNotExist):
			undo = append(undo, Op{Bucket: op.Bucket, Key: op.Key, Delete: true})
		default:
			rollbackOps(db, undo)
			return err
		}

		if op.Delete {
			err = db.Delete(op.Bucket, op.Key)
		} else {
			err = db.Put(op.Bucket, op.Key, op.Value)
		}
		if err != nil {
			rollbackOps(db, undo)
			return err
		}
	}
	return nil
}

func rollbackOps(db KeyValueDB, undo []Op) {
	for i := len(undo) - 1; i >= 0; i-- {
		op := undo[i]
		var err error
		if op.Delete {
			err = db.Delete(op.Bucket, op.Key)
		} else {
			err = db.Put(op.Bucket, op.Key, op.Value)
		}
		if err != nil {
			log.Error("rollback batch op failed", "type", db.Type(), "bucket", op.Bucket, "key", op.Key, "err", err)
		}
	}
}
