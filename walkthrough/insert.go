package walkthrough

import (
	"context"

	"github.com/google/uuid"

	"github.com/kbukum/syncstream/logger"
	"github.com/kbukum/syncstream/memstore"
)

// RunInsert ensures the insert collection exists, inserts single and
// batched documents and prints the collection.
func (r *Runner) RunInsert(ctx context.Context) error {
	t := r.cfg.Insert
	if err := r.EnsureCollection(ctx, t); err != nil {
		return err
	}
	r.insertOneDocument(ctx)
	r.insertMultipleDocuments(ctx)
	return r.PrintAll(ctx, t)
}

func (r *Runner) insertOneDocument(ctx context.Context) {
	t := r.cfg.Insert
	log := r.targetLog(t)

	docs := []memstore.Document{
		{"color": "red", "qty": 5},
		{memstore.IDField: uuid.NewString(), "color": "orange", "qty": 6},
	}
	for _, doc := range docs {
		// A new subscriber per operation.
		res, ok, err := awaitFirst(ctx, r, "insert-one", r.collection(t).InsertOne(doc))
		if err != nil {
			log.Error(err.Error(), logger.Fields(logger.FieldOperation, "insert one"))
			continue
		}
		if ok {
			log.Info("Inserted document", logger.Fields("id", res.InsertedID))
		}
	}
}

func (r *Runner) insertMultipleDocuments(ctx context.Context) {
	t := r.cfg.Insert
	log := r.targetLog(t)

	res, ok, err := awaitFirst(ctx, r, "insert-many", r.collection(t).InsertMany([]memstore.Document{
		{"color": "blue", "qty": 5},
		{"color": "purple", "qty": 8},
		{"color": "green", "qty": 9},
		{"color": "yellow", "qty": 5},
	}))
	if err != nil {
		log.Error(err.Error(), logger.Fields(logger.FieldOperation, "insert many"))
		return
	}
	if ok {
		for _, id := range res.InsertedIDs {
			log.Info("Inserted document", logger.Fields("id", id))
		}
	}
}
