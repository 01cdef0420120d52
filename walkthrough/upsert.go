package walkthrough

import (
	"context"

	"github.com/kbukum/syncstream/logger"
	"github.com/kbukum/syncstream/memstore"
	"github.com/kbukum/syncstream/subscriber"
)

// upsertColors seeds the upsert session. None of them is orange.
var upsertColors = []memstore.Document{
	{"color": "red", "qty": 5},
	{"color": "purple", "qty": 8},
	{"color": "blue", "qty": 0},
	{"color": "white", "qty": 0},
	{"color": "yellow", "qty": 6},
	{"color": "pink", "qty": 0},
	{"color": "green", "qty": 0},
	{"color": "black", "qty": 8},
}

// RunUpsert seeds colors, upserts orange twice (the first call inserts, the
// second increments) and empties the collection.
func (r *Runner) RunUpsert(ctx context.Context) error {
	t := r.cfg.Upsert
	log := r.targetLog(t)
	coll := r.collection(t)

	res, ok, err := awaitFirst(ctx, r, "seed", coll.InsertMany(upsertColors))
	switch {
	case err != nil:
		log.Error(err.Error(), logger.Fields(logger.FieldOperation, "seed"))
	case ok:
		log.Info("Seeded documents", logger.Fields(logger.FieldElements, len(res.InsertedIDs)))
	}
	if err := r.PrintAll(ctx, t); err != nil {
		return err
	}

	orange := memstore.Eq("color", "orange")
	seed := memstore.Document{"color": "orange"}
	r.upsert(ctx, "upsert that inserts", coll.UpsertOne(orange, seed, memstore.Inc("qty", 10)))
	if err := r.PrintAll(ctx, t); err != nil {
		return err
	}
	r.upsert(ctx, "upsert that updates", coll.UpsertOne(orange, seed, memstore.Inc("qty", 15)))
	if err := r.PrintAll(ctx, t); err != nil {
		return err
	}

	if res, _, err := awaitFirst(ctx, r, "delete all", coll.DeleteMany(nil)); err != nil {
		log.Error(err.Error(), logger.Fields(logger.FieldOperation, "delete all"))
	} else {
		log.Info("Deleted documents", logger.Fields("deleted", res.DeletedCount))
	}
	return nil
}

func (r *Runner) upsert(ctx context.Context, op string, p subscriber.Publisher[memstore.UpdateResult]) {
	log := r.targetLog(r.cfg.Upsert)
	res, ok, err := awaitFirst(ctx, r, op, p)
	if err != nil {
		log.Error(err.Error(), logger.Fields(logger.FieldOperation, op))
		return
	}
	if !ok {
		return
	}
	if res.UpsertedID != "" {
		log.Info("Upserted document", logger.Fields(logger.FieldOperation, op, "id", res.UpsertedID))
		return
	}
	log.Info("Updated documents", logger.Fields(
		logger.FieldOperation, op,
		"matched", res.MatchedCount,
		"modified", res.ModifiedCount,
	))
}
