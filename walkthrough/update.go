package walkthrough

import (
	"context"

	"github.com/kbukum/syncstream/logger"
	"github.com/kbukum/syncstream/memstore"
	"github.com/kbukum/syncstream/subscriber"
)

// RunUpdate updates single and multiple documents, adds fields, replaces a
// document and prints the collection between rounds.
func (r *Runner) RunUpdate(ctx context.Context) error {
	t := r.cfg.Update
	coll := r.collection(t)

	r.update(ctx, "update one", coll.UpdateOne(memstore.Eq("color", "red"), memstore.Set("qty", 10)))
	r.update(ctx, "update many", coll.UpdateMany(memstore.Eq("qty", 5), memstore.Set("qty", 15)))
	if err := r.PrintAll(ctx, t); err != nil {
		return err
	}

	r.update(ctx, "update one add field", coll.UpdateOne(memstore.Eq("color", "green"), memstore.Set("hex", "#00ff00")))
	r.update(ctx, "update many add field", coll.UpdateMany(memstore.All(), memstore.Set("inventory.checked", true)))
	if err := r.PrintAll(ctx, t); err != nil {
		return err
	}

	r.update(ctx, "replace one", coll.ReplaceOne(memstore.Eq("color", "purple"), memstore.Document{"color": "pink", "qty": 3}))
	return nil
}

func (r *Runner) update(ctx context.Context, op string, p subscriber.Publisher[memstore.UpdateResult]) {
	log := r.targetLog(r.cfg.Update)
	res, ok, err := awaitFirst(ctx, r, op, p)
	if err != nil {
		log.Error(err.Error(), logger.Fields(logger.FieldOperation, op))
		return
	}
	if ok {
		log.Info("Updated documents", logger.Fields(
			logger.FieldOperation, op,
			"matched", res.MatchedCount,
			"modified", res.ModifiedCount,
		))
	}
}
