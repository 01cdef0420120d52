package walkthrough

import (
	"context"

	"github.com/kbukum/syncstream/logger"
	"github.com/kbukum/syncstream/memstore"
	"github.com/kbukum/syncstream/subscriber"
)

// RunDelete deletes one document, finds and deletes another, deletes by
// quantity and finally empties the collection.
func (r *Runner) RunDelete(ctx context.Context) error {
	t := r.cfg.Delete
	coll := r.collection(t)

	r.delete(ctx, "delete one", coll.DeleteOne(memstore.Eq("color", "red")))
	r.findAndDeleteOneDocument(ctx)
	r.delete(ctx, "delete many", coll.DeleteMany(memstore.Eq("qty", 15)))
	// A nil filter matches every document.
	r.delete(ctx, "delete all", coll.DeleteMany(nil))
	return nil
}

func (r *Runner) delete(ctx context.Context, op string, p subscriber.Publisher[memstore.DeleteResult]) {
	log := r.targetLog(r.cfg.Delete)
	res, ok, err := awaitFirst(ctx, r, op, p)
	if err != nil {
		log.Error(err.Error(), logger.Fields(logger.FieldOperation, op))
		return
	}
	if ok {
		log.Info("Deleted documents", logger.Fields(
			logger.FieldOperation, op,
			"deleted", res.DeletedCount,
		))
	}
}

func (r *Runner) findAndDeleteOneDocument(ctx context.Context) {
	log := r.targetLog(r.cfg.Delete)
	doc, ok, err := awaitFirst(ctx, r, "find-one-and-delete", r.collection(r.cfg.Delete).FindOneAndDelete(memstore.Eq("color", "orange")))
	switch {
	case err != nil:
		log.Error(err.Error(), logger.Fields(logger.FieldOperation, "find one and delete"))
	case !ok:
		log.Warn("No documents with a color of orange were found")
	default:
		log.Info("Deleted document", logger.Fields("document", doc))
	}
}
