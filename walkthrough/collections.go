package walkthrough

import (
	"context"
	"slices"

	"github.com/kbukum/syncstream/errors"
	"github.com/kbukum/syncstream/logger"
)

// EnsureCollection creates t's collection unless it exists.
func (r *Runner) EnsureCollection(ctx context.Context, t Target) error {
	exists, err := r.CollectionExists(ctx, t)
	if err != nil {
		return err
	}
	if !exists {
		r.createCollection(ctx, t)
	}
	return nil
}

// CollectionExists reports whether t's collection exists. A failed listing
// is returned as a STREAM_FAILED error.
func (r *Runner) CollectionExists(ctx context.Context, t Target) (bool, error) {
	log := r.targetLog(t)
	names, err := await(ctx, r, "list-collections", r.client.Database(t.DB).ListCollectionNames())
	if err != nil {
		log.Error(err.Error())
		return false, errors.StreamFailed("list collections", err)
	}
	if slices.Contains(names, t.Collection) {
		log.Info("Collection exists")
		return true, nil
	}
	log.Warn("Collection does not exist")
	return false, nil
}

func (r *Runner) createCollection(ctx context.Context, t Target) {
	log := r.targetLog(t)
	if _, err := await(ctx, r, "create-collection", r.client.Database(t.DB).CreateCollection(t.Collection)); err != nil {
		log.Error(err.Error(), logger.Fields(logger.FieldOperation, "create collection"))
		return
	}
	log.Info("Collection created")
}

// DropCollection drops t's collection and logs the outcome.
func (r *Runner) DropCollection(ctx context.Context, t Target) {
	log := r.targetLog(t)
	if _, err := await(ctx, r, "drop-collection", r.collection(t).Drop()); err != nil {
		log.Error(err.Error(), logger.Fields(logger.FieldOperation, "drop collection"))
		return
	}
	log.Info("Collection dropped")
}
