package walkthrough

import (
	"context"

	"github.com/kbukum/syncstream/logger"
	"github.com/kbukum/syncstream/memstore"
)

var sampleMovies = []memstore.Document{
	{"title": "The Room", "year": 2003, "runtime": 99, "imdb": memstore.Document{"rating": 3.5, "votes": 25673}},
	{"title": "The Room", "year": 2019, "runtime": 100, "imdb": memstore.Document{"rating": 5.7, "votes": 1234}},
	{"title": "Steamboat Willie", "year": 1928, "runtime": 8, "imdb": memstore.Document{"rating": 7.2, "votes": 11234}},
	{"title": "The Great Train Robbery", "year": 1903, "runtime": 11, "imdb": memstore.Document{"rating": 7.4, "votes": 9847}},
	{"title": "Casablanca", "year": 1942, "runtime": 102, "imdb": memstore.Document{"rating": 8.5, "votes": 420000}},
}

// RunFind finds one movie by title and then every short movie. An empty
// collection is seeded first.
func (r *Runner) RunFind(ctx context.Context) error {
	if err := r.seedMovies(ctx); err != nil {
		return err
	}
	r.findOneDocument(ctx)
	r.findMultipleDocuments(ctx)
	return nil
}

func (r *Runner) seedMovies(ctx context.Context) error {
	t := r.cfg.Find
	log := r.targetLog(t)
	count, _, err := awaitFirst(ctx, r, "count", r.collection(t).CountDocuments(nil))
	if err != nil {
		log.Error(err.Error(), logger.Fields(logger.FieldOperation, "count"))
		return err
	}
	if count > 0 {
		return nil
	}
	if _, err := await(ctx, r, "seed", r.collection(t).InsertMany(sampleMovies)); err != nil {
		log.Error(err.Error(), logger.Fields(logger.FieldOperation, "seed"))
		return err
	}
	log.Debug("seeded movies", logger.Fields(logger.FieldElements, len(sampleMovies)))
	return nil
}

func (r *Runner) findOneDocument(ctx context.Context) {
	log := r.targetLog(r.cfg.Find)
	doc, ok, err := awaitFirst(ctx, r, "find-one", r.collection(r.cfg.Find).Find(
		memstore.Eq("title", "The Room"),
		memstore.SortBy("imdb.rating", true),
		memstore.Limit(1),
		memstore.Include("title", "imdb"),
		memstore.ExcludeID(),
	))
	switch {
	case err != nil:
		log.Error(err.Error(), logger.Fields(logger.FieldOperation, "find one"))
	case !ok:
		log.Warn("No movie titled The Room was found")
	default:
		log.Info("Found document", logger.Fields("document", doc))
	}
}

func (r *Runner) findMultipleDocuments(ctx context.Context) {
	log := r.targetLog(r.cfg.Find)
	docs, err := await(ctx, r, "find-many", r.collection(r.cfg.Find).Find(
		memstore.Lt("runtime", 15),
		memstore.SortBy("title", false),
		memstore.Include("title", "runtime"),
		memstore.ExcludeID(),
	))
	if err != nil {
		log.Error(err.Error(), logger.Fields(logger.FieldOperation, "find many"))
		return
	}
	for _, d := range docs {
		log.Info("Found document", logger.Fields("document", d))
	}
	log.Info("Found short movies", logger.Fields(logger.FieldElements, len(docs)))
}
