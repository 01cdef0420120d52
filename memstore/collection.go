package memstore

import (
	"reflect"
	"sort"

	"github.com/google/uuid"

	"github.com/kbukum/syncstream/errors"
	"github.com/kbukum/syncstream/logger"
	"github.com/kbukum/syncstream/subscriber"
)

// InsertOneResult reports the id of an inserted document.
type InsertOneResult struct {
	InsertedID string
}

// InsertManyResult reports inserted ids in input order.
type InsertManyResult struct {
	InsertedIDs []string
}

// UpdateResult reports how many documents matched and how many changed.
// UpsertedID is set when an upsert inserted a new document.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
	UpsertedID    string
}

// DeleteResult reports how many documents were removed.
type DeleteResult struct {
	DeletedCount int64
}

// Collection is a handle to a set of documents. Handles are cheap and may be
// created for collections that do not exist yet.
type Collection struct {
	db   *Database
	name string
	log  *logger.Logger
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

func (c *Collection) client() *Client { return c.db.client }

// state returns the stored collection. With create it is made on demand.
// The caller holds the client lock.
func (c *Collection) state(create bool) *collection {
	cl := c.client()
	colls := cl.dbs[c.db.name]
	if coll, ok := colls[c.name]; ok || !create {
		return coll
	}
	if colls == nil {
		colls = make(map[string]*collection)
		cl.dbs[c.db.name] = colls
	}
	coll := newCollection()
	colls[c.name] = coll
	return coll
}

// Drop removes the collection and all its documents. Dropping a missing
// collection succeeds.
func (c *Collection) Drop() subscriber.Publisher[struct{}] {
	return run(c.client(), func() ([]struct{}, error) {
		cl := c.client()
		cl.mu.Lock()
		defer cl.mu.Unlock()
		if colls := cl.dbs[c.db.name]; colls != nil {
			delete(colls, c.name)
			if len(colls) == 0 {
				delete(cl.dbs, c.db.name)
			}
		}
		c.log.Debug("collection dropped")
		return nil, nil
	})
}

// InsertOne stores a copy of doc. A missing id is generated; a duplicate id
// fails with ALREADY_EXISTS.
func (c *Collection) InsertOne(doc Document) subscriber.Publisher[InsertOneResult] {
	doc = doc.Clone()
	return run(c.client(), func() ([]InsertOneResult, error) {
		ids, err := c.insert([]Document{doc})
		if err != nil {
			return nil, err
		}
		return []InsertOneResult{{InsertedID: ids[0]}}, nil
	})
}

// InsertMany stores copies of docs. Either every document is inserted or, on
// a duplicate id, none is.
func (c *Collection) InsertMany(docs []Document) subscriber.Publisher[InsertManyResult] {
	copies := make([]Document, len(docs))
	for i, d := range docs {
		copies[i] = d.Clone()
	}
	return run(c.client(), func() ([]InsertManyResult, error) {
		ids, err := c.insert(copies)
		if err != nil {
			return nil, err
		}
		return []InsertManyResult{{InsertedIDs: ids}}, nil
	})
}

func (c *Collection) insert(docs []Document) ([]string, error) {
	cl := c.client()
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return c.insertLocked(docs)
}

// insertLocked stores docs with the client lock held.
func (c *Collection) insertLocked(docs []Document) ([]string, error) {
	coll := c.state(true)
	batch := make(map[string]struct{}, len(docs))
	ids := make([]string, len(docs))
	stored := make([]Document, len(docs))
	for i, d := range docs {
		if d == nil {
			return nil, errors.InvalidInput("document", "must not be nil")
		}
		d = d.Clone()
		stored[i] = d
		id := d.ID()
		if id == "" {
			id = uuid.NewString()
			d[IDField] = id
		}
		_, exists := coll.ids[id]
		_, repeated := batch[id]
		if exists || repeated {
			return nil, errors.AlreadyExists("document", id)
		}
		batch[id] = struct{}{}
		ids[i] = id
	}
	for i, d := range stored {
		coll.docs = append(coll.docs, d)
		coll.ids[ids[i]] = struct{}{}
	}
	c.log.Debug("documents inserted", logger.Fields(logger.FieldElements, len(docs)))
	return ids, nil
}

type findOptions struct {
	sortBy     string
	descending bool
	limit      int
	include    []string
	excludeID  bool
}

// FindOption shapes the results of Find.
type FindOption func(*findOptions)

// SortBy orders results by the value at path.
func SortBy(path string, descending bool) FindOption {
	return func(o *findOptions) {
		o.sortBy = path
		o.descending = descending
	}
}

// Limit caps the number of results. Zero means no limit.
func Limit(n int) FindOption {
	return func(o *findOptions) { o.limit = n }
}

// Include projects results onto the given top-level fields and the id.
func Include(fields ...string) FindOption {
	return func(o *findOptions) { o.include = append(o.include, fields...) }
}

// ExcludeID drops the id from projected results.
func ExcludeID() FindOption {
	return func(o *findOptions) { o.excludeID = true }
}

// Find emits copies of the matching documents in insertion order, unless
// SortBy says otherwise. A nil filter matches everything.
func (c *Collection) Find(filter Filter, opts ...FindOption) subscriber.Publisher[Document] {
	var o findOptions
	for _, opt := range opts {
		opt(&o)
	}
	return run(c.client(), func() ([]Document, error) {
		cl := c.client()
		cl.mu.RLock()
		matched := c.match(filter)
		out := make([]Document, len(matched))
		for i, m := range matched {
			out[i] = c.state(false).docs[m].Clone()
		}
		cl.mu.RUnlock()

		if o.sortBy != "" {
			sort.SliceStable(out, func(i, j int) bool {
				a, _ := out[i].Get(o.sortBy)
				b, _ := out[j].Get(o.sortBy)
				if o.descending {
					return compare(a, b) > 0
				}
				return compare(a, b) < 0
			})
		}
		if o.limit > 0 && len(out) > o.limit {
			out = out[:o.limit]
		}
		if len(o.include) > 0 || o.excludeID {
			for i, d := range out {
				out[i] = project(d, o.include, o.excludeID)
			}
		}
		return out, nil
	})
}

func project(d Document, include []string, excludeID bool) Document {
	out := d
	if len(include) > 0 {
		out = Document{IDField: d[IDField]}
		for _, f := range include {
			if v, ok := d[f]; ok {
				out[f] = v
			}
		}
	}
	if excludeID {
		delete(out, IDField)
	}
	return out
}

// match returns the indexes of matching documents. The caller holds the
// client lock.
func (c *Collection) match(filter Filter) []int {
	coll := c.state(false)
	if coll == nil {
		return nil
	}
	if filter == nil {
		filter = All()
	}
	var idx []int
	for i, d := range coll.docs {
		if filter(d) {
			idx = append(idx, i)
		}
	}
	return idx
}

// CountDocuments emits the number of matching documents.
func (c *Collection) CountDocuments(filter Filter) subscriber.Publisher[int64] {
	return run(c.client(), func() ([]int64, error) {
		cl := c.client()
		cl.mu.RLock()
		defer cl.mu.RUnlock()
		return []int64{int64(len(c.match(filter)))}, nil
	})
}

// FindOneAndDelete removes the first matching document and emits it. It
// completes without elements when nothing matches.
func (c *Collection) FindOneAndDelete(filter Filter) subscriber.Publisher[Document] {
	return run(c.client(), func() ([]Document, error) {
		cl := c.client()
		cl.mu.Lock()
		defer cl.mu.Unlock()
		matched := c.match(filter)
		if len(matched) == 0 {
			return nil, nil
		}
		doc := c.remove(matched[:1])[0]
		c.log.Debug("document deleted", logger.Fields("id", doc.ID()))
		return []Document{doc}, nil
	})
}

// DeleteOne removes the first matching document.
func (c *Collection) DeleteOne(filter Filter) subscriber.Publisher[DeleteResult] {
	return c.delete(filter, true)
}

// DeleteMany removes every matching document. A nil filter empties the
// collection.
func (c *Collection) DeleteMany(filter Filter) subscriber.Publisher[DeleteResult] {
	return c.delete(filter, false)
}

func (c *Collection) delete(filter Filter, one bool) subscriber.Publisher[DeleteResult] {
	return run(c.client(), func() ([]DeleteResult, error) {
		cl := c.client()
		cl.mu.Lock()
		defer cl.mu.Unlock()
		matched := c.match(filter)
		if one && len(matched) > 1 {
			matched = matched[:1]
		}
		removed := c.remove(matched)
		c.log.Debug("documents deleted", logger.Fields(logger.FieldElements, len(removed)))
		return []DeleteResult{{DeletedCount: int64(len(removed))}}, nil
	})
}

// remove deletes the documents at the ascending indexes idx and returns them.
// The caller holds the client write lock.
func (c *Collection) remove(idx []int) []Document {
	if len(idx) == 0 {
		return nil
	}
	coll := c.state(false)
	drop := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		drop[i] = struct{}{}
	}
	removed := make([]Document, 0, len(idx))
	kept := coll.docs[:0]
	for i, d := range coll.docs {
		if _, ok := drop[i]; ok {
			removed = append(removed, d)
			delete(coll.ids, d.ID())
			continue
		}
		kept = append(kept, d)
	}
	coll.docs = kept
	return removed
}

// ReplaceOne swaps the first matching document for a copy of replacement,
// keeping the original id. A replacement with a different id fails with
// INVALID_INPUT.
func (c *Collection) ReplaceOne(filter Filter, replacement Document) subscriber.Publisher[UpdateResult] {
	replacement = replacement.Clone()
	return run(c.client(), func() ([]UpdateResult, error) {
		if replacement == nil {
			return nil, errors.InvalidInput("replacement", "must not be nil")
		}
		cl := c.client()
		cl.mu.Lock()
		defer cl.mu.Unlock()
		matched := c.match(filter)
		if len(matched) == 0 {
			return []UpdateResult{{}}, nil
		}
		coll := c.state(false)
		old := coll.docs[matched[0]]
		if id := replacement.ID(); id != "" && id != old.ID() {
			return nil, errors.InvalidInput("_id", "replacement must keep the document id")
		}
		replacement[IDField] = old[IDField]
		coll.docs[matched[0]] = replacement

		res := UpdateResult{MatchedCount: 1}
		if !reflect.DeepEqual(old, replacement) {
			res.ModifiedCount = 1
		}
		return []UpdateResult{res}, nil
	})
}

// UpdateOne applies updates to the first matching document.
func (c *Collection) UpdateOne(filter Filter, updates ...Update) subscriber.Publisher[UpdateResult] {
	return c.update(filter, true, updates)
}

// UpdateMany applies updates to every matching document.
func (c *Collection) UpdateMany(filter Filter, updates ...Update) subscriber.Publisher[UpdateResult] {
	return c.update(filter, false, updates)
}

func (c *Collection) update(filter Filter, one bool, updates []Update) subscriber.Publisher[UpdateResult] {
	return run(c.client(), func() ([]UpdateResult, error) {
		cl := c.client()
		cl.mu.Lock()
		defer cl.mu.Unlock()
		return []UpdateResult{c.applyLocked(filter, one, updates)}, nil
	})
}

// UpsertOne applies updates to the first matching document. When nothing
// matches it inserts a copy of seed with updates applied and reports the new
// id in UpsertedID. A nil seed starts from an empty document.
func (c *Collection) UpsertOne(filter Filter, seed Document, updates ...Update) subscriber.Publisher[UpdateResult] {
	seed = seed.Clone()
	return run(c.client(), func() ([]UpdateResult, error) {
		cl := c.client()
		cl.mu.Lock()
		defer cl.mu.Unlock()
		if len(c.match(filter)) > 0 {
			return []UpdateResult{c.applyLocked(filter, true, updates)}, nil
		}

		doc := seed
		if doc == nil {
			doc = Document{}
		}
		for _, u := range updates {
			u(doc)
		}
		ids, err := c.insertLocked([]Document{doc})
		if err != nil {
			return nil, err
		}
		c.log.Debug("document upserted", logger.Fields("id", ids[0]))
		return []UpdateResult{{UpsertedID: ids[0]}}, nil
	})
}

// applyLocked updates matching documents with the client lock held.
func (c *Collection) applyLocked(filter Filter, one bool, updates []Update) UpdateResult {
	matched := c.match(filter)
	if one && len(matched) > 1 {
		matched = matched[:1]
	}
	coll := c.state(false)
	var res UpdateResult
	for _, i := range matched {
		before := coll.docs[i]
		after := before.Clone()
		for _, u := range updates {
			u(after)
		}
		// The id is immutable.
		after[IDField] = before[IDField]
		res.MatchedCount++
		if !reflect.DeepEqual(before, after) {
			coll.docs[i] = after
			res.ModifiedCount++
		}
	}
	c.log.Debug("documents updated", logger.Fields(
		"matched", res.MatchedCount,
		"modified", res.ModifiedCount,
	))
	return res
}
