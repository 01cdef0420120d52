// Package memstore is an in-memory document store with an asynchronous API.
//
// Every operation returns a subscriber.Publisher and does its work on a
// separate goroutine once the subscriber requests demand, the way a remote
// database driver would. Results are read back through the blocking
// subscriber façade:
//
//	client, _ := memstore.NewClient(memstore.Config{URI: "memstore://localhost"})
//	colors := client.Database("training").Collection("colors")
//
//	op := subscriber.NewOperation[memstore.InsertOneResult]()
//	colors.InsertOne(memstore.Document{"color": "red", "qty": 5}).Subscribe(op)
//	res, ok, err := op.First()
//
// Documents are keyed by "_id". A missing id is filled with a random UUID.
// Field paths may be dotted to reach nested documents ("imdb.rating").
package memstore
