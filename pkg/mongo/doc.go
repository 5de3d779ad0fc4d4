// Package mongo manages the MongoDB connection (mongo-driver/v2) and
// provides the index helpers used by the repositories in stores/mongo.
//
// Connection settings come from the environment (MONGODB_URL,
// MONGODB_DATABASE, pool sizes, retry policy). New retries the initial
// connection so the API survives a database that starts after it.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	ready := mongo.Healthcheck(db.Client())
//
// Two index shapes matter to the auth core. TTLIndex lets the server expire
// OTP challenges and refresh tokens on their expires_at field.
// SparseUniqueIndex keeps each email, mobile number and provider id
// attached to at most one user while allowing users that lack it.
package mongo
