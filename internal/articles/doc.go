// Package articles is the example resource served by the restkit binary:
// a schema, CRUD routes and interchangeable memory, Redis and Postgres
// stores.
package articles
