package repository

// Tx is an opaque transaction handle passed through repository calls.
// The concrete type is infra-defined (pgx.Tx for Postgres); repositories
// must gracefully accept a nil handle and take the non-transactional path.
type Tx interface{}

var NoTX Tx
