// Package pg connects to PostgreSQL with pgx and answers the existsIn and
// notExistsIn rules of the check package from table columns.
//
//	pool, err := pg.Connect(ctx, cfg)
//	users := pg.NewLookup(pool, "users.email")
//
//	check.Body("email").NotExistsIn(users, "users.email").WithMessage("Email already registered")
//
// Lookup builds "SELECT EXISTS (SELECT 1 FROM <table> WHERE <column> = $1)" with
// quoted identifiers and passes the value as a parameter. Query errors are
// returned to the check package, which turns them into faults.
package pg
