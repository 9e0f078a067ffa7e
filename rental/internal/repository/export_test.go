package repository

import "github.com/jackc/pgx/v5/pgxpool"

// SharedTestPool exposes the dockertest database to the external test package.
func SharedTestPool() *pgxpool.Pool {
	return testPool
}
