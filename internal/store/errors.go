package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrItemNotFound is returned when a (collection, id) pair does not exist.
	ErrItemNotFound = errors.New("item was not found")

	// ErrEmptyCollectionName is returned when a collection name is blank.
	ErrEmptyCollectionName = errors.New("collection name is empty")

	// ErrEmptyItemID is returned when an item without id is written.
	ErrEmptyItemID = errors.New("item id is empty")

	// ErrBackupNotFound is returned when a named backup file does not exist.
	ErrBackupNotFound = errors.New("backup was not found")

	// ErrInvalidBackupName is returned for names that are empty, hidden or
	// contain path separators.
	ErrInvalidBackupName = errors.New("invalid backup name")

	// ErrInvalidOwner is returned for owner names that cannot be used as a
	// directory name.
	ErrInvalidOwner = errors.New("invalid backup owner")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning column values fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
