// Package archive extracts members of theme archives to short-lived
// temporary files.
//
// A Store owns every file it creates. Callers receive the path of an
// extracted member and may read it until the grace window elapses; the store
// then deletes it exactly once whether or not the caller used it. Deletion
// failures are logged, never returned.
package archive
