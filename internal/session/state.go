package session

import "github.com/nebuladb/nebula/internal/database"

// State is the schema-browser side of a session: the last database listing
// plus per-database table and view caches. The bridge's completed
// operations are applied here by the tick loop; each Apply* is
// last-write-wins for its key.
type State struct {
	Connection ConnectionState

	Databases []database.DatabaseInfo
	Tables    Cache[[]database.TableInfo]
	Views     Cache[[]database.ViewInfo]
}

// NewState returns a disconnected, empty session state.
func NewState() *State {
	return &State{Connection: StateDisconnected}
}

// ApplyDatabases replaces the database listing wholesale.
func (s *State) ApplyDatabases(dbs []database.DatabaseInfo) {
	s.Databases = dbs
}

// ApplyTables stores a completed table listing under its database key.
func (s *State) ApplyTables(db string, tables []database.TableInfo) {
	s.Tables.Put(db, tables)
}

// ApplyViews stores a completed view listing under its database key.
func (s *State) ApplyViews(db string, views []database.ViewInfo) {
	s.Views.Put(db, views)
}

// Reset clears all cached schema, for reconnects and refreshes.
func (s *State) Reset() {
	s.Databases = nil
	s.Tables.Clear()
	s.Views.Clear()
}
