// Package journal persists coordination activity to SQLite for offline
// inspection with urimux-journal. Journaling is opt-in and write paths are
// best-effort; the coordinator itself keeps no persistent state.
package journal
