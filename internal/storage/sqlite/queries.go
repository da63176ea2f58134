package sqlite

const schemaSQL = `
CREATE TABLE IF NOT EXISTS clipboard_items (
	id           TEXT PRIMARY KEY,
	text         TEXT    NOT NULL,
	type         TEXT    NOT NULL,
	preview      TEXT    NOT NULL DEFAULT '',
	timestamp    TEXT    NOT NULL,
	image_width  INTEGER NOT NULL DEFAULT 0,
	image_height INTEGER NOT NULL DEFAULT 0,
	data         BLOB,
	position     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_clipboard_items_position ON clipboard_items(position DESC);
`

const (
	selectItemsSQL = `SELECT id, text, type, preview, timestamp, image_width, image_height, data
FROM clipboard_items
ORDER BY position DESC`

	// position is always one past the current maximum, so an upsert moves
	// the row to the front.
	upsertItemSQL = `INSERT INTO clipboard_items
	(id, text, type, preview, timestamp, image_width, image_height, data, position)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM clipboard_items))
ON CONFLICT(id) DO UPDATE SET
	text = excluded.text,
	type = excluded.type,
	preview = excluded.preview,
	timestamp = excluded.timestamp,
	image_width = excluded.image_width,
	image_height = excluded.image_height,
	data = excluded.data,
	position = excluded.position`

	deleteItemSQL = `DELETE FROM clipboard_items WHERE id = ?`

	clearItemsSQL = `DELETE FROM clipboard_items`

	trimItemsSQL = `DELETE FROM clipboard_items WHERE id NOT IN (
	SELECT id FROM clipboard_items ORDER BY position DESC LIMIT ?
)`

	countItemsSQL = `SELECT COUNT(*) FROM clipboard_items`
)
