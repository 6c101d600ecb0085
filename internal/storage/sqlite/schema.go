package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS realm (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	name   TEXT NOT NULL UNIQUE,
	digest TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS player (
	hash     INTEGER PRIMARY KEY,
	username TEXT NOT NULL,
	sid      INTEGER NOT NULL,
	rid      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS account (
	realm_id INTEGER NOT NULL,
	hash     INTEGER NOT NULL,

	game_version INTEGER NOT NULL,
	squad_tag    TEXT NOT NULL,

	max_authority_reached REAL NOT NULL,
	authority             REAL NOT NULL,
	job_points            REAL NOT NULL,
	faction               INTEGER NOT NULL,
	name                  TEXT NOT NULL,
	soldier_group_id      INTEGER NOT NULL,
	soldier_group_name    TEXT NOT NULL,
	squad_size_setting    INTEGER NOT NULL,

	loadout  TEXT NOT NULL,
	backpack TEXT NOT NULL,
	stash    TEXT NOT NULL,

	kills                INTEGER NOT NULL,
	deaths               INTEGER NOT NULL,
	time_played          INTEGER NOT NULL,
	player_kills         INTEGER NOT NULL,
	teamkills            INTEGER NOT NULL,
	longest_kill_streak  INTEGER NOT NULL,
	longest_death_streak INTEGER NOT NULL,
	targets_destroyed    INTEGER NOT NULL,
	vehicles_destroyed   INTEGER NOT NULL,
	soldiers_healed      INTEGER NOT NULL,
	distance_moved       REAL NOT NULL,
	shots_fired          INTEGER NOT NULL,
	throwables_thrown    INTEGER NOT NULL,
	rank_progression     REAL NOT NULL,

	kill_combos TEXT NOT NULL,
	monitors    TEXT NOT NULL,

	PRIMARY KEY (realm_id, hash),
	FOREIGN KEY (realm_id) REFERENCES realm(id),
	FOREIGN KEY (hash) REFERENCES player(hash)
);
`
