package store

// DDL per table. Every load drops and recreates the table it is about to
// fill, so schema changes take effect on the next load without migrations.
const (
	schemaLid = `CREATE TABLE lid (
        id_lid          TEXT PRIMARY KEY,
        voornaam        TEXT NOT NULL,
        achternaam      TEXT,
        geboortedatum   TEXT,
        startjaar       INTEGER,
        gdpr_permission INTEGER NOT NULL DEFAULT 0,
        achternaam_sort TEXT NOT NULL
    )`

	schemaUitvoering = `CREATE TABLE uitvoering (
        ref_uitvoering TEXT PRIMARY KEY,
        titel          TEXT NOT NULL,
        auteur         TEXT,
        jaar           INTEGER,
        type           TEXT NOT NULL,
        datum_van      TEXT,
        datum_tot      TEXT,
        folder         TEXT NOT NULL,
        regie          TEXT,
        qty_media      INTEGER NOT NULL DEFAULT 0
    )`

	schemaRol = `CREATE TABLE rol (
        ref_uitvoering TEXT NOT NULL,
        id_lid         TEXT NOT NULL,
        rol            TEXT NOT NULL,
        rol_bijnaam    TEXT,
        qty_media      INTEGER NOT NULL DEFAULT 0
    )`

	schemaFile = `CREATE TABLE file (
        ref_uitvoering TEXT NOT NULL,
        bestand        TEXT NOT NULL,
        type_media     TEXT NOT NULL,
        file_ext       TEXT NOT NULL,
        folder         TEXT NOT NULL
    )`

	schemaFileLeden = `CREATE TABLE file_leden (
        ref_uitvoering TEXT NOT NULL,
        bestand        TEXT NOT NULL,
        type_media     TEXT NOT NULL,
        file_ext       TEXT NOT NULL,
        folder         TEXT NOT NULL,
        vlnr           TEXT NOT NULL,
        lid            TEXT NOT NULL
    )`

	schemaMediaType = `CREATE TABLE media_type (
        type_media   TEXT PRIMARY KEY,
        omschrijving TEXT
    )`
)
