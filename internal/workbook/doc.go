// Package workbook reads the archive's source Excel file.
//
// The workbook carries five sheets, named after the source conventions:
// Leden (members), Uitvoering (performances), Rollen (roles), Bestand
// (files), and Type_Media (media type lookup). Validate checks that
// structure before a load; Workbook/Sheet give the loader column-addressed
// access to the rows.
package workbook
