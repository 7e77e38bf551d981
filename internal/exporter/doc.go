// Package exporter writes cleaned job postings back out as CSV, for the
// command line tool and the download endpoint. Output carries a UTF-8 BOM
// so Excel opens it correctly.
package exporter
