// Package logtail reads and formats the application's JSON log file.
//
// The browser owns the terminal, so it logs to a file; this package backs the
// "logs" subcommand that shows the end of that file.
//
// # Reading
//
// Read keeps a ring buffer of the last maxLines lines, so the whole file is
// never held in memory. A missing file is not an error; it simply has no
// lines yet.
//
// # Formatting
//
// Parse decodes a slog JSON record. ColorizeLine renders it as
//
//	15:04:05.000 WARN  page fetch failed cursor="offset=0&limit=20" kind=upstream
//
// with colors from fatih/color, which switches itself off when stdout is not
// a terminal. Filter drops records below a minimum level.
package logtail
